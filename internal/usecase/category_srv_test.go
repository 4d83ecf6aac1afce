package usecase_test

import (
	"context"
	"testing"

	"biz-directory/internal/dto/request"
	"biz-directory/pkg/apperror"

	"github.com/google/uuid"
)

func TestCreateCategoryRejectsDuplicateKey(t *testing.T) {
	f := newFixture(t)
	f.category(t, "cafe", "Café")

	_, err := f.svc.Category.Create(context.Background(), &request.CategoryRequest{Key: "cafe", Name: "Coffee"})
	appErr := expectKind(t, err, apperror.KindConflict)
	if appErr.Field != "key" {
		t.Fatalf("expected conflict on key, got %q", appErr.Field)
	}
}

func TestCreateCategoryValidatesKey(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Category.Create(context.Background(), &request.CategoryRequest{Key: "Not A Slug", Name: "Bad"})
	appErr := expectKind(t, err, apperror.KindValidation)
	if _, ok := appErr.Fields["key"]; !ok {
		t.Fatalf("expected key in fields, got %+v", appErr.Fields)
	}
}

func TestListAndGetCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cafe := f.category(t, "cafe", "Café")
	f.category(t, "bakery", "Bakery")

	all, err := f.svc.Category.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(all))
	}

	got, err := f.svc.Category.Get(ctx, cafe.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Café" {
		t.Fatalf("unexpected category %+v", got)
	}

	_, err = f.svc.Category.Get(ctx, uuid.NewString())
	expectKind(t, err, apperror.KindNotFound)
}

func TestDeleteCategoryInUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cafe := f.category(t, "cafe", "Café")
	auth := f.signupBusiness(t, "beanery", cafe.ID)

	err := f.svc.Category.Delete(ctx, cafe.ID)
	expectKind(t, err, apperror.KindDependencyConflict)

	empty := []string{}
	if _, err := f.svc.Identity.Update(ctx, uuid.MustParse(auth.User.ID), auth.User.ID, &request.UpdateIdentityRequest{Categories: &empty}); err != nil {
		t.Fatalf("untag: %v", err)
	}
	if err := f.svc.Category.Delete(ctx, cafe.ID); err != nil {
		t.Fatalf("delete after untag: %v", err)
	}

	err = f.svc.Category.Delete(ctx, cafe.ID)
	expectKind(t, err, apperror.KindNotFound)
}
