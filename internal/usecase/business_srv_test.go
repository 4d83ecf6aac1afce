package usecase_test

import (
	"context"
	"strings"
	"testing"

	"biz-directory/internal/dto/request"
	"biz-directory/pkg/apperror"

	"github.com/google/uuid"
)

func TestBusinessDirectory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signupBusiness(t, "acme")
	f.signupCustomer(t, "walker")

	all, err := f.svc.Business.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 || all[0].BranchName != "acme downtown" {
		t.Fatalf("unexpected businesses %+v", all)
	}

	byID, err := f.svc.Business.Get(ctx, owner.User.Business.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	byUser, err := f.svc.Business.GetByUserID(ctx, owner.User.ID)
	if err != nil {
		t.Fatalf("get by user: %v", err)
	}
	if byID.ID != byUser.ID {
		t.Fatalf("lookups disagree: %s vs %s", byID.ID, byUser.ID)
	}

	_, err = f.svc.Business.Get(ctx, uuid.NewString())
	expectKind(t, err, apperror.KindNotFound)
}

func TestUploadCover(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signupBusiness(t, "acme")
	customer := f.signupCustomer(t, "walker")

	upload := &request.FileUpload{Filename: "cover.webp", ContentType: "image/webp", Data: []byte("webp")}

	got, err := f.svc.Business.UploadCover(ctx, uuid.MustParse(owner.User.ID), upload)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if got.CoverPhoto == nil || !strings.HasSuffix(*got.CoverPhoto, ".webp") {
		t.Fatalf("unexpected cover %v", got.CoverPhoto)
	}

	_, err = f.svc.Business.UploadCover(ctx, uuid.MustParse(customer.User.ID), upload)
	expectKind(t, err, apperror.KindForbidden)
}
