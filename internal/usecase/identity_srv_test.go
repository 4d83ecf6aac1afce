package usecase_test

import (
	"context"
	"testing"

	"biz-directory/internal/data/entity"
	"biz-directory/internal/data/repository"
	"biz-directory/internal/dto/request"
	"biz-directory/pkg/apperror"

	"github.com/google/uuid"
)

func TestCreateIdentityRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.signupBusiness(t, "acme")

	_, err := f.svc.Identity.Create(ctx, &request.SignupRequest{
		Email:    "ACME@example.com",
		Username: "someone_else",
		Password: "secret-pw",
		Customer: &request.CustomerProfileRequest{},
	})
	appErr := expectKind(t, err, apperror.KindConflict)
	if appErr.Field != "email" {
		t.Fatalf("expected conflict on email, got %q", appErr.Field)
	}

	users, businesses, customers, _, _, _ := f.store.Counts()
	if users != 1 || businesses != 1 || customers != 0 {
		t.Fatalf("expected only the first identity, got users=%d businesses=%d customers=%d", users, businesses, customers)
	}
}

func TestCreateIdentityRejectsDuplicateUsername(t *testing.T) {
	f := newFixture(t)

	f.signupCustomer(t, "jane")

	_, err := f.svc.Identity.Create(context.Background(), &request.SignupRequest{
		Email:    "other@example.com",
		Username: "jane",
		Password: "secret-pw",
		Customer: &request.CustomerProfileRequest{},
	})
	appErr := expectKind(t, err, apperror.KindConflict)
	if appErr.Field != "username" {
		t.Fatalf("expected conflict on username, got %q", appErr.Field)
	}
}

func TestCreateIdentityRequiresExactlyOneProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	base := request.SignupRequest{Email: "p@example.com", Username: "profile", Password: "secret-pw"}

	_, err := f.svc.Identity.Create(ctx, &base)
	expectKind(t, err, apperror.KindValidation)

	both := base
	both.Business = &request.BusinessProfileRequest{BranchName: "Main"}
	both.Customer = &request.CustomerProfileRequest{}
	_, err = f.svc.Identity.Create(ctx, &both)
	expectKind(t, err, apperror.KindValidation)
}

func TestCreateIdentityUnknownCategoryPersistsNothing(t *testing.T) {
	f := newFixture(t)
	cafe := f.category(t, "cafe", "Café")

	_, err := f.svc.Identity.Create(context.Background(), &request.SignupRequest{
		Email:      "ghost@example.com",
		Username:   "ghostshop",
		Password:   "secret-pw",
		Categories: []string{cafe.ID, uuid.NewString()},
		Business:   &request.BusinessProfileRequest{BranchName: "Nowhere"},
	})
	expectKind(t, err, apperror.KindNotFound)

	users, businesses, _, _, tags, _ := f.store.Counts()
	if users != 0 || businesses != 0 || tags != 0 {
		t.Fatalf("expected no rows, got users=%d businesses=%d tags=%d", users, businesses, tags)
	}
}

func TestListIdentitiesExpandsCategories(t *testing.T) {
	f := newFixture(t)
	cafe := f.category(t, "cafe", "Café")

	f.signupBusiness(t, "beanery", cafe.ID)
	f.signupCustomer(t, "walker")

	identities, err := f.svc.Identity.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(identities) != 2 {
		t.Fatalf("expected 2 identities, got %d", len(identities))
	}

	for _, identity := range identities {
		switch identity.Username {
		case "beanery":
			if identity.Role != "business" || identity.Business == nil {
				t.Fatalf("expected business profile, got %+v", identity)
			}
			if len(identity.Categories) != 1 {
				t.Fatalf("expected one category, got %+v", identity.Categories)
			}
			got := identity.Categories[0]
			if got.ID != cafe.ID || got.Key != "cafe" || got.Name != "Café" {
				t.Fatalf("unexpected category %+v", got)
			}
		case "walker":
			if identity.Role != "customer" || identity.Customer == nil {
				t.Fatalf("expected customer profile, got %+v", identity)
			}
			if identity.Categories == nil || len(identity.Categories) != 0 {
				t.Fatalf("expected empty category list, got %+v", identity.Categories)
			}
		default:
			t.Fatalf("unexpected identity %s", identity.Username)
		}
	}
}

func TestUpdateIdentityUnknownCategoryKeepsTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cafe := f.category(t, "cafe", "Café")

	auth := f.signupBusiness(t, "beanery", cafe.ID)
	actor := uuid.MustParse(auth.User.ID)

	newName := "Renamed"
	categories := []string{uuid.NewString()}
	_, err := f.svc.Identity.Update(ctx, actor, auth.User.ID, &request.UpdateIdentityRequest{
		Business:   &request.BusinessProfileUpdate{BranchName: &newName},
		Categories: &categories,
	})
	expectKind(t, err, apperror.KindNotFound)

	got, err := f.svc.Identity.Get(ctx, auth.User.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Categories) != 1 || got.Categories[0].Key != "cafe" {
		t.Fatalf("expected original tags, got %+v", got.Categories)
	}
	if got.Business.BranchName == newName {
		t.Fatal("profile change should have rolled back")
	}
}

func TestUpdateIdentityReplacesFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cafe := f.category(t, "cafe", "Café")
	bakery := f.category(t, "bakery", "Bakery")

	auth := f.signupBusiness(t, "beanery", cafe.ID)
	actor := uuid.MustParse(auth.User.ID)

	email := "New@Example.com"
	hotline := "555-0100"
	categories := []string{bakery.ID}
	got, err := f.svc.Identity.Update(ctx, actor, auth.User.ID, &request.UpdateIdentityRequest{
		Email:      &email,
		Business:   &request.BusinessProfileUpdate{HotLine: &hotline},
		Categories: &categories,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Email != "new@example.com" {
		t.Fatalf("expected normalised email, got %s", got.Email)
	}
	if got.Business.HotLine == nil || *got.Business.HotLine != hotline {
		t.Fatalf("expected hotline updated, got %+v", got.Business)
	}
	if len(got.Categories) != 1 || got.Categories[0].Key != "bakery" {
		t.Fatalf("expected tags replaced, got %+v", got.Categories)
	}

	empty := []string{}
	got, err = f.svc.Identity.Update(ctx, actor, auth.User.ID, &request.UpdateIdentityRequest{Categories: &empty})
	if err != nil {
		t.Fatalf("clear categories: %v", err)
	}
	if len(got.Categories) != 0 {
		t.Fatalf("expected no tags, got %+v", got.Categories)
	}
}

func TestUpdateIdentityRejectsOtherProfileKind(t *testing.T) {
	f := newFixture(t)
	auth := f.signupCustomer(t, "walker")

	branch := "Main"
	_, err := f.svc.Identity.Update(context.Background(), uuid.MustParse(auth.User.ID), auth.User.ID, &request.UpdateIdentityRequest{
		Business: &request.BusinessProfileUpdate{BranchName: &branch},
	})
	expectKind(t, err, apperror.KindValidation)
}

func TestUpdateAndDeleteIdentityAreSelfOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.signupCustomer(t, "owner")
	intruder := f.signupCustomer(t, "intruder")
	intruderID := uuid.MustParse(intruder.User.ID)

	address := "elsewhere"
	_, err := f.svc.Identity.Update(ctx, intruderID, owner.User.ID, &request.UpdateIdentityRequest{Address: &address})
	expectKind(t, err, apperror.KindForbidden)

	err = f.svc.Identity.Delete(ctx, intruderID, owner.User.ID)
	expectKind(t, err, apperror.KindForbidden)
}

func TestDeleteIdentityCascadesToOffers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	auth := f.signupBusiness(t, "acme")
	ownerID := uuid.MustParse(auth.User.ID)
	offer := f.createOffer(t, auth, "Two for one")

	image := &request.FileUpload{Filename: "a.png", ContentType: "image/png", Data: []byte("png-bytes")}
	profile, err := f.svc.Identity.UploadProfilePhoto(ctx, ownerID, image)
	if err != nil {
		t.Fatalf("upload profile photo: %v", err)
	}
	cover, err := f.svc.Business.UploadCover(ctx, ownerID, image)
	if err != nil {
		t.Fatalf("upload cover: %v", err)
	}
	withPhoto, err := f.svc.Offer.UploadPhoto(ctx, ownerID, offer.ID, image)
	if err != nil {
		t.Fatalf("upload offer photo: %v", err)
	}
	stored := []string{*offer.QRCodePath, *profile.ProfilePhoto, *cover.CoverPhoto, *withPhoto.Photo}
	for _, path := range stored {
		if !f.blobExists(path) {
			t.Fatalf("expected %s to be stored", path)
		}
	}

	if err := f.svc.Identity.Delete(ctx, ownerID, auth.User.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for _, path := range stored {
		if f.blobExists(path) {
			t.Fatalf("expected %s removed with the account", path)
		}
	}

	_, err = f.svc.Offer.Get(ctx, ownerID, offer.ID)
	expectKind(t, err, apperror.KindNotFound)
	_, err = f.svc.Offer.Redeem(ctx, offer.RedemptionCode)
	expectKind(t, err, apperror.KindNotFound)
	_, err = f.svc.Identity.Get(ctx, auth.User.ID)
	expectKind(t, err, apperror.KindNotFound)

	users, businesses, _, _, _, offers := f.store.Counts()
	if users != 0 || businesses != 0 || offers != 0 {
		t.Fatalf("expected cascade, got users=%d businesses=%d offers=%d", users, businesses, offers)
	}
}

func TestUploadProfilePhotoStoresBlob(t *testing.T) {
	f := newFixture(t)
	auth := f.signupCustomer(t, "walker")

	got, err := f.svc.Identity.UploadProfilePhoto(context.Background(), uuid.MustParse(auth.User.ID), &request.FileUpload{
		Filename:    "me.png",
		ContentType: "image/png",
		Data:        []byte("png-bytes"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if got.ProfilePhoto == nil {
		t.Fatal("expected profile photo path")
	}

	_, err = f.svc.Identity.UploadProfilePhoto(context.Background(), uuid.MustParse(auth.User.ID), &request.FileUpload{
		Filename:    "me.txt",
		ContentType: "text/plain",
		Data:        []byte("hello"),
	})
	expectKind(t, err, apperror.KindValidation)
}

func TestCreateIdentityRejectsBlankRequiredFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Identity.Create(ctx, &request.SignupRequest{
		Email:    "blank@example.com",
		Username: "      ",
		Password: "secret-pw",
		Business: &request.BusinessProfileRequest{BranchName: "      "},
	})
	appErr := expectKind(t, err, apperror.KindValidation)
	for _, field := range []string{"username", "business.branch_name"} {
		if _, ok := appErr.Fields[field]; !ok {
			t.Fatalf("expected %s in fields, got %+v", field, appErr.Fields)
		}
	}

	users, _, _, _, _, _ := f.store.Counts()
	if users != 0 {
		t.Fatalf("expected nothing persisted, got %d users", users)
	}

	got, err := f.svc.Identity.Create(ctx, &request.SignupRequest{
		Email:    " Padded@Example.com ",
		Username: "  padded  ",
		Password: "secret-pw",
		Business: &request.BusinessProfileRequest{BranchName: "  Main  "},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.Email != "padded@example.com" || got.Username != "padded" || got.Business.BranchName != "Main" {
		t.Fatalf("expected trimmed fields, got %+v", got)
	}
}

func TestUpdateIdentityRejectsBlankRequiredFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := f.signupBusiness(t, "acme")
	actor := uuid.MustParse(auth.User.ID)

	blank := "      "
	_, err := f.svc.Identity.Update(ctx, actor, auth.User.ID, &request.UpdateIdentityRequest{Username: &blank})
	expectKind(t, err, apperror.KindValidation)

	blankBranch := "      "
	_, err = f.svc.Identity.Update(ctx, actor, auth.User.ID, &request.UpdateIdentityRequest{
		Business: &request.BusinessProfileUpdate{BranchName: &blankBranch},
	})
	expectKind(t, err, apperror.KindValidation)

	got, err := f.svc.Identity.Get(ctx, auth.User.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "acme" || got.Business.BranchName != "acme downtown" {
		t.Fatalf("identity changed: %+v", got)
	}

	_, err = f.svc.Auth.Authenticate(ctx, "", "secret-pw")
	expectKind(t, err, apperror.KindUnauthenticated)
}

// staleUsers misses rows a concurrent sign-up has just written.
type staleUsers struct {
	repository.UserRepository
}

func (staleUsers) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}

func (staleUsers) FindByUsername(context.Context, string) (*entity.User, error) {
	return nil, nil
}

func TestCreateIdentityStoreRejectsDuplicateAfterStaleCheck(t *testing.T) {
	f := newFixture(t)
	f.signupBusiness(t, "acme")

	f.repo.User = staleUsers{f.repo.User}

	_, err := f.svc.Identity.Create(context.Background(), &request.SignupRequest{
		Email:    "acme@example.com",
		Username: "acme",
		Password: "secret-pw",
		Business: &request.BusinessProfileRequest{BranchName: "acme uptown"},
	})
	expectKind(t, err, apperror.KindConflict)

	users, businesses, _, _, _, _ := f.store.Counts()
	if users != 1 || businesses != 1 {
		t.Fatalf("expected only the first identity, got users=%d businesses=%d", users, businesses)
	}
}
