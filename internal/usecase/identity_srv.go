package usecase

import (
	"context"
	"fmt"
	"time"

	"biz-directory/internal/data/entity"
	"biz-directory/internal/data/repository"
	"biz-directory/internal/dto/request"
	"biz-directory/internal/dto/response"
	"biz-directory/pkg/apperror"
	"biz-directory/pkg/storage"
	"biz-directory/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type IdentityService interface {
	Create(ctx context.Context, req *request.SignupRequest) (*response.IdentityResponse, error)
	Get(ctx context.Context, id string) (*response.IdentityResponse, error)
	List(ctx context.Context) ([]response.IdentityResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, id string, req *request.UpdateIdentityRequest) (*response.IdentityResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, id string) error
	UploadProfilePhoto(ctx context.Context, actorID uuid.UUID, upload *request.FileUpload) (*response.IdentityResponse, error)
}

type identityService struct {
	repo  *repository.Repository
	blobs storage.BlobStore
	log   *zap.Logger
}

func NewIdentityService(repo *repository.Repository, blobs storage.BlobStore, log *zap.Logger) IdentityService {
	return &identityService{
		repo:  repo,
		blobs: blobs,
		log:   log.With(zap.String("service", "identity")),
	}
}

func (s *identityService) Create(ctx context.Context, req *request.SignupRequest) (*response.IdentityResponse, error) {
	identity, err := createIdentity(ctx, s.repo, req)
	if err != nil {
		s.log.Warn("Create identity failed", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	s.log.Info("Identity created",
		zap.String("user_id", identity.User.ID.String()),
		zap.String("role", string(identity.Role())))

	resp := response.IdentityToResponse(identity)
	return &resp, nil
}

func (s *identityService) Get(ctx context.Context, id string) (*response.IdentityResponse, error) {
	userID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}

	identity, err := loadIdentity(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}

	resp := response.IdentityToResponse(identity)
	return &resp, nil
}

func (s *identityService) List(ctx context.Context) ([]response.IdentityResponse, error) {
	identities, err := loadIdentities(ctx, s.repo)
	if err != nil {
		s.log.Error("Failed to list identities", zap.Error(err))
		return nil, err
	}
	return response.IdentitiesToResponse(identities), nil
}

func (s *identityService) Update(ctx context.Context, actorID uuid.UUID, id string, req *request.UpdateIdentityRequest) (*response.IdentityResponse, error) {
	userID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}
	if userID != actorID {
		return nil, apperror.Forbidden("you can only update your own account")
	}
	if req.Email != nil {
		*req.Email = normalizeEmail(*req.Email)
	}
	trimField(req.Username)
	if req.Business != nil {
		trimField(req.Business.BranchName)
	}
	if err := utils.ValidateRequest(req); err != nil {
		return nil, err
	}
	if req.Business != nil && req.Customer != nil {
		return nil, apperror.InvalidField("profile", "only one of business or customer may be given")
	}

	var categoryIDs []uuid.UUID
	if req.Categories != nil {
		if categoryIDs, err = parseCategoryIDs(*req.Categories); err != nil {
			return nil, err
		}
	}

	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		user, err := tx.User.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperror.NotFound("user", userID.String())
		}

		if err := s.applyUserFields(ctx, tx, user, req); err != nil {
			return err
		}
		if err := tx.User.Update(ctx, user); err != nil {
			return err
		}

		if err := s.applyProfile(ctx, tx, user, req); err != nil {
			return err
		}

		if req.Categories != nil {
			if _, err := resolveCategories(ctx, tx, categoryIDs); err != nil {
				return err
			}
			if err := tx.UserCategory.Replace(ctx, userID, categoryIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Update identity failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	identity, err := loadIdentity(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Identity updated", zap.String("user_id", userID.String()))
	resp := response.IdentityToResponse(identity)
	return &resp, nil
}

func (s *identityService) applyUserFields(ctx context.Context, tx *repository.Repository, user *entity.User, req *request.UpdateIdentityRequest) error {
	var email, username string
	if req.Email != nil {
		email = *req.Email
		user.Email = email
	}
	if req.Username != nil {
		username = *req.Username
		user.Username = username
	}
	if err := checkUserAvailable(ctx, tx, user.ID, email, username); err != nil {
		return err
	}

	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Address != nil {
		user.Address = req.Address
	}
	user.UpdatedAt = time.Now()
	return nil
}

// applyProfile updates the stored profile; the role itself never changes.
func (s *identityService) applyProfile(ctx context.Context, tx *repository.Repository, user *entity.User, req *request.UpdateIdentityRequest) error {
	switch {
	case req.Business != nil:
		b, err := tx.Business.FindByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		if b == nil {
			return apperror.InvalidField("business", "account has no business profile")
		}
		u := req.Business
		if u.BranchName != nil {
			b.BranchName = *u.BranchName
		}
		assign(&b.HotLine, u.HotLine)
		assign(&b.Address, u.Address)
		assign(&b.TargetedGender, u.TargetedGender)
		assign(&b.StartHour, u.StartHour)
		assign(&b.CloseHour, u.CloseHour)
		assign(&b.OpeningDays, u.OpeningDays)
		b.UpdatedAt = user.UpdatedAt
		return tx.Business.Update(ctx, b)

	case req.Customer != nil:
		c, err := tx.Customer.FindByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperror.InvalidField("customer", "account has no customer profile")
		}
		u := req.Customer
		assign(&c.MaritalStatus, u.MaritalStatus)
		assign(&c.PriceRange, u.PriceRange)
		assign(&c.Gender, u.Gender)
		if u.Age != nil {
			c.Age = u.Age
		}
		c.UpdatedAt = user.UpdatedAt
		return tx.Customer.Update(ctx, c)
	}
	return nil
}

func assign(dst **string, src *string) {
	if src != nil {
		*dst = src
	}
}

func (s *identityService) Delete(ctx context.Context, actorID uuid.UUID, id string) error {
	userID, err := parseID("id", id)
	if err != nil {
		return err
	}
	if userID != actorID {
		return apperror.Forbidden("you can only delete your own account")
	}

	// collected first: the rows cascade away with the user
	prefixes := []string{"profiles/" + userID.String()}
	var qrKeys []string
	business, err := s.repo.Business.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if business != nil {
		prefixes = append(prefixes, "covers/"+business.ID.String())
		offers, err := s.repo.Offer.FindByBusinessID(ctx, business.ID)
		if err != nil {
			return err
		}
		for _, o := range offers {
			prefixes = append(prefixes, "offers/"+o.ID.String())
			if o.QRCodePath != nil {
				qrKeys = append(qrKeys, qrKey(o.RedemptionCode))
			}
		}
	}

	if err := s.repo.User.Delete(ctx, userID); err != nil {
		return err
	}

	s.removeBlobs(ctx, userID, qrKeys, prefixes)

	s.log.Info("Identity deleted", zap.String("user_id", userID.String()))
	return nil
}

// removeBlobs drops the files of a deleted account; failures are only logged.
func (s *identityService) removeBlobs(ctx context.Context, userID uuid.UUID, keys, prefixes []string) {
	for _, key := range keys {
		if err := s.blobs.Delete(ctx, key); err != nil {
			s.log.Warn("Failed to remove blob", zap.String("user_id", userID.String()), zap.String("key", key), zap.Error(err))
		}
	}
	for _, prefix := range prefixes {
		if err := s.blobs.DeletePrefix(ctx, prefix); err != nil {
			s.log.Warn("Failed to remove blobs", zap.String("user_id", userID.String()), zap.String("prefix", prefix), zap.Error(err))
		}
	}
}

func (s *identityService) UploadProfilePhoto(ctx context.Context, actorID uuid.UUID, upload *request.FileUpload) (*response.IdentityResponse, error) {
	user, err := s.repo.User.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user", actorID.String())
	}

	path, err := storeImage(ctx, s.blobs, "profiles/"+actorID.String(), upload)
	if err != nil {
		return nil, err
	}

	user.ProfilePhoto = &path
	user.UpdatedAt = time.Now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}

	identity, err := loadIdentity(ctx, s.repo, actorID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Profile photo uploaded", zap.String("user_id", actorID.String()))
	resp := response.IdentityToResponse(identity)
	return &resp, nil
}
