package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
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

type OfferService interface {
	Create(ctx context.Context, actorID uuid.UUID, req *request.OfferRequest) (*response.OfferResponse, error)
	Get(ctx context.Context, actorID uuid.UUID, id string) (*response.OfferResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, id string, req *request.OfferUpdateRequest) (*response.OfferResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, id string) error
	ListByBusiness(ctx context.Context, businessID string) ([]response.OfferResponse, error)
	Redeem(ctx context.Context, code string) (*response.RedemptionResponse, error)
	UploadPhoto(ctx context.Context, actorID uuid.UUID, id string, upload *request.FileUpload) (*response.OfferResponse, error)
}

// CodeRenderer turns a redemption URL into a scannable image.
type CodeRenderer interface {
	Render(content string) ([]byte, error)
}

type offerService struct {
	repo      *repository.Repository
	blobs     storage.BlobStore
	renderer  CodeRenderer
	publicURL string
	log       *zap.Logger
}

func NewOfferService(
	repo *repository.Repository,
	blobs storage.BlobStore,
	renderer CodeRenderer,
	publicURL string,
	log *zap.Logger,
) OfferService {
	return &offerService{
		repo:      repo,
		blobs:     blobs,
		renderer:  renderer,
		publicURL: publicURL,
		log:       log.With(zap.String("service", "offer")),
	}
}

// qrKey is derived from the redemption code, so the image location cannot be
// guessed from the public offer id.
func qrKey(code string) string {
	sum := sha256.Sum256([]byte(code))
	return "qrcodes/" + hex.EncodeToString(sum[:16]) + ".png"
}

func validateWindow(start, end time.Time) error {
	fields := map[string]string{}
	if start.IsZero() {
		fields["start_date"] = "This field is required"
	}
	if end.IsZero() {
		fields["end_date"] = "This field is required"
	}
	if len(fields) > 0 {
		return apperror.Validation("validation failed: "+utils.FormatValidationErrors(fields), fields)
	}
	if end.Before(start) {
		return apperror.InvalidField("end_date", "Must not be before start_date")
	}
	return nil
}

// ownedBusiness loads the business and checks the actor is its owner.
func ownedBusiness(ctx context.Context, repo *repository.Repository, actorID, businessID uuid.UUID) (*entity.Business, error) {
	business, err := repo.Business.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NotFound("business", businessID.String())
	}
	if business.UserID != actorID {
		return nil, apperror.Forbidden("only the owning business can manage its offers")
	}
	return business, nil
}

// Create persists the offer together with its redemption code and rendered
// QR image. Any failure leaves neither the row nor the image behind.
func (s *offerService) Create(ctx context.Context, actorID uuid.UUID, req *request.OfferRequest) (*response.OfferResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.ValidateRequest(req); err != nil {
		return nil, err
	}
	if err := validateWindow(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	businessID, err := parseID("business_id", req.BusinessID)
	if err != nil {
		return nil, err
	}
	business, err := ownedBusiness(ctx, s.repo, actorID, businessID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Offer.FindByBusinessAndName(ctx, business.ID, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("name")
	}

	code, err := utils.GenerateRedemptionCode()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	offer := &entity.Offer{
		BaseNoDelete:   entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		BusinessID:     business.ID,
		Name:           req.Name,
		Description:    req.Description,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Photo:          req.Photo,
		RedemptionCode: code,
	}

	stored := false
	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Offer.Create(ctx, offer); err != nil {
			return err
		}

		png, err := s.renderer.Render(utils.RedemptionURL(s.publicURL, code))
		if err != nil {
			return apperror.Upstream("qr renderer", err)
		}
		path, err := s.blobs.Put(ctx, qrKey(offer.RedemptionCode), "image/png", png)
		if err != nil {
			return apperror.Upstream("blob store", err)
		}
		stored = true

		if err := tx.Offer.SetQRCodePath(ctx, offer.ID, path); err != nil {
			return err
		}
		offer.QRCodePath = &path
		return nil
	})
	if err != nil {
		if stored {
			if delErr := s.blobs.Delete(context.WithoutCancel(ctx), qrKey(offer.RedemptionCode)); delErr != nil {
				s.log.Warn("Failed to remove orphaned qr code", zap.String("offer_id", offer.ID.String()), zap.Error(delErr))
			}
		}
		s.log.Warn("Create offer failed", zap.String("business_id", business.ID.String()), zap.Error(err))
		return nil, err
	}

	s.log.Info("Offer created",
		zap.String("offer_id", offer.ID.String()),
		zap.String("business_id", business.ID.String()))

	resp := response.OwnedOfferToResponse(offer)
	return &resp, nil
}

func (s *offerService) find(ctx context.Context, id string) (*entity.Offer, error) {
	offerID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}

	offer, err := s.repo.Offer.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, apperror.NotFound("offer", id)
	}
	return offer, nil
}

// Get returns the owner's view when actorID owns the offer, the public one
// otherwise.
func (s *offerService) Get(ctx context.Context, actorID uuid.UUID, id string) (*response.OfferResponse, error) {
	offer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	business, err := s.repo.Business.FindByID(ctx, offer.BusinessID)
	if err != nil {
		return nil, err
	}
	if business != nil && business.UserID == actorID {
		resp := response.OwnedOfferToResponse(offer)
		return &resp, nil
	}
	resp := response.OfferToResponse(offer)
	return &resp, nil
}

// Update changes name, description, dates and photo. The redemption code and
// QR path are never touched.
func (s *offerService) Update(ctx context.Context, actorID uuid.UUID, id string, req *request.OfferUpdateRequest) (*response.OfferResponse, error) {
	trimField(req.Name)
	if err := utils.ValidateRequest(req); err != nil {
		return nil, err
	}

	offer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := ownedBusiness(ctx, s.repo, actorID, offer.BusinessID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := *req.Name
		if name != offer.Name {
			existing, err := s.repo.Offer.FindByBusinessAndName(ctx, offer.BusinessID, name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperror.Conflict("name")
			}
		}
		offer.Name = name
	}
	if req.Description != nil {
		offer.Description = req.Description
	}
	if req.StartDate != nil {
		offer.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		offer.EndDate = *req.EndDate
	}
	if req.Photo != nil {
		offer.Photo = req.Photo
	}
	if err := validateWindow(offer.StartDate, offer.EndDate); err != nil {
		return nil, err
	}

	offer.UpdatedAt = time.Now()
	if err := s.repo.Offer.Update(ctx, offer); err != nil {
		return nil, err
	}

	updated, err := s.repo.Offer.FindByID(ctx, offer.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NotFound("offer", id)
	}

	s.log.Info("Offer updated", zap.String("offer_id", id))
	resp := response.OwnedOfferToResponse(updated)
	return &resp, nil
}

func (s *offerService) Delete(ctx context.Context, actorID uuid.UUID, id string) error {
	offer, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if _, err := ownedBusiness(ctx, s.repo, actorID, offer.BusinessID); err != nil {
		return err
	}

	if err := s.repo.Offer.Delete(ctx, offer.ID); err != nil {
		return err
	}

	if offer.QRCodePath != nil {
		if err := s.blobs.Delete(ctx, qrKey(offer.RedemptionCode)); err != nil {
			s.log.Warn("Failed to remove qr code", zap.String("offer_id", id), zap.Error(err))
		}
	}

	s.log.Info("Offer deleted", zap.String("offer_id", id))
	return nil
}

// ListByBusiness is public: it returns NotFound only for an unknown business,
// and never exposes redemption codes.
func (s *offerService) ListByBusiness(ctx context.Context, businessID string) ([]response.OfferResponse, error) {
	bid, err := parseID("business_id", businessID)
	if err != nil {
		return nil, err
	}

	business, err := s.repo.Business.FindByID(ctx, bid)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NotFound("business", businessID)
	}

	offers, err := s.repo.Offer.FindByBusinessID(ctx, bid)
	if err != nil {
		return nil, err
	}
	return response.OffersToResponse(offers), nil
}

// Redeem is a pure lookup: it neither checks the offer window nor records
// the redemption, so repeated calls return the same result.
func (s *offerService) Redeem(ctx context.Context, code string) (*response.RedemptionResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperror.NotFound("offer", "")
	}

	offer, err := s.repo.Offer.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, apperror.NotFound("offer", "")
	}

	business, err := s.repo.Business.FindByID(ctx, offer.BusinessID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Offer redeemed", zap.String("offer_id", offer.ID.String()))
	resp := response.RedemptionToResponse(offer, business)
	return &resp, nil
}

func (s *offerService) UploadPhoto(ctx context.Context, actorID uuid.UUID, id string, upload *request.FileUpload) (*response.OfferResponse, error) {
	offer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := ownedBusiness(ctx, s.repo, actorID, offer.BusinessID); err != nil {
		return nil, err
	}

	path, err := storeImage(ctx, s.blobs, "offers/"+offer.ID.String(), upload)
	if err != nil {
		return nil, err
	}

	offer.Photo = &path
	offer.UpdatedAt = time.Now()
	if err := s.repo.Offer.Update(ctx, offer); err != nil {
		return nil, err
	}

	s.log.Info("Offer photo uploaded", zap.String("offer_id", id))
	resp := response.OwnedOfferToResponse(offer)
	return &resp, nil
}
