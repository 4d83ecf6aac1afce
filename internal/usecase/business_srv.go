package usecase

import (
	"context"
	"time"

	"biz-directory/internal/data/repository"
	"biz-directory/internal/dto/request"
	"biz-directory/internal/dto/response"
	"biz-directory/pkg/apperror"
	"biz-directory/pkg/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BusinessService interface {
	List(ctx context.Context) ([]response.BusinessResponse, error)
	Get(ctx context.Context, id string) (*response.BusinessResponse, error)
	GetByUserID(ctx context.Context, userID string) (*response.BusinessResponse, error)
	UploadCover(ctx context.Context, actorID uuid.UUID, upload *request.FileUpload) (*response.BusinessResponse, error)
}

type businessService struct {
	repo  *repository.Repository
	blobs storage.BlobStore
	log   *zap.Logger
}

func NewBusinessService(repo *repository.Repository, blobs storage.BlobStore, log *zap.Logger) BusinessService {
	return &businessService{
		repo:  repo,
		blobs: blobs,
		log:   log.With(zap.String("service", "business")),
	}
}

func (s *businessService) List(ctx context.Context) ([]response.BusinessResponse, error) {
	businesses, err := s.repo.Business.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return response.BusinessesToResponse(businesses), nil
}

func (s *businessService) Get(ctx context.Context, id string) (*response.BusinessResponse, error) {
	businessID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}

	business, err := s.repo.Business.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NotFound("business", id)
	}

	resp := response.BusinessToResponse(business)
	return &resp, nil
}

func (s *businessService) GetByUserID(ctx context.Context, userID string) (*response.BusinessResponse, error) {
	uid, err := parseID("user_id", userID)
	if err != nil {
		return nil, err
	}

	business, err := s.repo.Business.FindByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NotFound("business for user", userID)
	}

	resp := response.BusinessToResponse(business)
	return &resp, nil
}

func (s *businessService) UploadCover(ctx context.Context, actorID uuid.UUID, upload *request.FileUpload) (*response.BusinessResponse, error) {
	business, err := s.repo.Business.FindByUserID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.Forbidden("only business accounts have a cover photo")
	}

	path, err := storeImage(ctx, s.blobs, "covers/"+business.ID.String(), upload)
	if err != nil {
		return nil, err
	}

	business.CoverPhoto = &path
	business.UpdatedAt = time.Now()
	if err := s.repo.Business.Update(ctx, business); err != nil {
		return nil, err
	}

	s.log.Info("Cover photo uploaded", zap.String("business_id", business.ID.String()))
	resp := response.BusinessToResponse(business)
	return &resp, nil
}
