package usecase

import (
	"context"
	"strings"
	"time"

	"biz-directory/internal/data/entity"
	"biz-directory/internal/data/repository"
	"biz-directory/internal/dto/request"
	"biz-directory/internal/dto/response"
	"biz-directory/pkg/apperror"
	"biz-directory/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryService interface {
	Create(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error)
	Get(ctx context.Context, id string) (*response.CategoryResponse, error)
	List(ctx context.Context) ([]response.CategoryResponse, error)
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCategoryService(repo *repository.Repository, log *zap.Logger) CategoryService {
	return &categoryService{
		repo: repo,
		log:  log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) Create(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	req.Key = strings.TrimSpace(req.Key)
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.ValidateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.Category.FindByKey(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("key")
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Key:        req.Key,
		Name:       req.Name,
	}
	if err := s.repo.Category.Create(ctx, category); err != nil {
		return nil, err
	}

	s.log.Info("Category created", zap.String("key", category.Key))
	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) Get(ctx context.Context, id string) (*response.CategoryResponse, error) {
	categoryID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}

	category, err := s.repo.Category.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NotFound("category", id)
	}

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) List(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return response.CategoriesToResponse(categories), nil
}

// Delete refuses while any user is still tagged with the category.
func (s *categoryService) Delete(ctx context.Context, id string) error {
	categoryID, err := parseID("id", id)
	if err != nil {
		return err
	}

	count, err := s.repo.Category.CountUsers(ctx, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.DependencyConflict("category is still assigned to users")
	}

	if err := s.repo.Category.Delete(ctx, categoryID); err != nil {
		return err
	}

	s.log.Info("Category deleted", zap.String("category_id", id))
	return nil
}
