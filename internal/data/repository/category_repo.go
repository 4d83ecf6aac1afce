package repository

import (
	"context"
	"errors"
	"fmt"

	"biz-directory/internal/data/entity"
	"biz-directory/pkg/apperror"
	"biz-directory/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	FindByKey(ctx context.Context, key string) (*entity.Category, error)
	FindAll(ctx context.Context) ([]*entity.Category, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Category, error)
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]entity.Category, error)
	CountUsers(ctx context.Context, id uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCategoryRepository(db database.Querier, log *zap.Logger) CategoryRepository {
	return &categoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "category")),
	}
}

func (cr *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (id, key, name, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := cr.db.Exec(ctx, query, category.ID, category.Key, category.Name, category.CreatedAt)
	if err != nil {
		if violation := database.WriteViolation(err, "category"); violation != nil {
			return violation
		}
		cr.log.Error("Failed to create category", zap.Error(err), zap.String("key", category.Key))
		return fmt.Errorf("create category %s: %w", category.Key, err)
	}

	return nil
}

func (cr *categoryRepository) findOne(ctx context.Context, where string, arg any) (*entity.Category, error) {
	query := `SELECT id, key, name, created_at FROM categories WHERE ` + where

	var c entity.Category
	err := cr.db.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Key, &c.Name, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		cr.log.Error("Failed to find category", zap.Error(err), zap.String("filter", where))
		return nil, fmt.Errorf("find category: %w", err)
	}

	return &c, nil
}

func (cr *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return cr.findOne(ctx, "id = $1", id)
}

func (cr *categoryRepository) FindByKey(ctx context.Context, key string) (*entity.Category, error) {
	return cr.findOne(ctx, "key = $1", key)
}

func (cr *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	rows, err := cr.db.Query(ctx, `SELECT id, key, name, created_at FROM categories ORDER BY key`)
	if err != nil {
		cr.log.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*entity.Category, 0)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Key, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

func (cr *categoryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Category, error) {
	byUser, err := cr.FindByUserIDs(ctx, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	if categories, ok := byUser[userID]; ok {
		return categories, nil
	}
	return []entity.Category{}, nil
}

func (cr *categoryRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]entity.Category, error) {
	result := make(map[uuid.UUID][]entity.Category, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT uc.user_id, c.id, c.key, c.name, c.created_at
		FROM user_categories uc
		JOIN categories c ON c.id = uc.category_id
		WHERE uc.user_id = ANY($1)
		ORDER BY c.key
	`

	rows, err := cr.db.Query(ctx, query, userIDs)
	if err != nil {
		cr.log.Error("Failed to find categories by users", zap.Error(err))
		return nil, fmt.Errorf("find categories by users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID uuid.UUID
			c      entity.Category
		)
		if err := rows.Scan(&userID, &c.ID, &c.Key, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user category: %w", err)
		}
		result[userID] = append(result[userID], c)
	}

	return result, rows.Err()
}

func (cr *categoryRepository) CountUsers(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := cr.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_categories WHERE category_id = $1`, id).Scan(&count)
	if err != nil {
		cr.log.Error("Failed to count category users", zap.Error(err), zap.String("category_id", id.String()))
		return 0, fmt.Errorf("count users of category %s: %w", id, err)
	}
	return count, nil
}

func (cr *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := cr.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if violation := database.DeleteViolation(err, "category"); violation != nil {
			return violation
		}
		cr.log.Error("Failed to delete category", zap.Error(err), zap.String("category_id", id.String()))
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("category", id.String())
	}

	return nil
}
