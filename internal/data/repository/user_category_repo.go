package repository

import (
	"context"
	"fmt"

	"biz-directory/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserCategoryRepository interface {
	// Replace swaps the full tag set of a user. Call it inside a transaction.
	Replace(ctx context.Context, userID uuid.UUID, categoryIDs []uuid.UUID) error
}

type userCategoryRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewUserCategoryRepository(db database.Querier, log *zap.Logger) UserCategoryRepository {
	return &userCategoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "user_category")),
	}
}

func (ur *userCategoryRepository) Replace(ctx context.Context, userID uuid.UUID, categoryIDs []uuid.UUID) error {
	if _, err := ur.db.Exec(ctx, `DELETE FROM user_categories WHERE user_id = $1`, userID); err != nil {
		ur.log.Error("Failed to clear user categories", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("clear categories of user %s: %w", userID, err)
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO user_categories (user_id, category_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING
	`
	if _, err := ur.db.Exec(ctx, query, userID, categoryIDs); err != nil {
		if violation := database.WriteViolation(err, "category"); violation != nil {
			return violation
		}
		ur.log.Error("Failed to tag user", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("tag user %s: %w", userID, err)
	}

	return nil
}
