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

type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Business, error)
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.Business, error)
	FindAll(ctx context.Context) ([]*entity.Business, error)
	Update(ctx context.Context, business *entity.Business) error
}

type businessRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBusinessRepository(db database.Querier, log *zap.Logger) BusinessRepository {
	return &businessRepository{
		db:  db,
		log: log.With(zap.String("repository", "business")),
	}
}

const businessColumns = `id, user_id, branch_name, hot_line, address, targeted_gender,
	cover_photo, start_hour, close_hour, opening_days, created_at, updated_at`

func scanBusiness(row pgx.Row, b *entity.Business) error {
	return row.Scan(
		&b.ID,
		&b.UserID,
		&b.BranchName,
		&b.HotLine,
		&b.Address,
		&b.TargetedGender,
		&b.CoverPhoto,
		&b.StartHour,
		&b.CloseHour,
		&b.OpeningDays,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

func (br *businessRepository) Create(ctx context.Context, b *entity.Business) error {
	query := `
		INSERT INTO businesses (id, user_id, branch_name, hot_line, address, targeted_gender,
		                        cover_photo, start_hour, close_hour, opening_days,
		                        created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := br.db.Exec(ctx, query,
		b.ID,
		b.UserID,
		b.BranchName,
		b.HotLine,
		b.Address,
		b.TargetedGender,
		b.CoverPhoto,
		b.StartHour,
		b.CloseHour,
		b.OpeningDays,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		if violation := database.WriteViolation(err, "user"); violation != nil {
			return violation
		}
		br.log.Error("Failed to create business", zap.Error(err), zap.String("user_id", b.UserID.String()))
		return fmt.Errorf("create business for user %s: %w", b.UserID, err)
	}

	return nil
}

func (br *businessRepository) findOne(ctx context.Context, where string, arg any) (*entity.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE ` + where

	var b entity.Business
	err := scanBusiness(br.db.QueryRow(ctx, query, arg), &b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		br.log.Error("Failed to find business", zap.Error(err), zap.String("filter", where))
		return nil, fmt.Errorf("find business: %w", err)
	}

	return &b, nil
}

func (br *businessRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	return br.findOne(ctx, "id = $1", id)
}

func (br *businessRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Business, error) {
	return br.findOne(ctx, "user_id = $1", userID)
}

func (br *businessRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.Business, error) {
	result := make(map[uuid.UUID]*entity.Business, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	rows, err := br.db.Query(ctx, `SELECT `+businessColumns+` FROM businesses WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		br.log.Error("Failed to find businesses by users", zap.Error(err))
		return nil, fmt.Errorf("find businesses by users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b entity.Business
		if err := scanBusiness(rows, &b); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		result[b.UserID] = &b
	}

	return result, rows.Err()
}

func (br *businessRepository) FindAll(ctx context.Context) ([]*entity.Business, error) {
	rows, err := br.db.Query(ctx, `SELECT `+businessColumns+` FROM businesses ORDER BY branch_name`)
	if err != nil {
		br.log.Error("Failed to list businesses", zap.Error(err))
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()

	businesses := make([]*entity.Business, 0)
	for rows.Next() {
		var b entity.Business
		if err := scanBusiness(rows, &b); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		businesses = append(businesses, &b)
	}

	return businesses, rows.Err()
}

func (br *businessRepository) Update(ctx context.Context, b *entity.Business) error {
	query := `
		UPDATE businesses
		SET branch_name = $2, hot_line = $3, address = $4, targeted_gender = $5,
		    cover_photo = $6, start_hour = $7, close_hour = $8, opening_days = $9,
		    updated_at = $10
		WHERE id = $1
	`

	tag, err := br.db.Exec(ctx, query,
		b.ID,
		b.BranchName,
		b.HotLine,
		b.Address,
		b.TargetedGender,
		b.CoverPhoto,
		b.StartHour,
		b.CloseHour,
		b.OpeningDays,
		b.UpdatedAt,
	)
	if err != nil {
		br.log.Error("Failed to update business", zap.Error(err), zap.String("business_id", b.ID.String()))
		return fmt.Errorf("update business %s: %w", b.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("business", b.ID.String())
	}

	return nil
}
