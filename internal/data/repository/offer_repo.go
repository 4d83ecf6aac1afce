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

type OfferRepository interface {
	Create(ctx context.Context, offer *entity.Offer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error)
	FindByCode(ctx context.Context, code string) (*entity.Offer, error)
	FindByBusinessAndName(ctx context.Context, businessID uuid.UUID, name string) (*entity.Offer, error)
	FindByBusinessID(ctx context.Context, businessID uuid.UUID) ([]*entity.Offer, error)
	// Update writes the editable fields only; the redemption code and QR
	// path are left as stored.
	Update(ctx context.Context, offer *entity.Offer) error
	SetQRCodePath(ctx context.Context, id uuid.UUID, path string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type offerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewOfferRepository(db database.Querier, log *zap.Logger) OfferRepository {
	return &offerRepository{
		db:  db,
		log: log.With(zap.String("repository", "offer")),
	}
}

const offerColumns = `id, business_id, name, description, start_date, end_date, photo,
	redemption_code, qr_code_path, created_at, updated_at`

func scanOffer(row pgx.Row, o *entity.Offer) error {
	return row.Scan(
		&o.ID,
		&o.BusinessID,
		&o.Name,
		&o.Description,
		&o.StartDate,
		&o.EndDate,
		&o.Photo,
		&o.RedemptionCode,
		&o.QRCodePath,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
}

func (ofr *offerRepository) Create(ctx context.Context, o *entity.Offer) error {
	query := `
		INSERT INTO offers (id, business_id, name, description, start_date, end_date, photo,
		                    redemption_code, qr_code_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := ofr.db.Exec(ctx, query,
		o.ID,
		o.BusinessID,
		o.Name,
		o.Description,
		o.StartDate,
		o.EndDate,
		o.Photo,
		o.RedemptionCode,
		o.QRCodePath,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		if violation := database.WriteViolation(err, "business"); violation != nil {
			return violation
		}
		ofr.log.Error("Failed to create offer", zap.Error(err), zap.String("business_id", o.BusinessID.String()))
		return fmt.Errorf("create offer %s: %w", o.Name, err)
	}

	return nil
}

func (ofr *offerRepository) findOne(ctx context.Context, where string, args ...any) (*entity.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE ` + where

	var o entity.Offer
	err := scanOffer(ofr.db.QueryRow(ctx, query, args...), &o)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ofr.log.Error("Failed to find offer", zap.Error(err), zap.String("filter", where))
		return nil, fmt.Errorf("find offer: %w", err)
	}

	return &o, nil
}

func (ofr *offerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	return ofr.findOne(ctx, "id = $1", id)
}

func (ofr *offerRepository) FindByCode(ctx context.Context, code string) (*entity.Offer, error) {
	return ofr.findOne(ctx, "redemption_code = $1", code)
}

func (ofr *offerRepository) FindByBusinessAndName(ctx context.Context, businessID uuid.UUID, name string) (*entity.Offer, error) {
	return ofr.findOne(ctx, "business_id = $1 AND name = $2", businessID, name)
}

func (ofr *offerRepository) FindByBusinessID(ctx context.Context, businessID uuid.UUID) ([]*entity.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE business_id = $1 ORDER BY start_date, name`

	rows, err := ofr.db.Query(ctx, query, businessID)
	if err != nil {
		ofr.log.Error("Failed to list offers", zap.Error(err), zap.String("business_id", businessID.String()))
		return nil, fmt.Errorf("list offers of business %s: %w", businessID, err)
	}
	defer rows.Close()

	offers := make([]*entity.Offer, 0)
	for rows.Next() {
		var o entity.Offer
		if err := scanOffer(rows, &o); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, &o)
	}

	return offers, rows.Err()
}

func (ofr *offerRepository) Update(ctx context.Context, o *entity.Offer) error {
	query := `
		UPDATE offers
		SET name = $2, description = $3, start_date = $4, end_date = $5, photo = $6,
		    updated_at = $7
		WHERE id = $1
	`

	tag, err := ofr.db.Exec(ctx, query,
		o.ID,
		o.Name,
		o.Description,
		o.StartDate,
		o.EndDate,
		o.Photo,
		o.UpdatedAt,
	)
	if err != nil {
		if violation := database.WriteViolation(err, "business"); violation != nil {
			return violation
		}
		ofr.log.Error("Failed to update offer", zap.Error(err), zap.String("offer_id", o.ID.String()))
		return fmt.Errorf("update offer %s: %w", o.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("offer", o.ID.String())
	}

	return nil
}

// SetQRCodePath records the rendered artifact once, right after creation.
func (ofr *offerRepository) SetQRCodePath(ctx context.Context, id uuid.UUID, path string) error {
	tag, err := ofr.db.Exec(ctx, `UPDATE offers SET qr_code_path = $2 WHERE id = $1 AND qr_code_path IS NULL`, id, path)
	if err != nil {
		ofr.log.Error("Failed to set qr code path", zap.Error(err), zap.String("offer_id", id.String()))
		return fmt.Errorf("set qr code path of offer %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("offer", id.String())
	}

	return nil
}

func (ofr *offerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := ofr.db.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		ofr.log.Error("Failed to delete offer", zap.Error(err), zap.String("offer_id", id.String()))
		return fmt.Errorf("delete offer %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("offer", id.String())
	}

	return nil
}
