package entity

import (
	"time"

	"github.com/google/uuid"
)

type Offer struct {
	BaseNoDelete
	BusinessID     uuid.UUID `db:"business_id"`
	Name           string    `db:"name"`
	Description    *string   `db:"description"`
	StartDate      time.Time `db:"start_date"`
	EndDate        time.Time `db:"end_date"`
	Photo          *string   `db:"photo"`
	RedemptionCode string    `db:"redemption_code"`
	QRCodePath     *string   `db:"qr_code_path"`
}
