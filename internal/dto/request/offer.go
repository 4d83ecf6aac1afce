package request

import "time"

type OfferRequest struct {
	BusinessID  string    `json:"business_id" validate:"required,uuid"`
	Name        string    `json:"name" validate:"required,min=1,max=255"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	Photo       *string   `json:"photo,omitempty" validate:"omitempty,max=500"`
}

// OfferUpdateRequest has no redemption code or QR path: both are fixed at
// creation.
type OfferUpdateRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitnil,min=1,max=255"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Photo       *string    `json:"photo,omitempty" validate:"omitempty,max=500"`
}
