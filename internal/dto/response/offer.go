package response

import (
	"time"

	"biz-directory/internal/data/entity"
)

// OfferResponse carries the redemption code and QR path only in the owner's view.
type OfferResponse struct {
	ID             string    `json:"id"`
	BusinessID     string    `json:"business_id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Photo          *string   `json:"photo,omitempty"`
	RedemptionCode string    `json:"redemption_code,omitempty"`
	QRCodePath     *string   `json:"qr_code_path,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RedemptionResponse confirms which offer a code belongs to.
type RedemptionResponse struct {
	OfferID     string    `json:"offer_id"`
	BusinessID  string    `json:"business_id"`
	BranchName  string    `json:"branch_name,omitempty"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Valid       bool      `json:"valid"`
}

// OfferToResponse is the public projection, without the redemption code.
func OfferToResponse(o *entity.Offer) OfferResponse {
	return OfferResponse{
		ID:          o.ID.String(),
		BusinessID:  o.BusinessID.String(),
		Name:        o.Name,
		Description: o.Description,
		StartDate:   o.StartDate,
		EndDate:     o.EndDate,
		Photo:       o.Photo,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// OwnedOfferToResponse is the owning business's view.
func OwnedOfferToResponse(o *entity.Offer) OfferResponse {
	resp := OfferToResponse(o)
	resp.RedemptionCode = o.RedemptionCode
	resp.QRCodePath = o.QRCodePath
	return resp
}

func OffersToResponse(offers []*entity.Offer) []OfferResponse {
	resp := make([]OfferResponse, 0, len(offers))
	for _, o := range offers {
		resp = append(resp, OfferToResponse(o))
	}
	return resp
}

func RedemptionToResponse(o *entity.Offer, b *entity.Business) RedemptionResponse {
	resp := RedemptionResponse{
		OfferID:     o.ID.String(),
		BusinessID:  o.BusinessID.String(),
		Name:        o.Name,
		Description: o.Description,
		StartDate:   o.StartDate,
		EndDate:     o.EndDate,
		Valid:       true,
	}
	if b != nil {
		resp.BranchName = b.BranchName
	}
	return resp
}
