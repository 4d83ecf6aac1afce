package response

import (
	"time"

	"biz-directory/internal/data/entity"
)

type CategoryResponse struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

type BusinessResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	BranchName     string  `json:"branch_name"`
	HotLine        *string `json:"hot_line,omitempty"`
	Address        *string `json:"address,omitempty"`
	TargetedGender *string `json:"targeted_gender,omitempty"`
	CoverPhoto     *string `json:"cover_photo,omitempty"`
	StartHour      *string `json:"start_hour,omitempty"`
	CloseHour      *string `json:"close_hour,omitempty"`
	OpeningDays    *string `json:"opening_days,omitempty"`
}

type CustomerResponse struct {
	ID            string  `json:"id"`
	MaritalStatus *string `json:"marital_status,omitempty"`
	Age           *int    `json:"age,omitempty"`
	PriceRange    *string `json:"price_range,omitempty"`
	Gender        *string `json:"gender,omitempty"`
}

// IdentityResponse never carries the password hash.
type IdentityResponse struct {
	ID           string             `json:"id"`
	Email        string             `json:"email"`
	Username     string             `json:"username"`
	PhoneNumber  *string            `json:"phone_number,omitempty"`
	Address      *string            `json:"address,omitempty"`
	ProfilePhoto *string            `json:"profile_photo,omitempty"`
	Role         entity.Role        `json:"role"`
	Business     *BusinessResponse  `json:"business,omitempty"`
	Customer     *CustomerResponse  `json:"customer,omitempty"`
	Categories   []CategoryResponse `json:"categories"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func CategoryToResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:   c.ID.String(),
		Key:  c.Key,
		Name: c.Name,
	}
}

func CategoriesToResponse(categories []*entity.Category) []CategoryResponse {
	resp := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, CategoryToResponse(c))
	}
	return resp
}

func BusinessToResponse(b *entity.Business) BusinessResponse {
	return BusinessResponse{
		ID:             b.ID.String(),
		UserID:         b.UserID.String(),
		BranchName:     b.BranchName,
		HotLine:        b.HotLine,
		Address:        b.Address,
		TargetedGender: b.TargetedGender,
		CoverPhoto:     b.CoverPhoto,
		StartHour:      b.StartHour,
		CloseHour:      b.CloseHour,
		OpeningDays:    b.OpeningDays,
	}
}

func BusinessesToResponse(businesses []*entity.Business) []BusinessResponse {
	resp := make([]BusinessResponse, 0, len(businesses))
	for _, b := range businesses {
		resp = append(resp, BusinessToResponse(b))
	}
	return resp
}

func IdentityToResponse(identity *entity.Identity) IdentityResponse {
	user := identity.User
	resp := IdentityResponse{
		ID:           user.ID.String(),
		Email:        user.Email,
		Username:     user.Username,
		PhoneNumber:  user.PhoneNumber,
		Address:      user.Address,
		ProfilePhoto: user.ProfilePhoto,
		Role:         identity.Role(),
		Categories:   make([]CategoryResponse, 0, len(identity.Categories)),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	switch profile := identity.Profile.(type) {
	case *entity.Business:
		b := BusinessToResponse(profile)
		resp.Business = &b
	case *entity.Customer:
		resp.Customer = &CustomerResponse{
			ID:            profile.ID.String(),
			MaritalStatus: profile.MaritalStatus,
			Age:           profile.Age,
			PriceRange:    profile.PriceRange,
			Gender:        profile.Gender,
		}
	}

	for i := range identity.Categories {
		resp.Categories = append(resp.Categories, CategoryToResponse(&identity.Categories[i]))
	}

	return resp
}

func IdentitiesToResponse(identities []*entity.Identity) []IdentityResponse {
	resp := make([]IdentityResponse, 0, len(identities))
	for _, identity := range identities {
		resp = append(resp, IdentityToResponse(identity))
	}
	return resp
}
