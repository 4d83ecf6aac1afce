package response

import (
	"time"

	"biz-directory/internal/data/entity"
)

type AuthResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresAt   time.Time        `json:"expires_at"`
	User        IdentityResponse `json:"user"`
}

func AuthToResponse(token string, expiresAt time.Time, identity *entity.Identity) AuthResponse {
	return AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        IdentityToResponse(identity),
	}
}
