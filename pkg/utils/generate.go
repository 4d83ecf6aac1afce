package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateRedemptionCode returns 32 hex characters drawn from crypto/rand.
func GenerateRedemptionCode() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate redemption code: %w", err)
	}
	return strings.ReplaceAll(id.String(), "-", ""), nil
}

// RedemptionURL is the link encoded into an offer's QR code.
func RedemptionURL(baseURL, code string) string {
	return strings.TrimRight(baseURL, "/") + "/api/offers/redeem/" + code
}
