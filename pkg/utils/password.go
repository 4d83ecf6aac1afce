package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when no user matched, so a failed lookup
// costs the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("biz-directory-timing-pad"), bcrypt.DefaultCost)

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BurnPasswordCheck performs a throwaway comparison.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
