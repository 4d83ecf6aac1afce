package utils

import (
	"path/filepath"
	"strings"
	"testing"

	"biz-directory/pkg/apperror"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "18080")
	t.Setenv("PUBLIC_URL", "https://deals.example.com/")
	t.Setenv("JWT_EXPIRY_MINUTES", "45")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.App.Port != "18080" {
		t.Fatalf("expected PORT override, got %s", cfg.App.Port)
	}
	if cfg.App.PublicURL != "https://deals.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.App.PublicURL)
	}
	if cfg.JWT.ExpiryMinutes != 45 {
		t.Fatalf("expected expiry 45, got %d", cfg.JWT.ExpiryMinutes)
	}
	if cfg.Email.Host != "smtp.example.com" || cfg.Email.Port != 587 {
		t.Fatalf("unexpected email config %+v", cfg.Email)
	}
	if cfg.Storage.Driver != "local" || cfg.QR.Size != 256 {
		t.Fatalf("expected defaults, got %+v %+v", cfg.Storage, cfg.QR)
	}
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), ".env")); err == nil {
		t.Fatalf("expected missing JWT_SECRET to fail")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Fatalf("expected password to match")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatalf("expected password mismatch")
	}
}

func TestValidateRequestUsesJSONNames(t *testing.T) {
	type req struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `json:"branch_name" validate:"required"`
	}

	err := ValidateRequest(req{Email: "nope"})
	if !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := err.(*apperror.Error).Fields
	if fields["email"] != "Invalid email format" {
		t.Fatalf("unexpected email message %q", fields["email"])
	}
	if fields["branch_name"] != "This field is required" {
		t.Fatalf("unexpected branch_name message %q", fields["branch_name"])
	}

	if err := ValidateRequest(req{Email: "a@b.co", Name: "x"}); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestRedemptionCode(t *testing.T) {
	a, err := GenerateRedemptionCode()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, _ := GenerateRedemptionCode()
	if len(a) != 32 || strings.Contains(a, "-") {
		t.Fatalf("unexpected code shape %q", a)
	}
	if a == b {
		t.Fatalf("expected distinct codes")
	}
	if got := RedemptionURL("http://x/", a); got != "http://x/api/offers/redeem/"+a {
		t.Fatalf("unexpected url %s", got)
	}
}
