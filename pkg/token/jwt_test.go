package token

import (
	"strings"
	"testing"
	"time"

	"biz-directory/pkg/apperror"

	"github.com/google/uuid"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	m := NewManager("secret", "biz-directory", 30*time.Minute)
	userID := uuid.New()

	signed, issued, err := m.Sign(userID, "alice", "business")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != userID.String() || claims.Username != "alice" || claims.Role != "business" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.ID == "" || claims.ID != issued.ID {
		t.Fatalf("expected jti %s, got %s", issued.ID, claims.ID)
	}
}

func TestVerifyExpired(t *testing.T) {
	m := NewManager("secret", "biz-directory", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, _, err := m.Sign(uuid.New(), "bob", "customer")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	m.now = time.Now
	if _, err := m.Verify(signed); !apperror.Is(err, apperror.KindUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestVerifyRejectsTamperedAndForeign(t *testing.T) {
	m := NewManager("secret", "biz-directory", time.Minute)
	signed, _, err := m.Sign(uuid.New(), "carol", "customer")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parts := strings.Split(signed, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := m.Verify(tampered); !apperror.Is(err, apperror.KindUnauthenticated) {
		t.Fatalf("expected tampered token rejected, got %v", err)
	}

	other := NewManager("other-secret", "biz-directory", time.Minute)
	if _, err := other.Verify(signed); !apperror.Is(err, apperror.KindUnauthenticated) {
		t.Fatalf("expected foreign secret rejected, got %v", err)
	}

	if _, err := m.Verify("not-a-token"); !apperror.Is(err, apperror.KindUnauthenticated) {
		t.Fatalf("expected garbage rejected, got %v", err)
	}
}
