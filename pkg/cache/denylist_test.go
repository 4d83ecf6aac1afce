package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryDenylistRevokesUntilExpiry(t *testing.T) {
	d := NewMemoryDenylist().(*memoryDenylist)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }
	ctx := context.Background()

	if err := d.Revoke(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	revoked, _ := d.IsRevoked(ctx, "jti-1")
	if !revoked {
		t.Fatal("expected token to be revoked")
	}
	other, _ := d.IsRevoked(ctx, "jti-2")
	if other {
		t.Fatal("unrelated token reported revoked")
	}

	now = now.Add(2 * time.Minute)
	revoked, _ = d.IsRevoked(ctx, "jti-1")
	if revoked {
		t.Fatal("revocation should lapse with the token")
	}
}

func TestMemoryDenylistIgnoresExpiredTokens(t *testing.T) {
	d := NewMemoryDenylist()
	ctx := context.Background()

	if err := d.Revoke(ctx, "jti", 0); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if revoked, _ := d.IsRevoked(ctx, "jti"); revoked {
		t.Fatal("a token with no remaining lifetime needs no entry")
	}
}
