package utils

import (
	"context"

	"github.com/google/uuid"
)

type identityKey struct{}

// Identity is the claim set attached to an authenticated request.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Role     string
	TokenID  string
}

func SetIdentityContext(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the caller set by the auth middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || identity.UserID == uuid.Nil {
		return Identity{}, false
	}
	return identity, true
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	identity, ok := IdentityFromContext(ctx)
	return identity.UserID, ok
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	identity, ok := IdentityFromContext(ctx)
	return identity.Role, ok
}
