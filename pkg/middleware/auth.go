package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"biz-directory/pkg/apperror"
	"biz-directory/pkg/utils"

	"go.uber.org/zap"
)

// TokenValidator resolves a bearer token into the caller's identity.
type TokenValidator interface {
	ValidateToken(ctx context.Context, rawToken string) (*utils.Identity, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthJWT rejects requests without a valid, unrevoked access token and puts
// the caller's identity on the request context.
func AuthJWT(validator TokenValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// missing, malformed and invalid credentials all get the same answer
			token, ok := BearerToken(r)
			if !ok {
				logger.Warn("Rejected request without bearer token", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, apperror.ErrUnauthenticated.Message)
				return
			}

			identity, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, apperror.ErrUnauthenticated) || apperror.Is(err, apperror.KindUnauthenticated) {
					logger.Warn("Rejected token", zap.String("path", r.URL.Path))
					utils.ResponseUnauthorized(w, apperror.ErrUnauthenticated.Message)
					return
				}
				logger.Error("Failed to validate token", zap.Error(err))
				utils.ResponseUnavailable(w, "Authentication temporarily unavailable")
				return
			}

			ctx := utils.SetIdentityContext(r.Context(), *identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets only callers whose token carries role through.
func RequireRole(role string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, apperror.ErrUnauthenticated.Message)
				return
			}

			actual, _ := utils.GetRoleFromContext(r.Context())
			if actual != role {
				logger.Warn("Role check failed",
					zap.String("user_id", userID.String()),
					zap.String("required", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Only "+role+" accounts can do this")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
