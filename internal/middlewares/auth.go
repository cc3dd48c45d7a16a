package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/prachanda482244/Production-grade-backend/internal/jwt"
	"github.com/prachanda482244/Production-grade-backend/internal/logger"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetAccessClaims(ctx context.Context, tokenString string) (*jwt.AccessClaims, error)
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var claimsKey = contextKey{}

// AuthMiddleware returns a middleware that validates the access token and
// stores its claims in the request context for downstream handlers.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			claims, err := tokener.GetAccessClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx = setClaimsToContext(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// setClaimsToContext stores access claims in the context
func setClaimsToContext(ctx context.Context, claims *jwt.AccessClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaimsFromContext retrieves the access claims from the context. Returns
// nil if not present.
func GetClaimsFromContext(ctx context.Context) *jwt.AccessClaims {
	claims, _ := ctx.Value(claimsKey).(*jwt.AccessClaims)
	return claims
}

// GetUserIDFromContext retrieves the authenticated user id from the context.
// Returns uuid.Nil if not present.
func GetUserIDFromContext(ctx context.Context) uuid.UUID {
	claims := GetClaimsFromContext(ctx)
	if claims == nil {
		return uuid.Nil
	}
	return claims.UserID
}
