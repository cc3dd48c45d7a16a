package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/prachanda482244/Production-grade-backend/internal/logger"
	"github.com/prachanda482244/Production-grade-backend/internal/middlewares"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, userID uuid.UUID) error
}

// NewLogoutHandler returns an HTTP handler for user logout.
// @Summary User logout
// @Description Clears the stored refresh token and expires session cookies
// @Tags users
// @Produce json
// @Success 200 {object} handlers.APIResponse "Logged out"
// @Failure 401 {object} handlers.APIResponse "Unauthorized"
// @Router /users/logout [post]
// @Security BearerAuth
func NewLogoutHandler(svc Logouter, cookies CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := middlewares.GetUserIDFromContext(ctx)
		if userID == uuid.Nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if err := svc.Logout(ctx, userID); err != nil {
			logger.Log.Errorw("failed to log out", "user_id", userID, "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		clearAuthCookies(w, cookies)
		writeJSON(w, http.StatusOK, nil, "User logged out successfully")
	}
}
