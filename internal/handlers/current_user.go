package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/prachanda482244/Production-grade-backend/internal/logger"
	"github.com/prachanda482244/Production-grade-backend/internal/middlewares"
	"github.com/prachanda482244/Production-grade-backend/internal/models"
	"github.com/prachanda482244/Production-grade-backend/internal/services"
)

// CurrentUserGetter defines the interface that the user service must implement.
type CurrentUserGetter interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// NewCurrentUserHandler returns an HTTP handler for fetching the
// authenticated user.
// @Summary Current user
// @Description Returns the authenticated user's sanitized profile
// @Tags users
// @Produce json
// @Success 200 {object} handlers.APIResponse "Current user"
// @Failure 401 {object} handlers.APIResponse "Unauthorized"
// @Router /users/current-user [get]
// @Security BearerAuth
func NewCurrentUserHandler(svc CurrentUserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := middlewares.GetUserIDFromContext(ctx)
		if userID == uuid.Nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := svc.GetCurrentUser(ctx, userID)
		if err != nil {
			if errors.Is(err, services.ErrUserDoesNotExist) {
				writeError(w, http.StatusNotFound, "User does not exist")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, user, "Current user fetched successfully")
	}
}
