package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/prachanda482244/Production-grade-backend/internal/logger"
	"github.com/prachanda482244/Production-grade-backend/internal/middlewares"
	"github.com/prachanda482244/Production-grade-backend/internal/models"
	"github.com/prachanda482244/Production-grade-backend/internal/services"
)

// ChannelProfileGetter defines the interface that the channel service must implement.
type ChannelProfileGetter interface {
	GetChannelProfile(ctx context.Context, viewerID uuid.UUID, username string) (*models.ChannelProfile, error)
}

// NewChannelProfileHandler returns an HTTP handler for the channel profile view.
// @Summary Channel profile
// @Description Returns the channel's public fields plus subscriber counts and whether the viewer subscribes to it
// @Tags channels
// @Produce json
// @Param username path string true "Channel username"
// @Success 200 {object} handlers.APIResponse "Channel profile"
// @Failure 400 {object} handlers.APIResponse "Missing username"
// @Failure 404 {object} handlers.APIResponse "Channel does not exist"
// @Router /users/channel/{username} [get]
// @Security BearerAuth
func NewChannelProfileHandler(svc ChannelProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		viewerID := middlewares.GetUserIDFromContext(ctx)
		if viewerID == uuid.Nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		username := chi.URLParam(r, "username")

		profile, err := svc.GetChannelProfile(ctx, viewerID, username)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyUsername):
				writeError(w, http.StatusBadRequest, "Username is required")
			case errors.Is(err, services.ErrChannelNotFound):
				writeError(w, http.StatusNotFound, "Channel does not exist")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, profile, "Channel profile fetched successfully")
	}
}
