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

// AvatarUpdater defines the interface that the user service must implement.
type AvatarUpdater interface {
	UpdateAvatar(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error)
}

// NewUpdateAvatarHandler returns an HTTP handler for avatar updates.
// @Summary Update avatar
// @Description Uploads a new avatar image to the media host and stores its URL
// @Tags users
// @Accept mpfd
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} handlers.APIResponse "Updated user"
// @Failure 400 {object} handlers.APIResponse "Missing file or upload failure"
// @Router /users/avatar [patch]
// @Security BearerAuth
func NewUpdateAvatarHandler(svc AvatarUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := middlewares.GetUserIDFromContext(ctx)
		if userID == uuid.Nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		file, header, err := r.FormFile("avatar")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Avatar file is required")
			return
		}
		localPath, err := saveUploadedFile(file, header)
		if err != nil {
			logger.Log.Errorw("failed to store avatar locally", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		user, err := svc.UpdateAvatar(ctx, userID, localPath)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUploadFailed):
				writeError(w, http.StatusBadRequest, "Failed to upload avatar")
			case errors.Is(err, services.ErrUserDoesNotExist):
				writeError(w, http.StatusNotFound, "User does not exist")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, user, "Avatar updated successfully")
	}
}
