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

// CoverImageUpdater defines the interface that the user service must implement.
type CoverImageUpdater interface {
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error)
}

// NewUpdateCoverImageHandler returns an HTTP handler for cover image updates.
// @Summary Update cover image
// @Description Uploads a new cover image to the media host and stores its URL
// @Tags users
// @Accept mpfd
// @Produce json
// @Param coverImage formData file true "Cover image"
// @Success 200 {object} handlers.APIResponse "Updated user"
// @Failure 400 {object} handlers.APIResponse "Missing file or upload failure"
// @Router /users/cover-image [patch]
// @Security BearerAuth
func NewUpdateCoverImageHandler(svc CoverImageUpdater) http.HandlerFunc {
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

		file, header, err := r.FormFile("coverImage")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Cover image file is required")
			return
		}
		localPath, err := saveUploadedFile(file, header)
		if err != nil {
			logger.Log.Errorw("failed to store cover image locally", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		user, err := svc.UpdateCoverImage(ctx, userID, localPath)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUploadFailed):
				writeError(w, http.StatusBadRequest, "Failed to upload cover image")
			case errors.Is(err, services.ErrUserDoesNotExist):
				writeError(w, http.StatusNotFound, "User does not exist")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, user, "Cover image updated successfully")
	}
}
