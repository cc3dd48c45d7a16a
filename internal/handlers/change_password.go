package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/prachanda482244/Production-grade-backend/internal/logger"
	"github.com/prachanda482244/Production-grade-backend/internal/middlewares"
	"github.com/prachanda482244/Production-grade-backend/internal/services"
)

// PasswordChanger defines the interface that the password service must implement.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

// ChangePasswordRequest represents the JSON body for a password change.
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	// required: true
	OldPassword string `json:"old_password"`

	// New password
	// required: true
	NewPassword string `json:"new_password"`
}

// NewChangePasswordHandler returns an HTTP handler for password changes.
// @Summary Change password
// @Description Verifies the old password and overwrites the stored hash
// @Tags users
// @Accept json
// @Produce json
// @Param changePasswordRequest body handlers.ChangePasswordRequest true "Password change request"
// @Success 200 {object} handlers.APIResponse "Password changed"
// @Failure 400 {object} handlers.APIResponse "Missing field"
// @Failure 401 {object} handlers.APIResponse "Old password does not match"
// @Router /users/change-password [post]
// @Security BearerAuth
func NewChangePasswordHandler(svc PasswordChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := middlewares.GetUserIDFromContext(ctx)
		if userID == uuid.Nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.OldPassword == "" || req.NewPassword == "" {
			writeError(w, http.StatusBadRequest, "Old and new password are required")
			return
		}

		if err := svc.ChangePassword(ctx, userID, req.OldPassword, req.NewPassword); err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "Invalid old password")
			case errors.Is(err, services.ErrUserDoesNotExist):
				writeError(w, http.StatusNotFound, "User does not exist")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, nil, "Password changed successfully")
	}
}
