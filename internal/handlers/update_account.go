package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/prachanda482244/Production-grade-backend/internal/logger"
	"github.com/prachanda482244/Production-grade-backend/internal/middlewares"
	"github.com/prachanda482244/Production-grade-backend/internal/models"
	"github.com/prachanda482244/Production-grade-backend/internal/services"
)

// AccountUpdater defines the interface that the user service must implement.
type AccountUpdater interface {
	UpdateAccount(ctx context.Context, userID uuid.UUID, fullname, email string) (*models.User, error)
}

// UpdateAccountRequest represents the JSON body for an account update.
// swagger:model UpdateAccountRequest
type UpdateAccountRequest struct {
	// Full name
	// required: true
	Fullname string `json:"fullname"`

	// Email
	// required: true
	Email string `json:"email"`
}

// NewUpdateAccountHandler returns an HTTP handler for account updates.
// @Summary Update account details
// @Description Overwrites fullname and email
// @Tags users
// @Accept json
// @Produce json
// @Param updateAccountRequest body handlers.UpdateAccountRequest true "Account update request"
// @Success 200 {object} handlers.APIResponse "Updated user"
// @Failure 400 {object} handlers.APIResponse "Missing field"
// @Router /users/update-account [patch]
// @Security BearerAuth
func NewUpdateAccountHandler(svc AccountUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := middlewares.GetUserIDFromContext(ctx)
		if userID == uuid.Nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req UpdateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := svc.UpdateAccount(ctx, userID, req.Fullname, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrFieldsRequired):
				writeError(w, http.StatusBadRequest, "All fields are required")
			case errors.Is(err, services.ErrUserDoesNotExist):
				writeError(w, http.StatusNotFound, "User does not exist")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, user, "Account details updated successfully")
	}
}
