package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prachanda482244/Production-grade-backend/internal/logger"
	"github.com/prachanda482244/Production-grade-backend/internal/models"
	"github.com/prachanda482244/Production-grade-backend/internal/services"
)

// Refresher defines the interface that the refresh service must implement.
type Refresher interface {
	Refresh(ctx context.Context, presented string) (*models.User, *services.TokenPair, error)
}

// RefreshRequest is the optional JSON body carrying the refresh token when
// the cookie is not used.
// swagger:model RefreshRequest
type RefreshRequest struct {
	// Refresh token
	RefreshToken string `json:"refresh_token"`
}

// RefreshResult is the payload returned on successful rotation.
// swagger:model RefreshResult
type RefreshResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// NewRefreshHandler returns an HTTP handler for refresh-token rotation.
// @Summary Rotate the token pair
// @Description Exchanges the current refresh token (cookie or body) for a new pair. A token that was already rotated is rejected.
// @Tags users
// @Accept json
// @Produce json
// @Param refreshRequest body handlers.RefreshRequest false "Refresh token when not sent as a cookie"
// @Success 200 {object} handlers.APIResponse "New token pair"
// @Failure 401 {object} handlers.APIResponse "Missing, invalid, expired or reused token"
// @Router /users/refresh-token [post]
func NewRefreshHandler(svc Refresher, cookies CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		presented := ""
		if cookie, err := r.Cookie("refreshToken"); err == nil {
			presented = cookie.Value
		}
		if presented == "" && r.Body != nil {
			var req RefreshRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
				presented = req.RefreshToken
			}
		}

		_, pair, err := svc.Refresh(r.Context(), presented)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingToken):
				writeError(w, http.StatusUnauthorized, "Unauthorized request")
			case errors.Is(err, services.ErrInvalidToken):
				writeError(w, http.StatusUnauthorized, "Invalid refresh token")
			case errors.Is(err, services.ErrTokenReused):
				writeError(w, http.StatusUnauthorized, "Refresh token is expired or already used")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		setAuthCookies(w, cookies, pair.AccessToken, pair.RefreshToken)
		writeJSON(w, http.StatusOK, RefreshResult{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		}, "Access token refreshed")
	}
}
