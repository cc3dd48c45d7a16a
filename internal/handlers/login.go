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

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, email *string, password string) (*models.User, *services.TokenPair, error)
}

// LoginRequest represents the JSON body for user login. Either username or
// email must be supplied.
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// default: john_doe
	Username string `json:"username"`

	// Email
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// LoginResult is the payload returned on successful login.
// swagger:model LoginResult
type LoginResult struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate by username or email, return the token pair and set session cookies
// @Tags users
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} handlers.APIResponse "User and token pair"
// @Failure 400 {object} handlers.APIResponse "Missing identifier or invalid body"
// @Failure 401 {object} handlers.APIResponse "Invalid credentials"
// @Failure 404 {object} handlers.APIResponse "User does not exist"
// @Router /users/login [post]
func NewLoginHandler(svc Loginer, cookies CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if req.Username == "" && req.Email == "" {
			writeError(w, http.StatusBadRequest, "Username or email is required")
			return
		}

		var username, email *string
		if req.Username != "" {
			username = &req.Username
		}
		if req.Email != "" {
			email = &req.Email
		}

		user, pair, err := svc.Login(r.Context(), username, email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserDoesNotExist):
				writeError(w, http.StatusNotFound, "User does not exist")
			case errors.Is(err, services.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "Invalid user credentials")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		setAuthCookies(w, cookies, pair.AccessToken, pair.RefreshToken)
		writeJSON(w, http.StatusOK, LoginResult{
			User:         user,
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		}, "User logged in successfully")
	}
}
