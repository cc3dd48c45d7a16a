package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/prachanda482244/Production-grade-backend/internal/logger"
	"github.com/prachanda482244/Production-grade-backend/internal/models"
	"github.com/prachanda482244/Production-grade-backend/internal/services"
)

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, input services.RegisterInput) (*models.User, error)
}

// RegisterMediaUploader uploads a local file to the media host.
type RegisterMediaUploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account from a multipart form. Requires an avatar image; cover image is optional. Both are uploaded to the media host before the account is created.
// @Tags users
// @Accept mpfd
// @Produce json
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param fullname formData string true "Full name"
// @Param avatar formData file true "Avatar image"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} handlers.APIResponse "User registered"
// @Failure 400 {object} handlers.APIResponse "Missing field or avatar"
// @Failure 409 {object} handlers.APIResponse "Username or email already exists"
// @Router /users/register [post]
func NewRegisterHandler(svc Registerer, media RegisterMediaUploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		input := services.RegisterInput{
			Username: strings.TrimSpace(r.FormValue("username")),
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
			Fullname: strings.TrimSpace(r.FormValue("fullname")),
		}
		if input.Username == "" || input.Email == "" || input.Password == "" || input.Fullname == "" {
			writeError(w, http.StatusBadRequest, "All fields are required")
			return
		}

		avatarFile, avatarHeader, err := r.FormFile("avatar")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Avatar file is required")
			return
		}
		avatarPath, err := saveUploadedFile(avatarFile, avatarHeader)
		if err != nil {
			logger.Log.Errorw("failed to store avatar locally", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		avatarURL, err := media.Upload(ctx, avatarPath)
		if err != nil || avatarURL == "" {
			writeError(w, http.StatusBadRequest, "Avatar file is missing")
			return
		}
		input.AvatarURL = avatarURL

		// Cover image is optional; an upload failure leaves it empty.
		if coverFile, coverHeader, err := r.FormFile("coverImage"); err == nil {
			if coverPath, err := saveUploadedFile(coverFile, coverHeader); err == nil {
				if coverURL, err := media.Upload(ctx, coverPath); err == nil {
					input.CoverImageURL = coverURL
				}
			}
		}

		user, err := svc.Register(ctx, input)
		if err != nil {
			switch err {
			case services.ErrUserAlreadyExists:
				writeError(w, http.StatusConflict, "User with username or email already exists")
			case services.ErrAvatarRequired:
				writeError(w, http.StatusBadRequest, "Avatar file is required")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, user, "User registered successfully")
	}
}
