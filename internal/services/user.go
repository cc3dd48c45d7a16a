package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/prachanda482244/Production-grade-backend/internal/logger"
	"github.com/prachanda482244/Production-grade-backend/internal/models"
)

var (
	ErrFieldsRequired = errors.New("all fields are required")
	ErrUploadFailed   = errors.New("failed to upload file to media host")
)

// ProfileWriter defines the profile-field write operations for users.
type ProfileWriter interface {
	UpdateAccount(ctx context.Context, userID uuid.UUID, fullname, email string) error
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, coverImageURL string) error
}

// MediaUploader uploads a local file to the media host and returns its URL.
type MediaUploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// UserService handles profile reads and updates.
type UserService struct {
	reader UserReader
	writer ProfileWriter
	media  MediaUploader
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer ProfileWriter, media MediaUploader) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
		media:  media,
	}
}

// GetCurrentUser returns the sanitized user for the given id.
func (svc *UserService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserDoesNotExist
	}
	return user.Public(), nil
}

// UpdateAccount overwrites fullname and email and returns the updated user.
func (svc *UserService) UpdateAccount(ctx context.Context, userID uuid.UUID, fullname, email string) (*models.User, error) {
	if fullname == "" || email == "" {
		return nil, ErrFieldsRequired
	}

	if err := svc.writer.UpdateAccount(ctx, userID, fullname, email); err != nil {
		logger.Log.Errorw("failed to update account", "user_id", userID, "err", err)
		return nil, err
	}

	return svc.GetCurrentUser(ctx, userID)
}

// UpdateAvatar uploads the local file to the media host and stores the
// resulting URL. An upload that yields no URL blocks the update.
func (svc *UserService) UpdateAvatar(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error) {
	url, err := svc.media.Upload(ctx, localPath)
	if err != nil || url == "" {
		logger.Log.Errorw("avatar upload failed", "user_id", userID, "err", err)
		return nil, ErrUploadFailed
	}

	if err := svc.writer.UpdateAvatar(ctx, userID, url); err != nil {
		logger.Log.Errorw("failed to update avatar", "user_id", userID, "err", err)
		return nil, err
	}

	return svc.GetCurrentUser(ctx, userID)
}

// UpdateCoverImage uploads the local file to the media host and stores the
// resulting URL.
func (svc *UserService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error) {
	url, err := svc.media.Upload(ctx, localPath)
	if err != nil || url == "" {
		logger.Log.Errorw("cover image upload failed", "user_id", userID, "err", err)
		return nil, ErrUploadFailed
	}

	if err := svc.writer.UpdateCoverImage(ctx, userID, url); err != nil {
		logger.Log.Errorw("failed to update cover image", "user_id", userID, "err", err)
		return nil, err
	}

	return svc.GetCurrentUser(ctx, userID)
}
