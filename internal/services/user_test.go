package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/prachanda482244/Production-grade-backend/internal/models"
	"github.com/prachanda482244/Production-grade-backend/internal/services"
)

func TestUserService_GetCurrentUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockProfileWriter(ctrl)
	mockMedia := services.NewMockMediaUploader(ctrl)

	svc := services.NewUserService(mockReader, mockWriter, mockMedia)

	userID := uuid.New()

	tests := []struct {
		name      string
		user      *models.UserDB
		readerErr error
		wantErr   error
	}{
		{
			name: "success",
			user: &models.UserDB{UserID: userID, Username: "alice", Email: "alice@example.com"},
		},
		{
			name:    "user does not exist",
			user:    nil,
			wantErr: services.ErrUserDoesNotExist,
		},
		{
			name:      "reader error",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByID(gomock.Any(), userID).
				Return(tt.user, tt.readerErr)

			user, err := svc.GetCurrentUser(context.Background(), userID)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.user.Username, user.Username)
			}
		})
	}
}

func TestUserService_UpdateAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockProfileWriter(ctrl)
	mockMedia := services.NewMockMediaUploader(ctrl)

	svc := services.NewUserService(mockReader, mockWriter, mockMedia)

	userID := uuid.New()

	tests := []struct {
		name      string
		fullname  string
		email     string
		writerErr error
		wantErr   error
	}{
		{
			name:     "success",
			fullname: "Alice Smith",
			email:    "alice@example.com",
		},
		{
			name:    "empty fullname",
			email:   "alice@example.com",
			wantErr: services.ErrFieldsRequired,
		},
		{
			name:     "empty email",
			fullname: "Alice Smith",
			wantErr:  services.ErrFieldsRequired,
		},
		{
			name:      "writer error",
			fullname:  "Alice Smith",
			email:     "alice@example.com",
			writerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.fullname != "" && tt.email != "" {
				mockWriter.EXPECT().
					UpdateAccount(gomock.Any(), userID, tt.fullname, tt.email).
					Return(tt.writerErr)
			}

			if tt.wantErr == nil {
				mockReader.EXPECT().
					GetByID(gomock.Any(), userID).
					Return(&models.UserDB{UserID: userID, Fullname: tt.fullname, Email: tt.email}, nil)
			}

			user, err := svc.UpdateAccount(context.Background(), userID, tt.fullname, tt.email)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.fullname, user.Fullname)
				assert.Equal(t, tt.email, user.Email)
			}
		})
	}
}

func TestUserService_UpdateAvatar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockProfileWriter(ctrl)
	mockMedia := services.NewMockMediaUploader(ctrl)

	svc := services.NewUserService(mockReader, mockWriter, mockMedia)

	userID := uuid.New()

	tests := []struct {
		name      string
		uploadURL string
		uploadErr error
		writerErr error
		wantErr   error
	}{
		{
			name:      "success",
			uploadURL: "http://media/avatar.png",
		},
		{
			name:      "upload error",
			uploadErr: errors.New("connection refused"),
			wantErr:   services.ErrUploadFailed,
		},
		{
			name:    "empty URL from media host",
			wantErr: services.ErrUploadFailed,
		},
		{
			name:      "writer error",
			uploadURL: "http://media/avatar.png",
			writerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMedia.EXPECT().
				Upload(gomock.Any(), "/tmp/avatar.png").
				Return(tt.uploadURL, tt.uploadErr)

			if tt.uploadURL != "" && tt.uploadErr == nil {
				mockWriter.EXPECT().
					UpdateAvatar(gomock.Any(), userID, tt.uploadURL).
					Return(tt.writerErr)
			}

			if tt.wantErr == nil {
				mockReader.EXPECT().
					GetByID(gomock.Any(), userID).
					Return(&models.UserDB{UserID: userID, AvatarURL: tt.uploadURL}, nil)
			}

			user, err := svc.UpdateAvatar(context.Background(), userID, "/tmp/avatar.png")
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.uploadURL, user.AvatarURL)
			}
		})
	}
}

func TestUserService_UpdateCoverImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockProfileWriter(ctrl)
	mockMedia := services.NewMockMediaUploader(ctrl)

	svc := services.NewUserService(mockReader, mockWriter, mockMedia)

	userID := uuid.New()

	mockMedia.EXPECT().
		Upload(gomock.Any(), "/tmp/cover.png").
		Return("http://media/cover.png", nil)
	mockWriter.EXPECT().
		UpdateCoverImage(gomock.Any(), userID, "http://media/cover.png").
		Return(nil)
	mockReader.EXPECT().
		GetByID(gomock.Any(), userID).
		Return(&models.UserDB{UserID: userID, CoverImageURL: "http://media/cover.png"}, nil)

	user, err := svc.UpdateCoverImage(context.Background(), userID, "/tmp/cover.png")
	assert.NoError(t, err)
	assert.Equal(t, "http://media/cover.png", user.CoverImageURL)
}
