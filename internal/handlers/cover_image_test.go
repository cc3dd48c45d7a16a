package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/prachanda482244/Production-grade-backend/internal/models"
)

func TestUpdateCoverImageHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockCoverImageUpdater(ctrl)

	userID := uuid.New()
	user := &models.User{UserID: userID, CoverImageURL: "http://media/new-cover.png"}

	tests := []struct {
		name         string
		files        map[string]string
		mockSetup    func()
		expectedCode int
		expectedMsg  string
	}{
		{
			name:  "success",
			files: map[string]string{"coverImage": "cover.png"},
			mockSetup: func() {
				mockSvc.EXPECT().
					UpdateCoverImage(gomock.Any(), userID, gomock.Any()).
					Return(user, nil)
			},
			expectedCode: http.StatusOK,
			expectedMsg:  "Cover image updated successfully",
		},
		{
			name:         "missing file",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Cover image file is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			body, contentType := registerForm(t, nil, tt.files)
			req := httptest.NewRequest(http.MethodPatch, "/users/cover-image", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			handler := withAuth(ctrl, userID, NewUpdateCoverImageHandler(mockSvc))
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			resp := decodeEnvelope(t, w)
			assert.Equal(t, tt.expectedMsg, resp.Message)
		})
	}
}
