package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLogouter(ctrl)

	userID := uuid.New()

	tests := []struct {
		name         string
		mockSetup    func()
		expectedCode int
		expectedMsg  string
	}{
		{
			name: "success",
			mockSetup: func() {
				mockSvc.EXPECT().
					Logout(gomock.Any(), userID).
					Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedMsg:  "User logged out successfully",
		},
		{
			name: "internal error",
			mockSetup: func() {
				mockSvc.EXPECT().
					Logout(gomock.Any(), userID).
					Return(errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/users/logout", nil)
			w := httptest.NewRecorder()

			handler := withAuth(ctrl, userID, NewLogoutHandler(mockSvc, CookieConfig{}))
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			resp := decodeEnvelope(t, w)
			assert.Equal(t, tt.expectedMsg, resp.Message)

			if tt.expectedCode == http.StatusOK {
				// Both session cookies must be expired.
				for _, name := range []string{"accessToken", "refreshToken"} {
					value, ok := cookieValue(w, name)
					assert.True(t, ok)
					assert.Empty(t, value)
				}
			}
		})
	}
}

func TestLogoutHandler_Unauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLogouter(ctrl)

	req := httptest.NewRequest(http.MethodPost, "/users/logout", nil)
	w := httptest.NewRecorder()

	NewLogoutHandler(mockSvc, CookieConfig{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
