package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/prachanda482244/Production-grade-backend/internal/models"
	"github.com/prachanda482244/Production-grade-backend/internal/services"
)

func TestRefreshHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRefresher(ctrl)

	user := &models.User{UserID: uuid.New(), Username: "john"}
	pair := &services.TokenPair{AccessToken: "NEW_ACCESS", RefreshToken: "NEW_REFRESH"}

	tests := []struct {
		name         string
		cookie       string
		body         interface{}
		mockSetup    func()
		expectedCode int
		expectedMsg  string
	}{
		{
			name:   "success via cookie",
			cookie: "OLD_REFRESH",
			mockSetup: func() {
				mockSvc.EXPECT().
					Refresh(gomock.Any(), "OLD_REFRESH").
					Return(user, pair, nil)
			},
			expectedCode: http.StatusOK,
			expectedMsg:  "Access token refreshed",
		},
		{
			name: "success via body",
			body: RefreshRequest{RefreshToken: "OLD_REFRESH"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Refresh(gomock.Any(), "OLD_REFRESH").
					Return(user, pair, nil)
			},
			expectedCode: http.StatusOK,
			expectedMsg:  "Access token refreshed",
		},
		{
			name: "missing token",
			mockSetup: func() {
				mockSvc.EXPECT().
					Refresh(gomock.Any(), "").
					Return(nil, nil, services.ErrMissingToken)
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "Unauthorized request",
		},
		{
			name:   "invalid token",
			cookie: "garbage",
			mockSetup: func() {
				mockSvc.EXPECT().
					Refresh(gomock.Any(), "garbage").
					Return(nil, nil, services.ErrInvalidToken)
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "Invalid refresh token",
		},
		{
			name:   "reused token",
			cookie: "OLD_REFRESH",
			mockSetup: func() {
				mockSvc.EXPECT().
					Refresh(gomock.Any(), "OLD_REFRESH").
					Return(nil, nil, services.ErrTokenReused)
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "Refresh token is expired or already used",
		},
		{
			name:   "internal error",
			cookie: "OLD_REFRESH",
			mockSetup: func() {
				mockSvc.EXPECT().
					Refresh(gomock.Any(), "OLD_REFRESH").
					Return(nil, nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			var bodyBytes []byte
			if tt.body != nil {
				bodyBytes, _ = json.Marshal(tt.body)
			}

			req := httptest.NewRequest(http.MethodPost, "/users/refresh-token", bytes.NewReader(bodyBytes))
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "refreshToken", Value: tt.cookie})
			}
			w := httptest.NewRecorder()

			NewRefreshHandler(mockSvc, CookieConfig{}).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			resp := decodeEnvelope(t, w)
			assert.Equal(t, tt.expectedMsg, resp.Message)

			if tt.expectedCode == http.StatusOK {
				access, ok := cookieValue(w, "accessToken")
				assert.True(t, ok)
				assert.Equal(t, "NEW_ACCESS", access)
				refresh, ok := cookieValue(w, "refreshToken")
				assert.True(t, ok)
				assert.Equal(t, "NEW_REFRESH", refresh)
			}
		})
	}
}
