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

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoginer(ctrl)

	user := &models.User{UserID: uuid.New(), Username: "john"}
	pair := &services.TokenPair{AccessToken: "ACCESS", RefreshToken: "REFRESH"}
	username := "john"

	tests := []struct {
		name         string
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
		expectedMsg  string
	}{
		{
			name: "success",
			inputBody: LoginRequest{
				Username: "john",
				Password: "pass123",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), &username, (*string)(nil), "pass123").
					Return(user, pair, nil)
			},
			expectedCode: http.StatusOK,
			expectedMsg:  "User logged in successfully",
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "invalid request body",
		},
		{
			name: "missing identifier",
			inputBody: LoginRequest{
				Password: "pass123",
			},
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Username or email is required",
		},
		{
			name: "user does not exist",
			inputBody: LoginRequest{
				Username: "john",
				Password: "pass123",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), &username, (*string)(nil), "pass123").
					Return(nil, nil, services.ErrUserDoesNotExist)
			},
			expectedCode: http.StatusNotFound,
			expectedMsg:  "User does not exist",
		},
		{
			name: "wrong password",
			inputBody: LoginRequest{
				Username: "john",
				Password: "wrongpass",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), &username, (*string)(nil), "wrongpass").
					Return(nil, nil, services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "Invalid user credentials",
		},
		{
			name: "internal error",
			inputBody: LoginRequest{
				Username: "john",
				Password: "pass123",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), &username, (*string)(nil), "pass123").
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
			switch v := tt.inputBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, _ = json.Marshal(v)
			}

			req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(bodyBytes))
			w := httptest.NewRecorder()

			handler := NewLoginHandler(mockSvc, CookieConfig{})
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			resp := decodeEnvelope(t, w)
			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			assert.Equal(t, tt.expectedMsg, resp.Message)
			assert.Equal(t, tt.expectedCode == http.StatusOK, resp.Success)

			if tt.expectedCode == http.StatusOK {
				access, ok := cookieValue(w, "accessToken")
				assert.True(t, ok)
				assert.Equal(t, "ACCESS", access)
				refresh, ok := cookieValue(w, "refreshToken")
				assert.True(t, ok)
				assert.Equal(t, "REFRESH", refresh)
			}
		})
	}
}

func TestLoginHandler_ByEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoginer(ctrl)

	user := &models.User{UserID: uuid.New(), Username: "john", Email: "john@example.com"}
	pair := &services.TokenPair{AccessToken: "ACCESS", RefreshToken: "REFRESH"}
	email := "john@example.com"

	mockSvc.EXPECT().
		Login(gomock.Any(), (*string)(nil), &email, "pass123").
		Return(user, pair, nil)

	body, _ := json.Marshal(LoginRequest{Email: email, Password: "pass123"})
	req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	NewLoginHandler(mockSvc, CookieConfig{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
