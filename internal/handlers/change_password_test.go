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

	"github.com/prachanda482244/Production-grade-backend/internal/services"
)

func TestChangePasswordHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockPasswordChanger(ctrl)

	userID := uuid.New()

	tests := []struct {
		name         string
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
		expectedMsg  string
	}{
		{
			name: "success",
			inputBody: ChangePasswordRequest{
				OldPassword: "oldpass",
				NewPassword: "newpass",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					ChangePassword(gomock.Any(), userID, "oldpass", "newpass").
					Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedMsg:  "Password changed successfully",
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "invalid request body",
		},
		{
			name: "missing new password",
			inputBody: ChangePasswordRequest{
				OldPassword: "oldpass",
			},
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Old and new password are required",
		},
		{
			name: "wrong old password",
			inputBody: ChangePasswordRequest{
				OldPassword: "wrongpass",
				NewPassword: "newpass",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					ChangePassword(gomock.Any(), userID, "wrongpass", "newpass").
					Return(services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "Invalid old password",
		},
		{
			name: "internal error",
			inputBody: ChangePasswordRequest{
				OldPassword: "oldpass",
				NewPassword: "newpass",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					ChangePassword(gomock.Any(), userID, "oldpass", "newpass").
					Return(errors.New("database error"))
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

			req := httptest.NewRequest(http.MethodPost, "/users/change-password", bytes.NewReader(bodyBytes))
			w := httptest.NewRecorder()

			handler := withAuth(ctrl, userID, NewChangePasswordHandler(mockSvc))
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			resp := decodeEnvelope(t, w)
			assert.Equal(t, tt.expectedMsg, resp.Message)
		})
	}
}
