package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/prachanda482244/Production-grade-backend/internal/models"
	"github.com/prachanda482244/Production-grade-backend/internal/services"
)

func TestUpdateAccountHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockAccountUpdater(ctrl)

	userID := uuid.New()
	user := &models.User{UserID: userID, Fullname: "John Q. Doe", Email: "john@example.com"}

	tests := []struct {
		name         string
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
		expectedMsg  string
	}{
		{
			name: "success",
			inputBody: UpdateAccountRequest{
				Fullname: "John Q. Doe",
				Email:    "john@example.com",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					UpdateAccount(gomock.Any(), userID, "John Q. Doe", "john@example.com").
					Return(user, nil)
			},
			expectedCode: http.StatusOK,
			expectedMsg:  "Account details updated successfully",
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "invalid request body",
		},
		{
			name: "missing field",
			inputBody: UpdateAccountRequest{
				Fullname: "John Q. Doe",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					UpdateAccount(gomock.Any(), userID, "John Q. Doe", "").
					Return(nil, services.ErrFieldsRequired)
			},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "All fields are required",
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

			req := httptest.NewRequest(http.MethodPatch, "/users/update-account", bytes.NewReader(bodyBytes))
			w := httptest.NewRecorder()

			handler := withAuth(ctrl, userID, NewUpdateAccountHandler(mockSvc))
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			resp := decodeEnvelope(t, w)
			assert.Equal(t, tt.expectedMsg, resp.Message)
		})
	}
}
