package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/prachanda482244/Production-grade-backend/internal/models"
	"github.com/prachanda482244/Production-grade-backend/internal/services"
)

func TestChannelProfileHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockChannelProfileGetter(ctrl)

	viewerID := uuid.New()
	profile := &models.ChannelProfile{
		Username:         "alice",
		Fullname:         "Alice Smith",
		SubscribersCount: 3,
		IsSubscribed:     true,
	}

	tests := []struct {
		name         string
		username     string
		mockSetup    func()
		expectedCode int
		expectedMsg  string
	}{
		{
			name:     "success",
			username: "alice",
			mockSetup: func() {
				mockSvc.EXPECT().
					GetChannelProfile(gomock.Any(), viewerID, "alice").
					Return(profile, nil)
			},
			expectedCode: http.StatusOK,
			expectedMsg:  "Channel profile fetched successfully",
		},
		{
			name:     "channel does not exist",
			username: "ghost",
			mockSetup: func() {
				mockSvc.EXPECT().
					GetChannelProfile(gomock.Any(), viewerID, "ghost").
					Return(nil, services.ErrChannelNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedMsg:  "Channel does not exist",
		},
		{
			name:     "blank username",
			username: "%20",
			mockSetup: func() {
				mockSvc.EXPECT().
					GetChannelProfile(gomock.Any(), viewerID, gomock.Any()).
					Return(nil, services.ErrEmptyUsername)
			},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Username is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			router := chi.NewRouter()
			router.Get("/users/channel/{username}", withAuth(ctrl, viewerID, NewChannelProfileHandler(mockSvc)).ServeHTTP)

			req := httptest.NewRequest(http.MethodGet, "/users/channel/"+tt.username, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			resp := decodeEnvelope(t, w)
			assert.Equal(t, tt.expectedMsg, resp.Message)

			if tt.expectedCode == http.StatusOK {
				data, _ := json.Marshal(resp.Data)
				var got models.ChannelProfile
				assert.NoError(t, json.Unmarshal(data, &got))
				assert.Equal(t, profile.Username, got.Username)
				assert.Equal(t, profile.SubscribersCount, got.SubscribersCount)
				assert.True(t, got.IsSubscribed)
			}
		})
	}
}
