package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/prachanda482244/Production-grade-backend/internal/jwt"
	"github.com/prachanda482244/Production-grade-backend/internal/middlewares"
)

// withAuth wraps h with the auth middleware backed by a stub token verifier,
// so the request context carries the given user's claims.
func withAuth(ctrl *gomock.Controller, userID uuid.UUID, h http.Handler) http.Handler {
	tokener := middlewares.NewMockTokener(ctrl)
	tokener.EXPECT().
		GetTokenFromRequest(gomock.Any(), gomock.Any()).
		Return("test-token", nil).
		AnyTimes()
	tokener.EXPECT().
		GetAccessClaims(gomock.Any(), "test-token").
		Return(&jwt.AccessClaims{UserID: userID}, nil).
		AnyTimes()
	return middlewares.AuthMiddleware(tokener)(h)
}

// decodeEnvelope unmarshals the recorded response envelope.
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	return resp
}

// cookieValue returns the value of the named Set-Cookie header, or "" when absent.
func cookieValue(w *httptest.ResponseRecorder, name string) (string, bool) {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}
