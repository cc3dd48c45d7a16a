package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims are the claims carried by an access token.
type AccessClaims struct {
	UserID   uuid.UUID `json:"-"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Fullname string    `json:"fullname"`
	jwt.RegisteredClaims
}

// UserClaims is the minimal user view needed to mint an access token.
type UserClaims struct {
	UserID   uuid.UUID
	Username string
	Email    string
	Fullname string
}

// JWT issues and validates access and refresh tokens. The two token kinds
// are signed with independent secrets and expirations: access tokens are
// short-lived and sent on every request, refresh tokens are long-lived and
// only exchanged explicitly.
type JWT struct {
	AccessSecret  string        // Secret key for signing access tokens
	RefreshSecret string        // Secret key for signing refresh tokens
	AccessExp     time.Duration // Access token expiration duration
	RefreshExp    time.Duration // Refresh token expiration duration
}

// New creates a new JWT instance
func New(accessSecret, refreshSecret string, accessExp, refreshExp time.Duration) *JWT {
	return &JWT{
		AccessSecret:  accessSecret,
		RefreshSecret: refreshSecret,
		AccessExp:     accessExp,
		RefreshExp:    refreshExp,
	}
}

// GenerateAccessToken creates a signed access token carrying the user's
// public identity claims.
func (j *JWT) GenerateAccessToken(ctx context.Context, user UserClaims) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Username: user.Username,
		Email:    user.Email,
		Fullname: user.Fullname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.AccessExp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.AccessSecret))
}

// GenerateRefreshToken creates a signed refresh token carrying only the user id.
func (j *JWT) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.RefreshExp)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.RefreshSecret))
}

// GetAccessClaims parses an access token and returns its claims if the
// signature and expiry checks pass.
func (j *JWT) GetAccessClaims(ctx context.Context, tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.AccessSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.New("invalid subject format")
	}
	claims.UserID = userID

	return claims, nil
}

// GetRefreshUserID parses a refresh token and returns the user id from its
// subject if the signature and expiry checks pass.
func (j *JWT) GetRefreshUserID(ctx context.Context, tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.RefreshSecret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.New("invalid subject format")
	}

	return userID, nil
}

// GetTokenFromRequest extracts the access token from the Authorization
// header, falling back to the accessToken cookie.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", errors.New("invalid authorization header format")
		}
		return parts[1], nil
	}

	cookie, err := r.Cookie("accessToken")
	if err != nil || cookie.Value == "" {
		return "", errors.New("authorization header or accessToken cookie missing")
	}
	return cookie.Value, nil
}
