package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/prachanda482244/Production-grade-backend/internal/jwt"
	"github.com/prachanda482244/Production-grade-backend/internal/logger"
	"github.com/prachanda482244/Production-grade-backend/internal/models"
	"github.com/prachanda482244/Production-grade-backend/internal/repositories"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrUserDoesNotExist   = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid user credentials")
	ErrMissingToken       = errors.New("refresh token missing")
	ErrInvalidToken       = errors.New("invalid refresh token")
	ErrTokenReused        = errors.New("refresh token expired or already used")
	ErrAvatarRequired     = errors.New("avatar is required")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, username, email, passwordHash, fullname, avatarURL, coverImageURL string) (uuid.UUID, error)
	UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error
	RotateRefreshToken(ctx context.Context, userID uuid.UUID, old, new string) (bool, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// TokenIssuer defines an interface for issuing and verifying the token pair.
type TokenIssuer interface {
	GenerateAccessToken(ctx context.Context, user jwt.UserClaims) (string, error)
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)
	GetRefreshUserID(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// TokenPair bundles a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterInput carries the validated fields for a new account. Avatar
// upload happens at the boundary, so AvatarURL must already point at the
// media host.
type RegisterInput struct {
	Username      string
	Email         string
	Password      string
	Fullname      string
	AvatarURL     string
	CoverImageURL string
}

// AuthService handles registration, login, logout, refresh rotation and
// password changes.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	tokens      TokenIssuer
	kafkaWriter KafkaWriter
}

// NewAuthService creates a new AuthService instance. kafkaWriter may be nil,
// in which case events are not published.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenIssuer, kafkaWriter KafkaWriter) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		tokens:      tokens,
		kafkaWriter: kafkaWriter,
	}
}

// Register creates a new user account and returns the sanitized user.
func (svc *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.AvatarURL == "" {
		return nil, ErrAvatarRequired
	}

	existing, err := svc.reader.GetByUsernameOrEmail(ctx, &input.Username, &input.Email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Errorw("user already exists", "username", input.Username, "email", input.Email)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	userID, err := svc.writer.Create(ctx, input.Username, input.Email, string(hashedPassword),
		input.Fullname, input.AvatarURL, input.CoverImageURL)
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		// A concurrent registration can slip past the existence check and
		// hit the unique constraint instead.
		if errors.Is(err, repositories.ErrDuplicateUser) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	created, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to load created user", "user_id", userID, "err", err)
		return nil, err
	}
	if created == nil {
		return nil, errors.New("failed to register the user")
	}

	svc.publishEvent(ctx, userID, "register")

	return created.Public(), nil
}

// Login authenticates by username or email and issues a token pair. The new
// refresh token is persisted as the user's single active one.
func (svc *AuthService) Login(ctx context.Context, username, email *string, password string) (*models.User, *TokenPair, error) {
	user, err := svc.reader.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, nil, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "username", username, "email", email)
		return nil, nil, ErrUserDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "username", user.Username)
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := svc.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	svc.publishEvent(ctx, user.UserID, "login")

	return user.Public(), pair, nil
}

// Logout clears the stored refresh token. Calling it again is a no-op.
func (svc *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := svc.writer.UpdateRefreshToken(ctx, userID, nil); err != nil {
		logger.Log.Errorw("failed to clear refresh token", "user_id", userID, "err", err)
		return err
	}

	svc.publishEvent(ctx, userID, "logout")

	return nil
}

// Refresh exchanges a valid, currently stored refresh token for a new pair.
// The stored token is swapped conditionally, so a token that lost a
// concurrent rotation reports reuse instead of producing a second live pair.
func (svc *AuthService) Refresh(ctx context.Context, presented string) (*models.User, *TokenPair, error) {
	if presented == "" {
		return nil, nil, ErrMissingToken
	}

	userID, err := svc.tokens.GetRefreshUserID(ctx, presented)
	if err != nil {
		logger.Log.Errorw("refresh token verification failed", "err", err)
		return nil, nil, ErrInvalidToken
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidToken
	}

	if user.RefreshToken == nil || *user.RefreshToken != presented {
		logger.Log.Errorw("stale or reused refresh token", "user_id", userID)
		return nil, nil, ErrTokenReused
	}

	accessToken, err := svc.tokens.GenerateAccessToken(ctx, jwt.UserClaims{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		Fullname: user.Fullname,
	})
	if err != nil {
		logger.Log.Errorw("failed to generate access token", "user_id", userID, "err", err)
		return nil, nil, err
	}

	refreshToken, err := svc.tokens.GenerateRefreshToken(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate refresh token", "user_id", userID, "err", err)
		return nil, nil, err
	}

	swapped, err := svc.writer.RotateRefreshToken(ctx, user.UserID, presented, refreshToken)
	if err != nil {
		logger.Log.Errorw("failed to rotate refresh token", "user_id", userID, "err", err)
		return nil, nil, err
	}
	if !swapped {
		logger.Log.Errorw("lost refresh rotation race", "user_id", userID)
		return nil, nil, ErrTokenReused
	}

	svc.publishEvent(ctx, user.UserID, "refresh")

	return user.Public(), &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// ChangePassword verifies the old password and overwrites the stored hash.
func (svc *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return err
	}
	if user == nil {
		return ErrUserDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		logger.Log.Errorw("old password does not match", "user_id", userID)
		return ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		logger.Log.Errorw("failed to update password", "user_id", userID, "err", err)
		return err
	}

	svc.publishEvent(ctx, userID, "change_password")

	return nil
}

// issueTokenPair generates both tokens and persists the refresh token as the
// user's single active one, invalidating any prior token.
func (svc *AuthService) issueTokenPair(ctx context.Context, user *models.UserDB) (*TokenPair, error) {
	accessToken, err := svc.tokens.GenerateAccessToken(ctx, jwt.UserClaims{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		Fullname: user.Fullname,
	})
	if err != nil {
		logger.Log.Errorw("failed to generate access token", "user_id", user.UserID, "err", err)
		return nil, err
	}

	refreshToken, err := svc.tokens.GenerateRefreshToken(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate refresh token", "user_id", user.UserID, "err", err)
		return nil, err
	}

	if err := svc.writer.UpdateRefreshToken(ctx, user.UserID, &refreshToken); err != nil {
		logger.Log.Errorw("failed to persist refresh token", "user_id", user.UserID, "err", err)
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// publishEvent publishes a user lifecycle event to Kafka, best-effort.
func (svc *AuthService) publishEvent(ctx context.Context, userID uuid.UUID, operation string) {
	if svc.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "operation", operation)
		return
	}

	event := models.UserEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		UserID:    userID.String(),
		Operation: operation,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal user event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := svc.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish user event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("User event published to Kafka", "event_id", event.EventID, "operation", operation)
	}
}
