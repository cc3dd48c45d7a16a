package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/prachanda482244/Production-grade-backend/internal/logger"
	"github.com/prachanda482244/Production-grade-backend/internal/models"
)

// ErrDuplicateUser reports a unique-constraint violation on username or email.
var ErrDuplicateUser = errors.New("duplicate username or email")

// UserReadRepository reads user rows.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsernameOrEmail finds a user matching either identifier. A nil
// argument disables that side of the match. Returns (nil, nil) when no row
// matches.
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, fullname, password_hash,
		       avatar_url, cover_image_url, refresh_token, created_at, updated_at
		FROM users
		WHERE ($1::VARCHAR IS NOT NULL AND username = LOWER($1))
		   OR ($2::VARCHAR IS NOT NULL AND email = $2)
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username, email)

	logger.Log.Infow("user lookup",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username, email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByID finds a user by primary key. Returns (nil, nil) when no row matches.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, fullname, password_hash,
		       avatar_url, cover_image_url, refresh_token, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Infow("user lookup by id",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UserWriteRepository writes user rows.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Create inserts a new user and returns its generated id. The username is
// lowercased on the way in.
func (r *UserWriteRepository) Create(ctx context.Context, username, email, passwordHash, fullname, avatarURL, coverImageURL string) (uuid.UUID, error) {
	const query = `
		INSERT INTO users (username, email, password_hash, fullname, avatar_url, cover_image_url, created_at, updated_at)
		VALUES (LOWER($1), $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING user_id
	`
	args := []any{username, email, passwordHash, fullname, avatarURL, coverImageURL}

	var userID uuid.UUID
	err := r.db.GetContext(ctx, &userID, query, args...)

	logger.Log.Infow("user insert",
		"query", strings.Join(strings.Fields(query), " "),
		"username", username,
		"email", email,
		"error", err,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return uuid.Nil, ErrDuplicateUser
		}
		return uuid.Nil, err
	}
	return userID, nil
}

// UpdateRefreshToken overwrites the stored refresh token. A nil token clears
// it (logout). Only this field and updated_at change.
func (r *UserWriteRepository) UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error {
	const query = `
		UPDATE users
		SET refresh_token = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, userID, token)

	logger.Log.Infow("refresh token update",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"cleared", token == nil,
		"error", err,
	)

	return err
}

// RotateRefreshToken swaps the stored refresh token for a new one only if the
// currently stored value still equals old. Returns false when the swap lost,
// meaning the presented token was already superseded.
func (r *UserWriteRepository) RotateRefreshToken(ctx context.Context, userID uuid.UUID, old, new string) (bool, error) {
	const query = `
		UPDATE users
		SET refresh_token = $3, updated_at = NOW()
		WHERE user_id = $1 AND refresh_token = $2
	`

	res, err := r.db.ExecContext(ctx, query, userID, old, new)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("refresh token rotation",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"rows_affected", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

// UpdatePassword overwrites the stored password hash only.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, userID, passwordHash)

	logger.Log.Infow("password update",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"error", err,
	)

	return err
}

// UpdateAccount overwrites fullname and email.
func (r *UserWriteRepository) UpdateAccount(ctx context.Context, userID uuid.UUID, fullname, email string) error {
	const query = `
		UPDATE users
		SET fullname = $2, email = $3, updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, userID, fullname, email)

	logger.Log.Infow("account update",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"error", err,
	)

	return err
}

// UpdateAvatar overwrites the avatar URL.
func (r *UserWriteRepository) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	const query = `
		UPDATE users
		SET avatar_url = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, userID, avatarURL)

	logger.Log.Infow("avatar update",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"error", err,
	)

	return err
}

// UpdateCoverImage overwrites the cover image URL.
func (r *UserWriteRepository) UpdateCoverImage(ctx context.Context, userID uuid.UUID, coverImageURL string) error {
	const query = `
		UPDATE users
		SET cover_image_url = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, userID, coverImageURL)

	logger.Log.Infow("cover image update",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"error", err,
	)

	return err
}
