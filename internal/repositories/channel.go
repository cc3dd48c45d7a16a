package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/prachanda482244/Production-grade-backend/internal/logger"
	"github.com/prachanda482244/Production-grade-backend/internal/models"
)

// ChannelReadRepository computes the denormalized channel profile over the
// subscription edges.
type ChannelReadRepository struct {
	db *sqlx.DB
}

func NewChannelReadRepository(db *sqlx.DB) *ChannelReadRepository {
	return &ChannelReadRepository{db: db}
}

// GetProfile returns the channel profile for username as seen by viewerID.
// All three derived fields come from a single statement, so they reflect one
// consistent snapshot of the edge set. Returns (nil, nil) when no user
// matches the username.
func (r *ChannelReadRepository) GetProfile(ctx context.Context, viewerID uuid.UUID, username string) (*models.ChannelProfile, error) {
	const query = `
		SELECT u.fullname,
		       u.username,
		       u.email,
		       u.avatar_url,
		       u.cover_image_url,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.user_id)    AS subscribers_count,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.user_id) AS channels_subscribed_to_count,
		       EXISTS (
		           SELECT 1 FROM subscriptions s
		           WHERE s.subscriber_id = $2 AND s.channel_id = u.user_id
		       ) AS is_subscribed
		FROM users u
		WHERE u.username = LOWER($1)
	`

	var profile models.ChannelProfile
	err := r.db.GetContext(ctx, &profile, query, username, viewerID)

	logger.Log.Infow("channel profile",
		"query", strings.Join(strings.Fields(query), " "),
		"username", username,
		"viewer_id", viewerID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}
