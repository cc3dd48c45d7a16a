package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/prachanda482244/Production-grade-backend/internal/logger"
)

// SubscriptionRepository writes and checks subscriber->channel edges.
type SubscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Exists reports whether the subscriber->channel edge is present.
func (r *SubscriptionRepository) Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM subscriptions
			WHERE subscriber_id = $1 AND channel_id = $2
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, subscriberID, channelID)

	logger.Log.Infow("subscription exists",
		"query", strings.Join(strings.Fields(query), " "),
		"subscriber_id", subscriberID,
		"channel_id", channelID,
		"result", exists,
		"error", err,
	)

	return exists, err
}

// Save inserts the edge. The unique (subscriber_id, channel_id) constraint
// makes a duplicate insert a no-op.
func (r *SubscriptionRepository) Save(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	const query = `
		INSERT INTO subscriptions (subscriber_id, channel_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING
	`

	res, err := r.db.ExecContext(ctx, query, subscriberID, channelID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("subscription insert",
		"query", strings.Join(strings.Fields(query), " "),
		"subscriber_id", subscriberID,
		"channel_id", channelID,
		"rows_affected", rowsAffected,
		"error", err,
	)

	return err
}

// Delete removes the edge if present.
func (r *SubscriptionRepository) Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	const query = `
		DELETE FROM subscriptions
		WHERE subscriber_id = $1 AND channel_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, subscriberID, channelID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("subscription delete",
		"query", strings.Join(strings.Fields(query), " "),
		"subscriber_id", subscriberID,
		"channel_id", channelID,
		"rows_affected", rowsAffected,
		"error", err,
	)

	return err
}
