package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionDB represents a directed subscriber->channel edge in the database
type SubscriptionDB struct {
	SubscriptionID uuid.UUID `json:"subscription_id" db:"subscription_id"` // Primary key
	SubscriberID   uuid.UUID `json:"subscriber_id" db:"subscriber_id"`     // User doing the subscribing
	ChannelID      uuid.UUID `json:"channel_id" db:"channel_id"`           // User being subscribed to
	CreatedAt      time.Time `json:"created_at" db:"created_at"`           // Creation timestamp
}
