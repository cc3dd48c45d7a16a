package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/prachanda482244/Production-grade-backend/internal/logger"
	"github.com/prachanda482244/Production-grade-backend/internal/models"
)

// ChannelProfileCacheRepository caches channel profiles in Redis. Entries
// expire by TTL; the cache key includes the viewer because is_subscribed is
// viewer-dependent.
type ChannelProfileCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached profiles
}

// NewChannelProfileCacheRepository creates a new repository instance with the given TTL
func NewChannelProfileCacheRepository(client *redis.Client, expiration time.Duration) *ChannelProfileCacheRepository {
	return &ChannelProfileCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func profileCacheKey(username string, viewerID uuid.UUID) string {
	return fmt.Sprintf("channel_profile:%s:%s", username, viewerID)
}

// GetProfile fetches a cached channel profile. A cache miss is an error.
func (r *ChannelProfileCacheRepository) GetProfile(ctx context.Context, viewerID uuid.UUID, username string) (*models.ChannelProfile, error) {
	key := profileCacheKey(username, viewerID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow("channel profile cache miss",
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return nil, fmt.Errorf("channel profile not cached for %s", username)
		}
		return nil, err
	}

	var profile models.ChannelProfile
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		logger.Log.Errorw("corrupt cached channel profile",
			"key", key,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow("channel profile cache hit", "key", key)
	return &profile, nil
}

// SetProfile caches a channel profile with the repository TTL.
func (r *ChannelProfileCacheRepository) SetProfile(ctx context.Context, viewerID uuid.UUID, username string, profile *models.ChannelProfile) error {
	key := profileCacheKey(username, viewerID)

	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("channel profile cached",
		"key", key,
		"error", err,
	)

	return err
}

// DeleteProfile drops the viewer's cached view of a channel. Used after a
// subscription toggle so the actor sees the change immediately; other
// viewers converge within the TTL.
func (r *ChannelProfileCacheRepository) DeleteProfile(ctx context.Context, viewerID uuid.UUID, username string) error {
	key := profileCacheKey(username, viewerID)

	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("channel profile cache invalidated",
		"key", key,
		"error", err,
	)

	return err
}
