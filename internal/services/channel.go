package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/prachanda482244/Production-grade-backend/internal/logger"
	"github.com/prachanda482244/Production-grade-backend/internal/models"
)

var (
	ErrEmptyUsername    = errors.New("username is required")
	ErrChannelNotFound  = errors.New("channel does not exist")
	ErrSelfSubscription = errors.New("cannot subscribe to yourself")
)

// ChannelProfileReader computes the channel profile from the store.
type ChannelProfileReader interface {
	GetProfile(ctx context.Context, viewerID uuid.UUID, username string) (*models.ChannelProfile, error)
}

// ChannelProfileCache caches channel profiles.
type ChannelProfileCache interface {
	GetProfile(ctx context.Context, viewerID uuid.UUID, username string) (*models.ChannelProfile, error)
	SetProfile(ctx context.Context, viewerID uuid.UUID, username string, profile *models.ChannelProfile) error
	DeleteProfile(ctx context.Context, viewerID uuid.UUID, username string) error
}

// SubscriptionWriter manages subscriber->channel edges.
type SubscriptionWriter interface {
	Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	Save(ctx context.Context, subscriberID, channelID uuid.UUID) error
	Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error
}

// ChannelService serves channel profiles and subscription toggles.
type ChannelService struct {
	users         UserReader
	profiles      ChannelProfileReader
	cache         ChannelProfileCache
	subscriptions SubscriptionWriter
}

// NewChannelService creates a new ChannelService instance. cache may be nil
// to disable caching.
func NewChannelService(users UserReader, profiles ChannelProfileReader, cache ChannelProfileCache, subscriptions SubscriptionWriter) *ChannelService {
	return &ChannelService{
		users:         users,
		profiles:      profiles,
		cache:         cache,
		subscriptions: subscriptions,
	}
}

// GetChannelProfile returns the channel profile for username as seen by
// viewerID, cache-aside.
func (svc *ChannelService) GetChannelProfile(ctx context.Context, viewerID uuid.UUID, username string) (*models.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, ErrEmptyUsername
	}

	if svc.cache != nil {
		if profile, err := svc.cache.GetProfile(ctx, viewerID, username); err == nil {
			return profile, nil
		}
	}

	profile, err := svc.profiles.GetProfile(ctx, viewerID, username)
	if err != nil {
		logger.Log.Errorw("failed to get channel profile", "username", username, "err", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrChannelNotFound
	}

	if svc.cache != nil {
		if err := svc.cache.SetProfile(ctx, viewerID, username, profile); err != nil {
			logger.Log.Warnw("failed to cache channel profile", "username", username, "err", err)
		}
	}

	return profile, nil
}

// ToggleSubscription subscribes the user to the channel, or unsubscribes if
// the edge already exists. Returns true when the user ends up subscribed.
func (svc *ChannelService) ToggleSubscription(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	if subscriberID == channelID {
		return false, ErrSelfSubscription
	}

	channel, err := svc.users.GetByID(ctx, channelID)
	if err != nil {
		logger.Log.Errorw("failed to get channel user", "channel_id", channelID, "err", err)
		return false, err
	}
	if channel == nil {
		return false, ErrChannelNotFound
	}

	exists, err := svc.subscriptions.Exists(ctx, subscriberID, channelID)
	if err != nil {
		logger.Log.Errorw("failed to check subscription", "channel_id", channelID, "err", err)
		return false, err
	}

	if exists {
		err = svc.subscriptions.Delete(ctx, subscriberID, channelID)
	} else {
		err = svc.subscriptions.Save(ctx, subscriberID, channelID)
	}
	if err != nil {
		logger.Log.Errorw("failed to toggle subscription", "channel_id", channelID, "err", err)
		return false, err
	}

	if svc.cache != nil {
		if err := svc.cache.DeleteProfile(ctx, subscriberID, channel.Username); err != nil {
			logger.Log.Warnw("failed to invalidate channel profile cache", "username", channel.Username, "err", err)
		}
	}

	return !exists, nil
}
