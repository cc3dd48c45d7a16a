package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/prachanda482244/Production-grade-backend/internal/logger"
	"github.com/prachanda482244/Production-grade-backend/internal/middlewares"
	"github.com/prachanda482244/Production-grade-backend/internal/services"
)

// SubscriptionToggler defines the interface that the channel service must implement.
type SubscriptionToggler interface {
	ToggleSubscription(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
}

// ToggleSubscriptionResult is the payload returned by the toggle endpoint.
// swagger:model ToggleSubscriptionResult
type ToggleSubscriptionResult struct {
	// Whether the caller is subscribed after the toggle
	Subscribed bool `json:"subscribed"`
}

// NewToggleSubscriptionHandler returns an HTTP handler that subscribes the
// caller to a channel, or unsubscribes if already subscribed.
// @Summary Toggle subscription
// @Description Creates the subscriber->channel edge, or removes it when it already exists
// @Tags subscriptions
// @Produce json
// @Param channelID path string true "Channel user id"
// @Success 200 {object} handlers.APIResponse "Resulting subscription state"
// @Failure 400 {object} handlers.APIResponse "Bad channel id or self-subscription"
// @Failure 404 {object} handlers.APIResponse "Channel does not exist"
// @Router /subscriptions/{channelID} [post]
// @Security BearerAuth
func NewToggleSubscriptionHandler(svc SubscriptionToggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		subscriberID := middlewares.GetUserIDFromContext(ctx)
		if subscriberID == uuid.Nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		channelID, err := uuid.Parse(chi.URLParam(r, "channelID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid channel id")
			return
		}

		subscribed, err := svc.ToggleSubscription(ctx, subscriberID, channelID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrSelfSubscription):
				writeError(w, http.StatusBadRequest, "Cannot subscribe to yourself")
			case errors.Is(err, services.ErrChannelNotFound):
				writeError(w, http.StatusNotFound, "Channel does not exist")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		message := "Subscribed successfully"
		if !subscribed {
			message = "Unsubscribed successfully"
		}
		writeJSON(w, http.StatusOK, ToggleSubscriptionResult{Subscribed: subscribed}, message)
	}
}
