package usecase

import (
	"context"

	"vidhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ToggleOutput reports the subscription state after a toggle.
type ToggleOutput struct {
	Subscribed bool `json:"subscribed"`
}

// SubscriptionUsecase defines the interface for channel subscriptions.
type SubscriptionUsecase interface {
	// ToggleSubscription subscribes subscriberID to channelID, or unsubscribes
	// when the subscription already exists.
	ToggleSubscription(ctx context.Context, subscriberID, channelID uuid.UUID) (*ToggleOutput, error)

	// ListSubscribers returns the users subscribed to channelID.
	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*entity.UserSummary, error)

	// ListSubscribedChannels returns the channels subscriberID follows.
	ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*entity.UserSummary, error)

	// GetChannelProfile returns the channel page of username as seen by viewerID.
	GetChannelProfile(ctx context.Context, viewerID uuid.UUID, username string) (*entity.ChannelProfile, error)

	// GetChannelQRCode returns a PNG share code for channelID.
	GetChannelQRCode(ctx context.Context, channelID uuid.UUID) ([]byte, error)

	// SubscribeByQRCode subscribes subscriberID to the channel named by a
	// scanned share code. Already subscribed is not an error.
	SubscribeByQRCode(ctx context.Context, subscriberID uuid.UUID, payload string) (*ToggleOutput, error)
}
