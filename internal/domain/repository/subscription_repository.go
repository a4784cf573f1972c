package repository

import (
	"context"
	"time"

	"vidhub/internal/domain/entity"
	"vidhub/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for subscription persistence.
var (
	// ErrSubscriptionNotFound is returned when a subscription is not found.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrDuplicateSubscription is returned when trying to create a subscription that already exists.
	ErrDuplicateSubscription = errors.New("subscription already exists")
)

// SubscriptionRepository stores subscriber to channel links.
type SubscriptionRepository interface {
	// Create persists a new subscription.
	Create(ctx context.Context, subscription *entity.Subscription) error

	// Find returns the subscription linking subscriberID to channelID.
	Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*entity.Subscription, error)

	// Delete removes the subscription linking subscriberID to channelID.
	Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error

	// ListByChannel returns every subscription to channelID, newest first.
	ListByChannel(ctx context.Context, channelID uuid.UUID) ([]*entity.Subscription, error)

	// ListBySubscriber returns every subscription held by subscriberID, newest first.
	ListBySubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*entity.Subscription, error)

	// CountByChannel counts the subscribers of channelID.
	CountByChannel(ctx context.Context, channelID uuid.UUID) (int64, error)

	// CountBySubscriber counts the channels subscriberID follows.
	CountBySubscriber(ctx context.Context, subscriberID uuid.UUID) (int64, error)
}

// PrepareNewSubscription fills ID and timestamps left unset.
func PrepareNewSubscription(subscription *entity.Subscription, now time.Time) error {
	if subscription.SubscriberID == uuid.Nil || subscription.ChannelID == uuid.Nil {
		return errors.New("subscriber and channel are required")
	}

	if subscription.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate subscription id")
		}
		subscription.ID = id
	}
	if subscription.CreatedAt.IsZero() {
		subscription.CreatedAt = now
	}
	if subscription.UpdatedAt.IsZero() {
		subscription.UpdatedAt = subscription.CreatedAt
	}

	return nil
}
