package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"vidhub/internal/domain/entity"
	"vidhub/internal/domain/repository"

	"github.com/google/uuid"
)

type subscriptionKey struct {
	subscriber uuid.UUID
	channel    uuid.UUID
}

// SubscriptionRepository is a goroutine-safe repository.SubscriptionRepository.
type SubscriptionRepository struct {
	mu            sync.RWMutex
	subscriptions map[subscriptionKey]*entity.Subscription
	now           func() time.Time
}

// NewSubscriptionRepository returns an empty store.
func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{
		subscriptions: make(map[subscriptionKey]*entity.Subscription),
		now:           time.Now,
	}
}

// Create persists a new subscription.
func (repo *SubscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := repository.PrepareNewSubscription(subscription, repo.now()); err != nil {
		return err
	}

	key := subscriptionKey{subscriber: subscription.SubscriberID, channel: subscription.ChannelID}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.subscriptions[key]; ok {
		return repository.ErrDuplicateSubscription
	}

	stored := *subscription
	repo.subscriptions[key] = &stored

	return nil
}

// Find returns the subscription linking subscriberID to channelID.
func (repo *SubscriptionRepository) Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*entity.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	sub, ok := repo.subscriptions[subscriptionKey{subscriber: subscriberID, channel: channelID}]
	if !ok {
		return nil, repository.ErrSubscriptionNotFound
	}

	clone := *sub

	return &clone, nil
}

// Delete removes the subscription linking subscriberID to channelID.
func (repo *SubscriptionRepository) Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := subscriptionKey{subscriber: subscriberID, channel: channelID}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.subscriptions[key]; !ok {
		return repository.ErrSubscriptionNotFound
	}
	delete(repo.subscriptions, key)

	return nil
}

// ListByChannel returns every subscription to channelID, newest first.
func (repo *SubscriptionRepository) ListByChannel(ctx context.Context, channelID uuid.UUID) ([]*entity.Subscription, error) {
	return repo.list(ctx, func(key subscriptionKey) bool { return key.channel == channelID })
}

// ListBySubscriber returns every subscription held by subscriberID, newest first.
func (repo *SubscriptionRepository) ListBySubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*entity.Subscription, error) {
	return repo.list(ctx, func(key subscriptionKey) bool { return key.subscriber == subscriberID })
}

// CountByChannel counts the subscribers of channelID.
func (repo *SubscriptionRepository) CountByChannel(ctx context.Context, channelID uuid.UUID) (int64, error) {
	subs, err := repo.ListByChannel(ctx, channelID)

	return int64(len(subs)), err
}

// CountBySubscriber counts the channels subscriberID follows.
func (repo *SubscriptionRepository) CountBySubscriber(ctx context.Context, subscriberID uuid.UUID) (int64, error) {
	subs, err := repo.ListBySubscriber(ctx, subscriberID)

	return int64(len(subs)), err
}

func (repo *SubscriptionRepository) list(ctx context.Context, match func(subscriptionKey) bool) ([]*entity.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	subs := make([]*entity.Subscription, 0)
	for key, sub := range repo.subscriptions {
		if match(key) {
			clone := *sub
			subs = append(subs, &clone)
		}
	}

	sort.Slice(subs, func(i, j int) bool {
		if subs[i].CreatedAt.Equal(subs[j].CreatedAt) {
			return subs[i].ID.String() > subs[j].ID.String()
		}

		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})

	return subs, nil
}
