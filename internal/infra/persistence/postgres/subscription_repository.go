package postgres

import (
	"context"
	"time"

	"vidhub/internal/domain/entity"
	domainerrors "vidhub/internal/domain/errors"
	"vidhub/internal/domain/repository"
	"vidhub/internal/errors"
	"vidhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// subscriptionRepository implements the repository.SubscriptionRepository interface.
type subscriptionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSubscriptionRepository is the constructor for subscriptionRepository.
func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{
		db:  db,
		now: time.Now,
	}
}

// Create persists a new subscription relationship.
func (repo *subscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	if err := repository.PrepareNewSubscription(subscription, repo.now()); err != nil {
		return err
	}

	subscriptionM := fromSubscriptionDomain(subscription)
	if err := repo.db.WithContext(ctx).Create(subscriptionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSubscription
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create subscription")
	}

	return nil
}

// Find returns the subscription linking subscriberID to channelID.
func (repo *subscriptionRepository) Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*entity.Subscription, error) {
	var subscriptionM model.SubscriptionModel

	err := repo.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&subscriptionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSubscriptionNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find subscription")
	}

	return toSubscriptionDomain(&subscriptionM), nil
}

// Delete removes the subscription linking subscriberID to channelID.
func (repo *subscriptionRepository) Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.SubscriptionModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete subscription")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSubscriptionNotFound
	}

	return nil
}

// ListByChannel returns every subscription to channelID, newest first.
func (repo *subscriptionRepository) ListByChannel(ctx context.Context, channelID uuid.UUID) ([]*entity.Subscription, error) {
	return repo.list(ctx, "channel_id = ?", channelID)
}

// ListBySubscriber returns every subscription held by subscriberID, newest first.
func (repo *subscriptionRepository) ListBySubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*entity.Subscription, error) {
	return repo.list(ctx, "subscriber_id = ?", subscriberID)
}

// CountByChannel counts the subscribers of channelID.
func (repo *subscriptionRepository) CountByChannel(ctx context.Context, channelID uuid.UUID) (int64, error) {
	return repo.count(ctx, "channel_id = ?", channelID)
}

// CountBySubscriber counts the channels subscriberID follows.
func (repo *subscriptionRepository) CountBySubscriber(ctx context.Context, subscriberID uuid.UUID) (int64, error) {
	return repo.count(ctx, "subscriber_id = ?", subscriberID)
}

func (repo *subscriptionRepository) list(ctx context.Context, query string, id uuid.UUID) ([]*entity.Subscription, error) {
	var subscriptionMs []*model.SubscriptionModel

	err := repo.db.WithContext(ctx).
		Where(query, id).
		Order("created_at DESC").
		Find(&subscriptionMs).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list subscriptions")
	}

	subscriptions := make([]*entity.Subscription, 0, len(subscriptionMs))
	for _, subscriptionM := range subscriptionMs {
		subscriptions = append(subscriptions, toSubscriptionDomain(subscriptionM))
	}

	return subscriptions, nil
}

func (repo *subscriptionRepository) count(ctx context.Context, query string, id uuid.UUID) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.SubscriptionModel{}).Where(query, id).Count(&count).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count subscriptions")
	}

	return count, nil
}

func fromSubscriptionDomain(subscription *entity.Subscription) *model.SubscriptionModel {
	return &model.SubscriptionModel{
		ID:           subscription.ID,
		SubscriberID: subscription.SubscriberID,
		ChannelID:    subscription.ChannelID,
		CreatedAt:    subscription.CreatedAt,
		UpdatedAt:    subscription.UpdatedAt,
	}
}

func toSubscriptionDomain(subscriptionM *model.SubscriptionModel) *entity.Subscription {
	return &entity.Subscription{
		ID:           subscriptionM.ID,
		SubscriberID: subscriptionM.SubscriberID,
		ChannelID:    subscriptionM.ChannelID,
		CreatedAt:    subscriptionM.CreatedAt,
		UpdatedAt:    subscriptionM.UpdatedAt,
	}
}
