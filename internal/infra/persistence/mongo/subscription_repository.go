package mongo

import (
	"context"
	"time"

	"vidhub/internal/domain/entity"
	domainerrors "vidhub/internal/domain/errors"
	"vidhub/internal/domain/repository"
	"vidhub/internal/errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// subscriptionRepository implements repository.SubscriptionRepository on the
// subscriptions collection.
type subscriptionRepository struct {
	subscriptions *mongo.Collection
	now           func() time.Time
}

// NewSubscriptionRepository is the constructor for subscriptionRepository.
func NewSubscriptionRepository(db *mongo.Database) repository.SubscriptionRepository {
	return &subscriptionRepository{
		subscriptions: db.Collection(SubscriptionsCollection),
		now:           time.Now,
	}
}

// Create persists a new subscription.
func (repo *subscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	if err := repository.PrepareNewSubscription(subscription, repo.now()); err != nil {
		return err
	}

	if _, err := repo.subscriptions.InsertOne(ctx, fromSubscriptionDomain(subscription)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateSubscription
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create subscription")
	}

	return nil
}

// Find returns the subscription linking subscriberID to channelID.
func (repo *subscriptionRepository) Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*entity.Subscription, error) {
	var doc subscriptionDocument
	if err := repo.subscriptions.FindOne(ctx, pairFilter(subscriberID, channelID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrSubscriptionNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find subscription")
	}

	return decodedSubscription(&doc)
}

// Delete removes the subscription linking subscriberID to channelID.
func (repo *subscriptionRepository) Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	result, err := repo.subscriptions.DeleteOne(ctx, pairFilter(subscriberID, channelID))
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete subscription")
	}
	if result.DeletedCount == 0 {
		return repository.ErrSubscriptionNotFound
	}

	return nil
}

// ListByChannel returns every subscription to channelID, newest first.
func (repo *subscriptionRepository) ListByChannel(ctx context.Context, channelID uuid.UUID) ([]*entity.Subscription, error) {
	return repo.list(ctx, bson.M{"channel": channelID.String()})
}

// ListBySubscriber returns every subscription held by subscriberID, newest first.
func (repo *subscriptionRepository) ListBySubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*entity.Subscription, error) {
	return repo.list(ctx, bson.M{"subscriber": subscriberID.String()})
}

// CountByChannel counts the subscribers of channelID.
func (repo *subscriptionRepository) CountByChannel(ctx context.Context, channelID uuid.UUID) (int64, error) {
	return repo.count(ctx, bson.M{"channel": channelID.String()})
}

// CountBySubscriber counts the channels subscriberID follows.
func (repo *subscriptionRepository) CountBySubscriber(ctx context.Context, subscriberID uuid.UUID) (int64, error) {
	return repo.count(ctx, bson.M{"subscriber": subscriberID.String()})
}

func (repo *subscriptionRepository) list(ctx context.Context, filter bson.M) ([]*entity.Subscription, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := repo.subscriptions.Find(ctx, filter, opts)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list subscriptions")
	}

	var docs []subscriptionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode subscriptions")
	}

	subscriptions := make([]*entity.Subscription, 0, len(docs))
	for i := range docs {
		sub, err := decodedSubscription(&docs[i])
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, sub)
	}

	return subscriptions, nil
}

func (repo *subscriptionRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	count, err := repo.subscriptions.CountDocuments(ctx, filter)
	if err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count subscriptions")
	}

	return count, nil
}

func pairFilter(subscriberID, channelID uuid.UUID) bson.M {
	return bson.M{"subscriber": subscriberID.String(), "channel": channelID.String()}
}

func decodedSubscription(doc *subscriptionDocument) (*entity.Subscription, error) {
	sub, err := doc.toDomain()
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "stored subscription has a malformed id")
	}

	return sub, nil
}
