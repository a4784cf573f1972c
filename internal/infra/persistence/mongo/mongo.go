// Package mongo stores users and subscriptions in MongoDB. It is the
// default credential store.
package mongo

import (
	"context"
	"log/slog"
	"time"

	"vidhub/config"
	"vidhub/internal/domain/lifecycle"
	"vidhub/internal/errors"

	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
)

// Collection names.
const (
	UsersCollection         = "users"
	SubscriptionsCollection = "subscriptions"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultConnectRetries = 5
	pingBackoffBase       = 200 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New returns the configured database. On start the server is pinged with
// bounded exponential backoff and the indexes are ensured; on stop the
// client disconnects.
func New(params Params) (*mongo.Database, error) {
	client, err := Connect(params.Config.Mongo)
	if err != nil {
		return nil, err
	}

	db := client.Database(params.Config.Mongo.Database)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := Ping(ctx, client, params.Config.Mongo.ConnectRetries, params.Logger); err != nil {
				return err
			}

			return EnsureIndexes(ctx, db)
		},
		OnStop: func(stopCtx context.Context) error {
			ctx, cancel := context.WithTimeout(stopCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return errors.Wrap(client.Disconnect(ctx), "failed to disconnect MongoDB")
		},
	})

	return db, nil
}

// Connect builds a client. It does not touch the network.
func Connect(cfg *config.MongoConfig) (*mongo.Client, error) {
	if cfg == nil || cfg.URI == "" {
		return nil, errors.New("mongo is not configured")
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	return client, nil
}

// Ping retries until the primary answers or the attempts run out.
func Ping(ctx context.Context, client *mongo.Client, retries uint64, logger *slog.Logger) error {
	if retries == 0 {
		retries = defaultConnectRetries
	}

	backoff := retry.WithMaxRetries(retries, retry.NewExponential(pingBackoffBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			logger.Warn("MongoDB not ready", slog.Any("error", err))

			return retry.RetryableError(err)
		}

		return nil
	})

	return errors.Wrap(err, "failed to ping MongoDB")
}

// EnsureIndexes creates the unique indexes the stores rely on. It is
// idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_username"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "fullName", Value: 1}},
			Options: options.Index().SetName("idx_full_name"),
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to create user indexes")
	}

	_, err = db.Collection(SubscriptionsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_subscriber_channel"),
		},
		{
			Keys:    bson.D{{Key: "channel", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_channel_created"),
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to create subscription indexes")
	}

	return nil
}
