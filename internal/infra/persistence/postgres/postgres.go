package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"vidhub/config"
	"vidhub/internal/domain/lifecycle"
	"vidhub/internal/errors"
	"vidhub/internal/infra/metrics"

	"github.com/sethvargo/go-retry"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	pingBackoffBase = 200 * time.Millisecond
	pingMaxRetries  = 5
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// New creates the GORM handle. The connection is verified on start with
// bounded exponential backoff and closed on stop. Pool statistics are
// exported through the service registry.
func New(params Params) (*gorm.DB, error) {
	db, sqlDB, err := Open(params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	if err := params.Metrics.RegisterDB(sqlDB, "postgres"); err != nil {
		return nil, err
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return Ping(ctx, sqlDB, params.Logger)
		},
		OnStop: func(_ context.Context) error {
			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}

// Open connects without fx; the CLI uses it directly.
func Open(cfg *config.Config, logger *slog.Logger) (*gorm.DB, *sql.DB, error) {
	if cfg.Postgres == nil {
		return nil, nil, errors.New("postgres is not configured")
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// Every write here is a single statement; no implicit transaction needed.
		SkipDefaultTransaction: true,
		Logger:                 newQueryLogger(logger, cfg),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	return db, sqlDB, nil
}

// Ping retries until the database answers or the attempts run out.
func Ping(ctx context.Context, sqlDB *sql.DB, logger *slog.Logger) error {
	backoff := retry.WithMaxRetries(pingMaxRetries, retry.NewExponential(pingBackoffBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := sqlDB.PingContext(ctx); err != nil {
			logger.Warn("PostgreSQL not ready", slog.Any("error", err))

			return retry.RetryableError(err)
		}

		return nil
	})

	return errors.Wrap(err, "failed to ping PostgreSQL")
}
