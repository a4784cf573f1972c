package main

import (
	"context"
	"log/slog"
	"os"

	"vidhub/config"
	"vidhub/internal/delivery"
	"vidhub/internal/delivery/api"
	"vidhub/internal/delivery/api/cookie"
	apimiddleware "vidhub/internal/delivery/api/middleware"
	"vidhub/internal/delivery/api/router/handler"
	"vidhub/internal/delivery/middleware"
	"vidhub/internal/domain/repository"
	"vidhub/internal/domain/service"
	"vidhub/internal/infra/auth"
	logs "vidhub/internal/infra/log"
	"vidhub/internal/infra/media"
	"vidhub/internal/infra/metrics"
	"vidhub/internal/infra/persistence/memory"
	"vidhub/internal/infra/persistence/mongo"
	"vidhub/internal/infra/persistence/postgres"
	"vidhub/internal/infra/qrcode"
	"vidhub/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	// The store driver decides which providers exist, so the config is
	// loaded before the graph is built.
	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	fx.New(
		fx.Supply(cfg),
		injectInfra(),
		injectRepo(cfg.Store.Driver),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		logs.New,
		context.Background,
		metrics.New,
		fx.Annotate(
			media.New,
			fx.As(fx.Self()),
			fx.As(new(service.MediaStorage)),
		),
	)
}

func injectRepo(driver string) fx.Option {
	switch driver {
	case config.StorePostgres:
		return fx.Provide(
			postgres.New,
			postgres.NewUserRepository,
			postgres.NewSubscriptionRepository,
		)
	case config.StoreMemory:
		return fx.Provide(
			fx.Annotate(memory.NewUserRepository, fx.As(new(repository.UserRepository))),
			fx.Annotate(memory.NewSubscriptionRepository, fx.As(new(repository.SubscriptionRepository))),
		)
	default:
		return fx.Provide(
			mongo.New,
			mongo.NewUserRepository,
			mongo.NewSubscriptionRepository,
		)
	}
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			qrcode.NewQRCodeService,
			func(m *metrics.Metrics) service.AuthEventRecorder { return m },
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewProfileService,
			impl.NewSessionService,
			impl.NewSubscriptionService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
			middleware.NewRateLimiter,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			cookie.NewJar,
			handler.NewUploadStager,
			handler.NewUserHandler,
			handler.NewSubscriptionHandler,
			handler.NewMediaHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
