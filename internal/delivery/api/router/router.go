// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"vidhub/config"
	"vidhub/internal/delivery/api/middleware"
	"vidhub/internal/delivery/api/router/handler"
	deliverymiddleware "vidhub/internal/delivery/middleware"
	"vidhub/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	SubscriptionHandler *handler.SubscriptionHandler
	MediaHandler        *handler.MediaHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimiter         *deliverymiddleware.RateLimiter
	Metrics             *metrics.Metrics
	Config              *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	subscriptionHandler *handler.SubscriptionHandler
	mediaHandler        *handler.MediaHandler
	authMiddleware      *middleware.AuthMiddleware
	rateLimiter         *deliverymiddleware.RateLimiter
	metrics             *metrics.Metrics
	config              *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		subscriptionHandler: params.SubscriptionHandler,
		mediaHandler:        params.MediaHandler,
		authMiddleware:      params.AuthMiddleware,
		rateLimiter:         params.RateLimiter,
		metrics:             params.Metrics,
		config:              params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	if r.config.Metrics.Enabled {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(r.metrics.Handler()))
	}

	// Locally hosted media, used when no CDN fronts the bucket
	e.GET("/media/*", r.mediaHandler.Serve)

	apiV1 := e.Group("/api/v1")

	// Unauthenticated user routes, throttled per client IP
	users := apiV1.Group("/users")
	{
		users.POST("/register", r.userHandler.Register, r.rateLimiter.Handle)
		users.POST("/login", r.userHandler.Login, r.rateLimiter.Handle)
		users.POST("/refresh-token", r.userHandler.RefreshToken, r.rateLimiter.Handle)
	}

	// User routes behind the Auth Gate
	secured := users.Group("", r.authMiddleware.Authenticate)
	{
		secured.POST("/logout", r.userHandler.Logout)
		secured.POST("/change-password", r.userHandler.ChangePassword)
		secured.GET("/current-user", r.userHandler.GetCurrentUser)
		secured.PATCH("/update-account", r.userHandler.UpdateAccount)
		secured.PATCH("/avatar", r.userHandler.UpdateAvatar)
		secured.PATCH("/cover-image", r.userHandler.UpdateCoverImage)
		secured.GET("/c/:username", r.subscriptionHandler.GetChannelProfile)
	}

	// Subscription routes, all behind the Auth Gate
	subscriptions := apiV1.Group("/subscriptions", r.authMiddleware.Authenticate)
	{
		subscriptions.POST("/c/:channelId", r.subscriptionHandler.ToggleSubscription)
		subscriptions.GET("/c/:channelId", r.subscriptionHandler.GetChannelSubscribers)
		subscriptions.GET("/u/:subscriberId", r.subscriptionHandler.GetSubscribedChannels)
		subscriptions.GET("/c/:channelId/qr", r.subscriptionHandler.GetChannelQRCode)
		subscriptions.POST("/qr", r.subscriptionHandler.SubscribeByQRCode)
	}
}
