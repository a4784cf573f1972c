package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"vidhub/config"
	domainerrors "vidhub/internal/domain/errors"
	"vidhub/internal/infra/metrics"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

const (
	defaultRateLimitCacheSize = 10000
	defaultRateLimitTTL       = 10 * time.Minute
)

type visitor struct {
	limiter *rate.Limiter
	mu      sync.Mutex
	last    time.Time
}

func (v *visitor) touch(now time.Time) {
	v.mu.Lock()
	v.last = now
	v.mu.Unlock()
}

func (v *visitor) idleSince(now time.Time) time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()

	return now.Sub(v.last)
}

// RateLimiter keeps one token bucket per client IP. Buckets live in a
// bounded LRU; a janitor drops the ones idle for longer than the TTL.
type RateLimiter struct {
	enabled  bool
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	visitors *lru.Cache[string, *visitor]
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// RateLimiterParams holds dependencies for RateLimiter, injected by Fx.
type RateLimiterParams struct {
	fx.In

	Lc      fx.Lifecycle
	Config  *config.Config
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// NewRateLimiter builds the limiter and ties the janitor to the fx lifecycle.
func NewRateLimiter(params RateLimiterParams) (*RateLimiter, error) {
	limiter, err := newRateLimiter(params.Config.RateLimit, params.Metrics, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			limiter.Start()

			return nil
		},
		OnStop: func(context.Context) error {
			limiter.Stop()

			return nil
		},
	})

	return limiter, nil
}

func newRateLimiter(cfg *config.RateLimitConfig, m *metrics.Metrics, logger *slog.Logger) (*RateLimiter, error) {
	if cfg == nil {
		cfg = &config.RateLimitConfig{}
	}

	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = defaultRateLimitCacheSize
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultRateLimitTTL
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	visitors, err := lru.New[string, *visitor](cacheSize)
	if err != nil {
		return nil, err
	}

	return &RateLimiter{
		enabled:  cfg.Enabled && cfg.RequestsPerSecond > 0,
		limit:    rate.Limit(cfg.RequestsPerSecond),
		burst:    burst,
		ttl:      ttl,
		visitors: visitors,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start launches the janitor goroutine.
func (rl *RateLimiter) Start() {
	go rl.janitor()
}

// Stop terminates the janitor and waits for it to exit. It is safe to call
// more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stop)
		<-rl.done
	})
}

func (rl *RateLimiter) janitor() {
	defer close(rl.done)

	ticker := time.NewTicker(rl.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	now := rl.now()
	for _, key := range rl.visitors.Keys() {
		if v, ok := rl.visitors.Peek(key); ok && v.idleSince(now) > rl.ttl {
			rl.visitors.Remove(key)
		}
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	v, ok := rl.visitors.Get(ip)
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		if existing, found, _ := rl.visitors.PeekOrAdd(ip, v); found {
			v = existing
		}
	}
	v.touch(rl.now())

	return v.limiter.Allow()
}

// Handle rejects requests over the per-IP budget with RATE_LIMITED.
func (rl *RateLimiter) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !rl.enabled {
			return next(c)
		}

		ip := c.RealIP()
		if !rl.allow(ip) {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimited()
			}
			rl.logger.Warn("Rate limit exceeded", slog.String("remote_ip", ip), slog.String("path", c.Path()))

			return domainerrors.ErrRateLimited
		}

		return next(c)
	}
}
