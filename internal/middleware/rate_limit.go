package middleware

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/deppfellow/calculadora/internal/config"
	"github.com/deppfellow/calculadora/internal/errs"
	"github.com/deppfellow/calculadora/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles requests per client IP.
//
// The backing store comes from rate_limit.store: Echo's in-memory token
// buckets, or a RedisStore shared by every replica.
type RateLimitMiddleware struct {
	server *server.Server
	store  middleware.RateLimiterStore
}

// NewRateLimitMiddleware builds the limiter store described by the config.
//
// A redis store without a redis client (redis.address empty) falls back to
// memory; config validation rejects that combination before we get here.
func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	cfg := s.Config.RateLimit

	var store middleware.RateLimiterStore
	if cfg.Store == config.RateLimitStoreRedis && s.Redis != nil {
		store = NewRedisStore(s.Redis, cfg.Burst, cfg.Window, s.Logger)
	} else {
		store = middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.RequestsPerSecond),
			Burst:     cfg.Burst,
			ExpiresIn: cfg.ExpiresIn,
		})
	}

	return &RateLimitMiddleware{
		server: s,
		store:  store,
	}
}

// Limit returns the rate limiting middleware, or a pass-through when
// rate_limit.enabled is false. Rejected requests get 429 and Retry-After.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	if !r.server.Config.RateLimit.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	retryAfter := strconv.Itoa(int(math.Ceil(1 / r.server.Config.RateLimit.RequestsPerSecond)))
	if r.server.Config.RateLimit.Store == config.RateLimitStoreRedis {
		retryAfter = strconv.Itoa(int(math.Ceil(r.server.Config.RateLimit.Window.Seconds())))
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: r.store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewInternalServerError()
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			rateLimitRejects.Inc()
			r.RecordRateLimitHit(c.Path())

			GetLogger(c).Warn().
				Str("client", identifier).
				Msg("rate limit exceeded")

			c.Response().Header().Set("Retry-After", retryAfter)

			return errs.NewTooManyRequestsError("Rate limit exceeded")
		},
	})
}

// RecordRateLimitHit records a New Relic custom event for a rejected request.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}

// redisKeyPrefix namespaces the limiter counters.
const redisKeyPrefix = "calculadora:ratelimit"

// redisTimeout bounds a single Allow round trip.
const redisTimeout = 250 * time.Millisecond

// RedisStore is a fixed-window rate limiter store backed by redis.
//
// Each client may perform limit requests per window; the counter key
// expires two windows after it was created. It implements Echo's
// middleware.RateLimiterStore.
//
// Redis errors fail open: the request is allowed and a warning is logged,
// so an unavailable redis never takes the arithmetic API down with it.
type RedisStore struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zerolog.Logger
}

// NewRedisStore creates a RedisStore. window is rounded up to whole seconds.
func NewRedisStore(client *redis.Client, limit int, window time.Duration, logger *zerolog.Logger) *RedisStore {
	if window < time.Second {
		window = time.Second
	}
	window = window.Round(time.Second)

	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &RedisStore{
		client: client,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// Allow increments the client's counter for the current window and
// reports whether it is still within the limit.
func (s *RedisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	key := s.key(identifier, time.Now())

	pipe := s.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*s.window)

	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn().Err(err).Str("client", identifier).Msg("rate limit store unavailable, allowing request")
		return true, nil
	}

	return count.Val() <= int64(s.limit), nil
}

func (s *RedisStore) key(identifier string, now time.Time) string {
	windowStart := now.Truncate(s.window).Unix()
	return fmt.Sprintf("%s:%s:%d", redisKeyPrefix, identifier, windowStart)
}
