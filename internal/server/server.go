// Package server defines the Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - optional redis client (shared rate limit counters)
//   - http.Server
//
// It provides constructors and start/shutdown logic to run the application cleanly.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/calculadora/internal/config"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/calculadora/internal/logger"
)

// RedisPingTimeout bounds the startup connectivity check.
const RedisPingTimeout = 5 * time.Second

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself; that is the unexported httpServer,
// configured in SetupHTTPServer and started in Start.
type Server struct {
	Config *config.Config
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	// Redis is nil unless redis.address is configured.
	Redis *redis.Client

	httpServer *http.Server
}

// New constructs a Server and initializes optional dependencies.
//
// Redis is only created when an address is configured. A failed ping is
// logged, not returned: the rate limiter fails open and /status reports the
// outage, so arithmetic keeps being served.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
	}

	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Address,
		})

		// Instrument redis commands so they show up in distributed traces.
		if loggerService.GetApplication() != nil {
			redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), RedisPingTimeout)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error().Err(err).Str("address", cfg.Redis.Address).Msg("failed to connect to redis, continuing")
		} else {
			logger.Info().Str("address", cfg.Redis.Address).Msg("connected to redis")
		}

		server.Redis = redisClient
	}

	return server, nil
}

// SetupHTTPServer configures the internal net/http server around handler
// (the Echo router).
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		// Config stores whole seconds.
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops and
// requires SetupHTTPServer to be called first.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server (finishing in-flight requests
// until ctx expires) and closes the redis client.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}

	return nil
}
