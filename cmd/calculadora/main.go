package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/calculadora/internal/config"
	"github.com/deppfellow/calculadora/internal/handler"
	"github.com/deppfellow/calculadora/internal/logger"
	"github.com/deppfellow/calculadora/internal/router"
	"github.com/deppfellow/calculadora/internal/server"
	"github.com/deppfellow/calculadora/internal/service"
)

const DefaultContextTimeout = 30

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "calculadora: %v\n", err)
		os.Exit(1)
	}
}

// run serves until ctx is done or the listener fails, then shuts down.
// Deferred cleanup always runs before it returns.
func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	handlers := handler.NewHandlers(srv, service.NewServices())
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var runErr error
	select {
	case runErr = <-serveErr:
		log.Error().Err(runErr).Msg("failed to start server")
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return errors.Join(runErr, err)
	}

	if runErr != nil {
		return runErr
	}

	log.Info().Msg("server exited properly")
	return nil
}
