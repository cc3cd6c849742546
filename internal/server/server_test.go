package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/deppfellow/calculadora/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresDependencies(t *testing.T) {
	logger := zerolog.Nop()

	_, err := New(nil, &logger, nil)
	assert.Error(t, err)

	_, err = New(config.DefaultConfig(), nil, nil)
	assert.Error(t, err)
}

func TestNew_WithoutRedis(t *testing.T) {
	logger := zerolog.Nop()

	s, err := New(config.DefaultConfig(), &logger, nil)
	require.NoError(t, err)
	assert.Nil(t, s.Redis)
	assert.Nil(t, s.LoggerService.GetApplication())
}

func TestStart_WithoutSetup(t *testing.T) {
	logger := zerolog.Nop()

	s, err := New(config.DefaultConfig(), &logger, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestSetupHTTPServer(t *testing.T) {
	logger := zerolog.Nop()
	cfg := config.DefaultConfig()
	cfg.Server.Port = "9999"

	s, err := New(cfg, &logger, nil)
	require.NoError(t, err)

	s.SetupHTTPServer(http.NotFoundHandler())
	require.NotNil(t, s.httpServer)
	assert.Equal(t, ":9999", s.httpServer.Addr)
	assert.Equal(t, "10s", s.httpServer.ReadTimeout.String())

	// Shutting down a server that never started is a no-op.
	assert.NoError(t, s.Shutdown(context.Background()))
}
