package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, RateLimitStoreMemory, cfg.RateLimit.Store)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Empty(t, cfg.Redis.Address)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CALCULADORA_PRIMARY__ENV", "production")
	t.Setenv("CALCULADORA_SERVER__PORT", "9090")
	t.Setenv("CALCULADORA_SERVER__READ_TIMEOUT", "30")
	t.Setenv("CALCULADORA_SERVER__CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CALCULADORA_SERVER__TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.0/24,")
	t.Setenv("CALCULADORA_RATE_LIMIT__BURST", "7")
	t.Setenv("CALCULADORA_RATE_LIMIT__EXPIRES_IN", "90s")
	t.Setenv("CALCULADORA_OBSERVABILITY__LOGGING__LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Primary.Env)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	// Untouched keys keep their defaults.
	assert.Equal(t, 10, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.0/24"}, cfg.Server.TrustedProxies)
	assert.Equal(t, 7, cfg.RateLimit.Burst)
	assert.Equal(t, 90*time.Second, cfg.RateLimit.ExpiresIn)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "trusted proxy is not a CIDR",
			env:  map[string]string{"CALCULADORA_SERVER__TRUSTED_PROXIES": "10.0.0.1"},
		},
		{
			name: "unknown log level",
			env:  map[string]string{"CALCULADORA_OBSERVABILITY__LOGGING__LEVEL": "verbose"},
		},
		{
			name: "unknown rate limit store",
			env:  map[string]string{"CALCULADORA_RATE_LIMIT__STORE": "memcached"},
		},
		{
			name: "redis store without address",
			env:  map[string]string{"CALCULADORA_RATE_LIMIT__STORE": "redis"},
		},
		{
			name: "zero burst",
			env:  map[string]string{"CALCULADORA_RATE_LIMIT__BURST": "0"},
		},
		{
			name: "bad redis address",
			env:  map[string]string{"CALCULADORA_REDIS__ADDRESS": "not an address"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_RedisStore(t *testing.T) {
	t.Setenv("CALCULADORA_RATE_LIMIT__STORE", "redis")
	t.Setenv("CALCULADORA_REDIS__ADDRESS", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, RateLimitStoreRedis, cfg.RateLimit.Store)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()

	cfg.Logging.Level = ""
	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "error"
	assert.Equal(t, "error", cfg.GetLogLevel())
}

func TestObservabilityConfig_Validate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.HealthChecks.Checks = []string{"database"}
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowRequestThreshold = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestObservabilityConfig_HasCheck(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.HasCheck("redis"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HasCheck("redis"))
}
