// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// one exists), loads them into structured Go types and validates them so the
// process fails fast on bad configuration.
//
// Responsibilities:
//   - Provide sane defaults for every block, so an empty environment boots.
//   - Map CALCULADORA_* env vars onto the structs below.
//   - Validate the result with go-playground/validator plus a few cross-field rules.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix CALCULADORA_.

	Keys are lowercased, the prefix is removed and a double underscore marks
	a nesting level, so single underscores can stay inside field names:

	  CALCULADORA_SERVER__READ_TIMEOUT           -> server.read_timeout
	  CALCULADORA_OBSERVABILITY__LOGGING__LEVEL  -> observability.logging.level
*/

// EnvPrefix is the prefix every configuration env var must carry.
const EnvPrefix = "CALCULADORA_"

// ServiceName identifies this service in logs and APM dashboards.
const ServiceName = "calculadora"

// Rate limiter stores.
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional at the source level.
// If it ends up nil, defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Redis         RedisConfig          `koanf:"redis"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// BodyLimit uses Echo's size notation ("512K", "1M", ...).
	BodyLimit string `koanf:"body_limit" validate:"required"`

	// TrustedProxies lists the CIDR ranges of reverse proxies whose
	// X-Forwarded-For header is believed. Empty means the client IP is
	// always the socket peer address.
	TrustedProxies []string `koanf:"trusted_proxies" validate:"omitempty,dive,cidr"`
}

// RateLimitConfig controls per-client throttling of the arithmetic routes.
//
// With the memory store every replica keeps its own token buckets
// (RequestsPerSecond refill, Burst capacity). The redis store shares a
// fixed window counter of Burst requests per Window across replicas.
type RateLimitConfig struct {
	Enabled           bool    `koanf:"enabled"`
	Store             string  `koanf:"store" validate:"oneof=memory redis"`
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gt=0"`
	Burst             int     `koanf:"burst" validate:"min=1"`

	// ExpiresIn is how long an idle client's bucket is kept in memory.
	ExpiresIn time.Duration `koanf:"expires_in" validate:"min=1s"`

	// Window is the redis counter window.
	Window time.Duration `koanf:"window" validate:"min=1s"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port"; empty means Redis is not used.
type RedisConfig struct {
	Address string `koanf:"address" validate:"omitempty,hostname_port"`
}

// DefaultConfig returns the configuration used when no env var overrides a value.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{
			Env: "development",
		},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        10,
			WriteTimeout:       10,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			BodyLimit:          "1M",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			Store:             RateLimitStoreMemory,
			RequestsPerSecond: 50,
			Burst:             100,
			ExpiresIn:         3 * time.Minute,
			Window:            time.Second,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables on top of
// DefaultConfig, validates it and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix CALCULADORA_
//   - Splits comma-separated CORS origins and trusted proxies into lists
//   - Unmarshals into the default Config (unset keys keep their defaults)
//   - Validates struct tags, then cross-field rules
//   - Forces observability service name + environment
func LoadConfig() (*Config, error) {
	// "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		key = strings.ReplaceAll(key, "__", ".")

		switch key {
		case "server.cors_allowed_origins", "server.trusted_proxies":
			return key, splitList(value)
		}

		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()

	// Unmarshal only overwrites fields that have a key in koanf,
	// everything else keeps the value from DefaultConfig.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Force service name and environment regardless of what the user set,
	// so logs and traces always agree with primary.env.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// splitList splits a comma-separated env value, dropping empty items.
func splitList(value string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate checks struct tags of the whole tree and the rules tags cannot express.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.RateLimit.Enabled && c.RateLimit.Store == RateLimitStoreRedis && c.Redis.Address == "" {
		return fmt.Errorf("rate_limit.store is %q but redis.address is empty", RateLimitStoreRedis)
	}

	if c.Observability == nil {
		return fmt.Errorf("observability config is missing")
	}

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}
