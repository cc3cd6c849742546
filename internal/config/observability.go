package config

import (
	"fmt"
	"time"
)

// ObservabilityConfig groups all configuration related to telemetry and runtime visibility:
// logging, New Relic APM and the /status health checks.
type ObservabilityConfig struct {
	// ServiceName identifies this service in logs/traces/APM dashboards.
	// Always overwritten with ServiceName by LoadConfig.
	ServiceName string `koanf:"service_name" validate:"required"`

	// Environment is a label used to split telemetry by environment.
	// Always overwritten with primary.env by LoadConfig.
	Environment string `koanf:"environment" validate:"required"`

	Logging      LoggingConfig      `koanf:"logging" validate:"required"`
	NewRelic     NewRelicConfig     `koanf:"new_relic"`
	HealthChecks HealthChecksConfig `koanf:"health_checks"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level"`

	// Format selects the output format ("json" or "console").
	// JSON is only honoured in production; other environments get console output.
	Format string `koanf:"format" validate:"required,oneof=json console"`

	// SlowRequestThreshold marks requests whose handler pipeline took longer
	// than this as slow (logged at warn level). Zero disables the warning.
	SlowRequestThreshold time.Duration `koanf:"slow_request_threshold"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
//
// An empty LicenseKey disables the agent entirely.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`

	// DebugLogging enables the agent's own debug output.
	DebugLogging bool `koanf:"debug_logging"`
}

// HealthChecksConfig controls the dependency checks run by GET /status.
type HealthChecksConfig struct {
	Enabled bool `koanf:"enabled"`

	// Timeout is the max time allowed for a single dependency check.
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// Checks lists the dependencies to probe. Only "redis" is known today,
	// and it is skipped when no redis address is configured.
	Checks []string `koanf:"checks"`
}

// knownHealthChecks are the check names the health handler understands.
var knownHealthChecks = map[string]bool{
	"redis": true,
}

// DefaultObservabilityConfig provides a safe set of defaults for local dev
// that do not break production.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: ServiceName,
		Environment: "development",
		Logging: LoggingConfig{
			Level:                "info",
			Format:               "json",
			SlowRequestThreshold: 100 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{
			LicenseKey:                "",
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
			DebugLogging:              false, // Disabled by default to avoid mixed log formats
		},
		HealthChecks: HealthChecksConfig{
			Enabled: true,
			Timeout: 5 * time.Second,
			Checks:  []string{"redis"},
		},
	}
}

// Validate applies rules that go beyond struct tags.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	// An empty level is allowed: GetLogLevel picks one by environment.
	validLevels := map[string]bool{
		"":      true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}

	if c.Logging.SlowRequestThreshold < 0 {
		return fmt.Errorf("logging slow_request_threshold must be non-negative")
	}

	for _, check := range c.HealthChecks.Checks {
		if !knownHealthChecks[check] {
			return fmt.Errorf("unknown health check: %s", check)
		}
	}

	return nil
}

// GetLogLevel returns the effective log level to use at runtime.
//
// An explicit level always wins. Otherwise production defaults to "info"
// and everything else to "debug".
func (c *ObservabilityConfig) GetLogLevel() string {
	if c.Logging.Level != "" {
		return c.Logging.Level
	}

	if c.IsProduction() {
		return "info"
	}

	return "debug"
}

// IsProduction reports whether the application is running in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}

// HasCheck reports whether the named health check is enabled.
func (c *ObservabilityConfig) HasCheck(name string) bool {
	if !c.HealthChecks.Enabled {
		return false
	}

	for _, check := range c.HealthChecks.Checks {
		if check == name {
			return true
		}
	}

	return false
}
