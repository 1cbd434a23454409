package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Session   SessionConfig   `mapstructure:"session"`
	I18n      I18nConfig      `mapstructure:"i18n"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`          // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort     int           `mapstructure:"http_port"`     // HTTP server port
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`  // Request read timeout
	WriteTimeout time.Duration `mapstructure:"write_timeout"` // Response write timeout
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// SessionConfig represents session store configuration
type SessionConfig struct {
	Backend string        `mapstructure:"backend"` // Session backend: memory (default), redis
	TTL     time.Duration `mapstructure:"ttl"`     // Session lifetime

	// Redis-specific options
	RedisAddr     string `mapstructure:"redis_addr"`     // Redis server address (default: localhost:6379)
	RedisPassword string `mapstructure:"redis_password"` // Optional authentication
	RedisDB       int    `mapstructure:"redis_db"`       // Redis database number (default: 0)
	RedisPrefix   string `mapstructure:"redis_prefix"`   // Key prefix (default: "pulsedash")
}

// I18nConfig represents translation catalog configuration
type I18nConfig struct {
	LocalesDir      string `mapstructure:"locales_dir"`      // Directory with per-language JSON catalogs
	LegacyFile      string `mapstructure:"legacy_file"`      // Optional single-file YAML catalog
	DefaultLanguage string `mapstructure:"default_language"` // Fallback language code
}

// AnalyticsConfig represents forecast and anomaly detection defaults. Request
// parameters override these per call.
type AnalyticsConfig struct {
	Forecast ForecastConfig `mapstructure:"forecast"`
	Anomaly  AnomalyConfig  `mapstructure:"anomaly"`
}

// ForecastConfig represents default forecast parameters
type ForecastConfig struct {
	Window  int     `mapstructure:"window"`  // Trailing window for windowed methods
	Horizon int     `mapstructure:"horizon"` // Months to forecast
	K       float64 `mapstructure:"k"`       // Band half-width in residual standard deviations
	Alpha   float64 `mapstructure:"alpha"`   // Level smoothing factor
	Beta    float64 `mapstructure:"beta"`    // Trend smoothing factor
}

// AnomalyConfig represents default anomaly detection parameters
type AnomalyConfig struct {
	Threshold       float64 `mapstructure:"threshold"`        // Detection sensitivity in scale units
	Window          int     `mapstructure:"window"`           // Rolling window for the linear detector
	SeasonalPeriods int     `mapstructure:"seasonal_periods"` // Season length for the seasonal detector
	Robust          bool    `mapstructure:"robust"`           // MAD-based dispersion for the linear detector
	MaxIterations   int     `mapstructure:"max_iterations"`   // Iteration budget for the autoregressive fit
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("session config: %w", err)
	}

	if err := c.I18n.Validate(); err != nil {
		return fmt.Errorf("i18n config: %w", err)
	}

	if err := c.Analytics.Validate(); err != nil {
		return fmt.Errorf("analytics config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}

	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}

// Validate validates session configuration
func (c *SessionConfig) Validate() error {
	if c.Backend != "memory" && c.Backend != "redis" {
		return fmt.Errorf("session.backend must be 'memory' or 'redis'")
	}

	if c.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}

	if c.Backend == "redis" && c.RedisAddr == "" {
		return fmt.Errorf("session.redis_addr is required for the redis backend")
	}

	return nil
}

// Validate validates i18n configuration
func (c *I18nConfig) Validate() error {
	if c.LocalesDir == "" && c.LegacyFile == "" {
		return fmt.Errorf("i18n.locales_dir or i18n.legacy_file is required")
	}

	if c.DefaultLanguage == "" {
		return fmt.Errorf("i18n.default_language is required")
	}

	return nil
}

// Validate validates analytics defaults
func (c *AnalyticsConfig) Validate() error {
	if c.Forecast.Window < 2 {
		return fmt.Errorf("analytics.forecast.window must be at least 2")
	}

	if c.Forecast.Horizon < 1 {
		return fmt.Errorf("analytics.forecast.horizon must be at least 1")
	}

	if c.Forecast.K < 0 {
		return fmt.Errorf("analytics.forecast.k must be non-negative")
	}

	if c.Forecast.Alpha < 0 || c.Forecast.Alpha > 1 {
		return fmt.Errorf("analytics.forecast.alpha must be in [0,1]")
	}

	if c.Forecast.Beta < 0 || c.Forecast.Beta > 1 {
		return fmt.Errorf("analytics.forecast.beta must be in [0,1]")
	}

	if c.Anomaly.Threshold <= 0 {
		return fmt.Errorf("analytics.anomaly.threshold must be positive")
	}

	if c.Anomaly.Window < 2 {
		return fmt.Errorf("analytics.anomaly.window must be at least 2")
	}

	if c.Anomaly.SeasonalPeriods < 2 {
		return fmt.Errorf("analytics.anomaly.seasonal_periods must be at least 2")
	}

	if c.Anomaly.MaxIterations < 1 {
		return fmt.Errorf("analytics.anomaly.max_iterations must be at least 1")
	}

	return nil
}
