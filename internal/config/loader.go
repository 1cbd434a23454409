package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")              // Current directory
		v.AddConfigPath("./configs")      // Project configs directory
		v.AddConfigPath("./config")       // Alternative config directory
		v.AddConfigPath("/etc/pulsedash") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides
	v.SetEnvPrefix("PULSEDASH")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")

	// Session defaults
	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.ttl", "720h")
	v.SetDefault("session.redis_addr", "localhost:6379")
	v.SetDefault("session.redis_prefix", "pulsedash")

	// I18n defaults
	v.SetDefault("i18n.locales_dir", "./locales")
	v.SetDefault("i18n.default_language", "en")

	// Analytics defaults
	v.SetDefault("analytics.forecast.window", 12)
	v.SetDefault("analytics.forecast.horizon", 3)
	v.SetDefault("analytics.forecast.k", 2.0)
	v.SetDefault("analytics.forecast.alpha", 0.3)
	v.SetDefault("analytics.forecast.beta", 0.1)
	v.SetDefault("analytics.anomaly.threshold", 3.0)
	v.SetDefault("analytics.anomaly.window", 6)
	v.SetDefault("analytics.anomaly.seasonal_periods", 12)
	v.SetDefault("analytics.anomaly.max_iterations", 50)
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		// Return default configuration
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			HTTPPort:     8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
		Session: SessionConfig{
			Backend:     "memory",
			TTL:         720 * time.Hour,
			RedisAddr:   "localhost:6379",
			RedisPrefix: "pulsedash",
		},
		I18n: I18nConfig{
			LocalesDir:      "./locales",
			DefaultLanguage: "en",
		},
		Analytics: AnalyticsConfig{
			Forecast: ForecastConfig{
				Window:  12,
				Horizon: 3,
				K:       2.0,
				Alpha:   0.3,
				Beta:    0.1,
			},
			Anomaly: AnomalyConfig{
				Threshold:       3.0,
				Window:          6,
				SeasonalPeriods: 12,
				MaxIterations:   50,
			},
		},
	}
}
