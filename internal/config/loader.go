package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultSubject     = "greenpulse.analysis.completed"
	DefaultDatasetName = "norway"
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
		v.AddConfigPath(".")               // Current directory
		v.AddConfigPath("./configs")       // Project configs directory
		v.AddConfigPath("./config")        // Alternative config directory
		v.AddConfigPath("/etc/greenpulse") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides, e.g. GREENPULSE_SERVER_HTTP_PORT
	v.SetEnvPrefix("GREENPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
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
	v.SetDefault("server.http_port", 5555)
	v.SetDefault("server.shutdown_timeout", "10s")

	// Data defaults
	v.SetDefault("data.dir", "data/processed")
	v.SetDefault("data.datasets", map[string]any{
		DefaultDatasetName: map[string]any{
			"file":         "ssb_emissions_clean.csv",
			"year_column":  "year",
			"value_column": "emissions_MtCO2e",
		},
	})

	// Analysis defaults
	v.SetDefault("analysis.default_years_ahead", 5)
	v.SetDefault("analysis.max_years_ahead", 50)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache.redis_prefix", "greenpulse:")
	v.SetDefault("cache.compress_threshold", 1024)

	// Events defaults
	v.SetDefault("events.type", "none")
	v.SetDefault("events.url", "nats://localhost:4222")
	v.SetDefault("events.subject", DefaultSubject)
	v.SetDefault("events.redis_stream", "greenpulse")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")
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

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			HTTPPort:        5555,
			ShutdownTimeout: 10 * time.Second,
		},
		Data: DataConfig{
			Dir: "data/processed",
			Datasets: map[string]DatasetConfig{
				DefaultDatasetName: {
					File:        "ssb_emissions_clean.csv",
					YearColumn:  "year",
					ValueColumn: "emissions_MtCO2e",
				},
			},
		},
		Analysis: AnalysisConfig{
			DefaultYearsAhead: 5,
			MaxYearsAhead:     50,
		},
		Cache: CacheConfig{
			Type:              "memory",
			TTL:               10 * time.Minute,
			RedisURL:          "redis://localhost:6379/0",
			RedisPrefix:       "greenpulse:",
			CompressThreshold: 1024,
		},
		Events: EventsConfig{
			Type:        "none",
			URL:         "nats://localhost:4222",
			Subject:     DefaultSubject,
			RedisStream: "greenpulse",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
	}
}
