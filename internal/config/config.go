package config

import (
	"fmt"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Data     DataConfig     `mapstructure:"data"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Events   EventsConfig   `mapstructure:"events"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`             // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort        int           `mapstructure:"http_port"`        // HTTP server port
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // Grace period for in-flight requests
}

// DataConfig lists the datasets the service can analyze
type DataConfig struct {
	Dir      string                   `mapstructure:"dir"`
	Datasets map[string]DatasetConfig `mapstructure:"datasets"` // keyed by dataset name
}

// DatasetConfig locates one CSV dataset
type DatasetConfig struct {
	File        string `mapstructure:"file"`         // Relative to data.dir unless absolute
	YearColumn  string `mapstructure:"year_column"`  // default: year
	ValueColumn string `mapstructure:"value_column"` // default: emissions_MtCO2e
}

// AnalysisConfig holds forecast horizon policy
type AnalysisConfig struct {
	DefaultYearsAhead int `mapstructure:"default_years_ahead"`
	MaxYearsAhead     int `mapstructure:"max_years_ahead"`
}

// CacheConfig represents the analysis report cache
type CacheConfig struct {
	Type              string        `mapstructure:"type"`               // none, memory, redis
	TTL               time.Duration `mapstructure:"ttl"`                // Entry lifetime
	RedisURL          string        `mapstructure:"redis_url"`          // e.g., redis://localhost:6379/0
	RedisPrefix       string        `mapstructure:"redis_prefix"`       // Key prefix (default: "greenpulse:")
	CompressThreshold int           `mapstructure:"compress_threshold"` // Payloads at least this large are snappy-compressed
}

// EventsConfig represents the analysis event transport
type EventsConfig struct {
	Type    string `mapstructure:"type"`    // none, memory, nats, redis, kafka
	URL     string `mapstructure:"url"`     // Broker URL (e.g., nats://localhost:4222, redis://localhost:6379)
	Subject string `mapstructure:"subject"` // Subject/topic for analysis.completed events

	// Redis-specific options
	RedisStream string `mapstructure:"redis_stream"` // Stream key prefix (default: "greenpulse")

	// Kafka-specific options
	KafkaBrokers []string `mapstructure:"kafka_brokers"` // Kafka broker addresses
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen, DateTime (console format only)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Data.Validate(); err != nil {
		return fmt.Errorf("data config: %w", err)
	}

	if err := c.Analysis.Validate(); err != nil {
		return fmt.Errorf("analysis config: %w", err)
	}

	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache config: %w", err)
	}

	if err := c.Events.Validate(); err != nil {
		return fmt.Errorf("events config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}

	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown_timeout cannot be negative")
	}

	return nil
}

// Validate validates data configuration
func (c *DataConfig) Validate() error {
	for name, ds := range c.Datasets {
		if name == "" {
			return fmt.Errorf("dataset name cannot be empty")
		}
		if ds.File == "" {
			return fmt.Errorf("datasets.%s.file is required", name)
		}
	}
	return nil
}

// Validate validates analysis configuration
func (c *AnalysisConfig) Validate() error {
	if c.MaxYearsAhead < 1 {
		return fmt.Errorf("analysis.max_years_ahead must be at least 1")
	}

	if c.DefaultYearsAhead < 1 || c.DefaultYearsAhead > c.MaxYearsAhead {
		return fmt.Errorf("analysis.default_years_ahead must be between 1 and %d", c.MaxYearsAhead)
	}

	return nil
}

// Validate validates cache configuration
func (c *CacheConfig) Validate() error {
	switch strings.ToLower(c.Type) {
	case "", "none":
		return nil
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("cache.redis_url is required for redis cache")
		}
	default:
		return fmt.Errorf("cache.type must be one of: none, memory, redis")
	}

	if c.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}

	if c.CompressThreshold < 0 {
		return fmt.Errorf("cache.compress_threshold cannot be negative")
	}

	return nil
}

// Enabled reports whether a cache backend is configured
func (c *CacheConfig) Enabled() bool {
	t := strings.ToLower(c.Type)
	return t != "" && t != "none"
}

// Validate validates events configuration
func (c *EventsConfig) Validate() error {
	switch strings.ToLower(c.Type) {
	case "", "none":
		return nil
	case "memory":
	case "nats", "redis":
		if c.URL == "" {
			return fmt.Errorf("events.url is required for %s events", c.Type)
		}
	case "kafka":
		if len(c.KafkaBrokers) == 0 && c.URL == "" {
			return fmt.Errorf("events.kafka_brokers or events.url is required for kafka events")
		}
	default:
		return fmt.Errorf("events.type must be one of: none, memory, nats, redis, kafka")
	}

	if c.Subject == "" {
		return fmt.Errorf("events.subject is required")
	}

	return nil
}

// Enabled reports whether an event transport is configured
func (c *EventsConfig) Enabled() bool {
	t := strings.ToLower(c.Type)
	return t != "" && t != "none"
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
