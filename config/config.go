package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Fetcher modes
const (
	FetcherModePlaceholder = "placeholder"
	FetcherModeHTTP        = "http"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Fetcher   FetcherConfig   `mapstructure:"fetcher"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// FetcherConfig controls how products are scored when the browser sends too little text
type FetcherConfig struct {
	Mode              string        `mapstructure:"mode"` // "placeholder" or "http"
	Timeout           time.Duration `mapstructure:"timeout"`
	UserAgent         string        `mapstructure:"user_agent"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxRetries        int           `mapstructure:"max_retries"`
	MaxTextLength     int           `mapstructure:"max_text_length"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type            string        `mapstructure:"type"` // only "memory"
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/ecoscore/")

	// Environment variable settings
	v.SetEnvPrefix("ECOSCORE")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", "10s")

	// Fetcher defaults
	v.SetDefault("fetcher.mode", FetcherModePlaceholder)
	v.SetDefault("fetcher.timeout", "15s")
	v.SetDefault("fetcher.user_agent", "EcoScore/2.0")
	v.SetDefault("fetcher.requests_per_second", 1.0)
	v.SetDefault("fetcher.burst", 5)
	v.SetDefault("fetcher.max_retries", 3)
	v.SetDefault("fetcher.max_text_length", 3000)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_interval", "10m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 0)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return errors.New("server port is required (set ECOSCORE_SERVER_PORT)")
	}

	if config.Fetcher.Mode != FetcherModePlaceholder && config.Fetcher.Mode != FetcherModeHTTP {
		return fmt.Errorf("fetcher mode must be '%s' or '%s', got: %s",
			FetcherModePlaceholder, FetcherModeHTTP, config.Fetcher.Mode)
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative, got: %s", config.Cache.TTL)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
