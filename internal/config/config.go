package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/vectorgov/vectorgov-go/internal/alert"
)

// Config holds all configuration for the library
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	API      APIConfig      `mapstructure:"api"`
	Alerting AlertingConfig `mapstructure:"alerting"`
	Security SecurityConfig `mapstructure:"security"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// APIConfig contains VectorGov API connection configuration
type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxIdleConns   int           `mapstructure:"max_idle_conns"`
}

// AlertingConfig contains alert dispatcher configuration
type AlertingConfig struct {
	MinSeverity     string   `mapstructure:"min_severity"`
	WebhookURL      string   `mapstructure:"webhook_url"`
	WebhookEnabled  bool     `mapstructure:"webhook_enabled"`
	WebhookFormat   string   `mapstructure:"webhook_format"`
	CooldownSeconds int      `mapstructure:"cooldown_seconds"`
	Channels        []string `mapstructure:"channels"`
}

// SecurityConfig contains security helper configuration
type SecurityConfig struct {
	RateLimitRPM            int           `mapstructure:"rate_limit_rpm"`
	BreakerFailureThreshold int           `mapstructure:"breaker_failure_threshold"`
	BreakerResetTimeout     time.Duration `mapstructure:"breaker_reset_timeout"`
	EnablePIIDetection      bool          `mapstructure:"enable_pii_detection"`
	EnableInjectionChecks   bool          `mapstructure:"enable_injection_checks"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json, text
	Output string `mapstructure:"output"` // stdout, file
	File   string `mapstructure:"file"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigType("yaml")

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./internal/config")
	}

	viper.SetEnvPrefix("VECTORGOV")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("Config file not found, using defaults and environment variables")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Override with environment variables if present
	if apiKey := os.Getenv("VECTORGOV_API_KEY"); apiKey != "" {
		config.API.APIKey = apiKey
	}
	if baseURL := os.Getenv("VECTORGOV_API_URL"); baseURL != "" {
		config.API.BaseURL = baseURL
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "vectorgov-go")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.debug", false)

	// API defaults
	viper.SetDefault("api.base_url", "https://api.vectorgov.example/v1")
	viper.SetDefault("api.request_timeout", "30s")
	viper.SetDefault("api.max_idle_conns", 10)

	// Alerting defaults
	viper.SetDefault("alerting.min_severity", "warning")
	viper.SetDefault("alerting.webhook_enabled", false)
	viper.SetDefault("alerting.webhook_format", "slack")
	viper.SetDefault("alerting.cooldown_seconds", 60)
	viper.SetDefault("alerting.channels", []string{"log"})

	// Security defaults
	viper.SetDefault("security.rate_limit_rpm", 60)
	viper.SetDefault("security.breaker_failure_threshold", 5)
	viper.SetDefault("security.breaker_reset_timeout", "30s")
	viper.SetDefault("security.enable_pii_detection", true)
	viper.SetDefault("security.enable_injection_checks", true)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}
	if c.API.RequestTimeout < 0 {
		return fmt.Errorf("API request timeout must not be negative")
	}
	if c.Alerting.CooldownSeconds < 0 {
		return fmt.Errorf("alerting cooldown must not be negative")
	}
	if _, err := alert.ParseSeverity(c.Alerting.MinSeverity); err != nil {
		return fmt.Errorf("invalid alerting minimum severity: %w", err)
	}
	if c.Security.RateLimitRPM <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	return nil
}

// AlertConfig converts the alerting section into a dispatcher
// configuration.
func (c *AlertingConfig) AlertConfig() alert.Config {
	channels := make([]alert.Channel, 0, len(c.Channels))
	for _, ch := range c.Channels {
		channels = append(channels, alert.Channel(ch))
	}

	return alert.Config{
		MinSeverity:    alert.Severity(c.MinSeverity),
		WebhookURL:     c.WebhookURL,
		WebhookEnabled: c.WebhookEnabled,
		WebhookFormat:  alert.WebhookFormat(c.WebhookFormat),
		Cooldown:       time.Duration(c.CooldownSeconds) * time.Second,
		Channels:       channels,
	}
}
