package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Supabase  SupabaseConfig  `mapstructure:"supabase"`
	Webhook   WebhookConfig   `mapstructure:"webhook"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Ingestion IngestionConfig `mapstructure:"ingestion"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type SupabaseConfig struct {
	URL        string        `mapstructure:"url"`
	ServiceKey string        `mapstructure:"service_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type WebhookConfig struct {
	// Secret is the shared HMAC key for the upstream form sender. Empty
	// disables signature verification entirely.
	Secret string `mapstructure:"secret"`
}

type NotifyConfig struct {
	SlackWebhookURL string        `mapstructure:"slack_webhook_url"`
	AdminEmail      string        `mapstructure:"admin_email"`
	ResendAPIKey    string        `mapstructure:"resend_api_key"`
	ResendFromEmail string        `mapstructure:"resend_from_email"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

type IngestionConfig struct {
	RateLimitEnabled  bool          `mapstructure:"rate_limit_enabled"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8787)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.service_key", "")
	v.SetDefault("supabase.timeout", "10s")
	v.SetDefault("webhook.secret", "")
	v.SetDefault("notify.slack_webhook_url", "")
	v.SetDefault("notify.admin_email", "")
	v.SetDefault("notify.resend_api_key", "")
	v.SetDefault("notify.resend_from_email", "")
	v.SetDefault("notify.timeout", "10s")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("ingestion.rate_limit_enabled", false)
	v.SetDefault("ingestion.rate_limit_requests", 600)
	v.SetDefault("ingestion.rate_limit_window", "1m")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/formgate")
	}

	// Environment variables override (FORMGATE_SUPABASE_URL etc.)
	v.SetEnvPrefix("FORMGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate enforces the options the service cannot run without. Optional
// channels (Slack, email) merely disable themselves when unset; the data
// API credentials must fail fast at startup.
func (c *Config) Validate() error {
	if c.Supabase.URL == "" {
		return fmt.Errorf("supabase.url is required (FORMGATE_SUPABASE_URL)")
	}
	if c.Supabase.ServiceKey == "" {
		return fmt.Errorf("supabase.service_key is required (FORMGATE_SUPABASE_SERVICE_KEY)")
	}
	return nil
}
