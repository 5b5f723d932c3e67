package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type RateLimitConfig struct {
	Capacity int           `yaml:"capacity"`
	Window   time.Duration `yaml:"window"`
}

type CacheConfig struct {
	RedisAddr string        `yaml:"redis_addr"`
	TTL       time.Duration `yaml:"ttl"`
}

type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	LeadsTopic string   `yaml:"leads_topic"`
}

type ChatConfig struct {
	Providers        []string      `yaml:"providers"`
	OpenRouterAPIKey string        `yaml:"openrouter_api_key"`
	AnthropicAPIKey  string        `yaml:"anthropic_api_key"`
	GrokAPIKey       string        `yaml:"grok_api_key"`
	HistoryLimit     int           `yaml:"history_limit"`
	Timeout          time.Duration `yaml:"timeout"`
}

type Config struct {
	HTTPPort    int             `yaml:"http_port"`
	ServiceName string          `yaml:"service_name"`
	Log         LogConfig       `yaml:"log"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	Cache       CacheConfig     `yaml:"cache"`
	Kafka       KafkaConfig     `yaml:"kafka"`
	Chat        ChatConfig      `yaml:"chat"`
}

func defaults() Config {
	return Config{
		HTTPPort:    8080,
		ServiceName: "sparta-mortgage",
		Log:         LogConfig{Level: "info", Format: "text"},
		RateLimit:   RateLimitConfig{Capacity: 5, Window: time.Minute},
		Cache:       CacheConfig{TTL: 10 * time.Minute},
		Kafka:       KafkaConfig{LeadsTopic: "leads"},
		Chat: ChatConfig{
			Providers:    []string{"openrouter", "anthropic", "grok"},
			HistoryLimit: 20,
			Timeout:      30 * time.Second,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by CONFIG_FILE, and environment variables, in increasing precedence.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.HTTPPort = getEnvInt("HTTP_PORT", cfg.HTTPPort)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	cfg.RateLimit.Capacity = getEnvInt("RATE_LIMIT_CAPACITY", cfg.RateLimit.Capacity)
	cfg.RateLimit.Window = getEnvDuration("RATE_LIMIT_WINDOW", cfg.RateLimit.Window)
	cfg.Cache.RedisAddr = getEnv("REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Cache.TTL = getEnvDuration("CACHE_TTL", cfg.Cache.TTL)
	cfg.Kafka.Brokers = getEnvList("KAFKA_BROKERS", cfg.Kafka.Brokers)
	cfg.Kafka.LeadsTopic = getEnv("LEADS_TOPIC", cfg.Kafka.LeadsTopic)
	cfg.Chat.Providers = getEnvList("CHAT_PROVIDERS", cfg.Chat.Providers)
	cfg.Chat.OpenRouterAPIKey = getEnv("OPENROUTER_API_KEY", cfg.Chat.OpenRouterAPIKey)
	cfg.Chat.AnthropicAPIKey = getEnv("ANTHROPIC_API_KEY", cfg.Chat.AnthropicAPIKey)
	cfg.Chat.GrokAPIKey = getEnv("GROK_API_KEY", cfg.Chat.GrokAPIKey)
	cfg.Chat.HistoryLimit = getEnvInt("CHAT_HISTORY_LIMIT", cfg.Chat.HistoryLimit)
	cfg.Chat.Timeout = getEnvDuration("CHAT_TIMEOUT", cfg.Chat.Timeout)

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT %d out of range", c.HTTPPort))
	}
	if c.RateLimit.Capacity <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_CAPACITY must be positive"))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	if c.Chat.Timeout <= 0 {
		errs = append(errs, errors.New("CHAT_TIMEOUT must be positive"))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.LeadsTopic == "" {
		errs = append(errs, errors.New("LEADS_TOPIC is required when KAFKA_BROKERS is set"))
	}
	for _, p := range c.Chat.Providers {
		switch p {
		case "openrouter", "anthropic", "grok":
		default:
			errs = append(errs, fmt.Errorf("unknown chat provider %q", p))
		}
	}
	return errors.Join(errs...)
}

// APIKey returns the configured key for a chat provider name.
func (c ChatConfig) APIKey(provider string) string {
	switch provider {
	case "openrouter":
		return c.OpenRouterAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	case "grok":
		return c.GrokAPIKey
	}
	return ""
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, strings.ToLower(item))
		}
	}
	return out
}
