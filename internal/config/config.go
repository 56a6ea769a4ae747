// Package config loads settings from defaults, an optional config file and
// STRAVADASH_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "STRAVADASH"

// Config holds settings shared by the CLI and the local server
type Config struct {
	APIBaseURL     string        `mapstructure:"api_base_url"`
	TokenURL       string        `mapstructure:"token_url"`
	AuthURL        string        `mapstructure:"auth_url"`
	RedirectURL    string        `mapstructure:"redirect_url"`
	ClientID       string        `mapstructure:"client_id"`
	ClientSecret   string        `mapstructure:"client_secret"`
	AccessToken    string        `mapstructure:"access_token"`    // используется, пока в хранилище нет токенов
	RefreshToken   string        `mapstructure:"refresh_token"`   // используется, пока в хранилище нет токенов
	Passphrase     string        `mapstructure:"passphrase"`      // если задан, токены шифруются на диске
	TokenDB        string        `mapstructure:"token_db"`
	CacheDB        string        `mapstructure:"cache_db"`
	ServerAddr     string        `mapstructure:"server_addr"`
	LogLevel       string        `mapstructure:"log_level"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`    // на один запрос к Strava
	RequestTimeout time.Duration `mapstructure:"request_timeout"` // на один запрос к dashboard API
	MaxPages       int           `mapstructure:"max_pages"`       // 0 = без ограничения
	RateLimit      int           `mapstructure:"rate_limit"`      // запросов в минуту на IP
}

var defaults = map[string]any{
	"api_base_url":    "https://www.strava.com/api/v3",
	"token_url":       "https://www.strava.com/oauth/token",
	"auth_url":        "https://www.strava.com/oauth/authorize",
	"redirect_url":    "http://localhost/exchange_token",
	"client_id":       "",
	"client_secret":   "",
	"access_token":    "",
	"refresh_token":   "",
	"passphrase":      "",
	"token_db":        "stravadash.db",
	"cache_db":        "stravadash-cache.sqlite",
	"server_addr":     "localhost:8080",
	"log_level":       "info",
	"http_timeout":    "30s",
	"request_timeout": "2m",
	"max_pages":       0,
	"rate_limit":      120,
}

// Load reads the configuration. configFile may be empty.
func Load(configFile string) (Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would break the clients at runtime
func (c Config) Validate() error {
	if c.APIBaseURL == "" || c.TokenURL == "" {
		return fmt.Errorf("api_base_url and token_url are required")
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("max_pages must be >= 0, got %d", c.MaxPages)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must be >= 0, got %s", c.RequestTimeout)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive, got %d", c.RateLimit)
	}
	return nil
}

// SlogLevel maps log_level to slog.Level; unknown values mean Info
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
