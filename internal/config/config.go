package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the server binary needs, sourced from the
// environment (a .env file is honored when present).
type Config struct {
	FeedURL           string
	MaxProducts       int
	FetchInterval     time.Duration
	FetchInitialDelay time.Duration
	DatabaseURL       string
	RedisAddr         string
	HTTPAddr          string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("FEED_MAX_PRODUCTS", 50)
	v.SetDefault("FEED_INTERVAL", "24h")
	v.SetDefault("FEED_INITIAL_DELAY", "5s")
	v.SetDefault("HTTP_ADDR", ":8080")

	cfg := &Config{
		FeedURL:           v.GetString("FEED_URL"),
		MaxProducts:       v.GetInt("FEED_MAX_PRODUCTS"),
		FetchInterval:     v.GetDuration("FEED_INTERVAL"),
		FetchInitialDelay: v.GetDuration("FEED_INITIAL_DELAY"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		HTTPAddr:          v.GetString("HTTP_ADDR"),
	}

	if cfg.FeedURL == "" {
		return nil, fmt.Errorf("environment variable FEED_URL not found")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("environment variable DATABASE_URL not found")
	}
	if cfg.MaxProducts <= 0 {
		return nil, fmt.Errorf("FEED_MAX_PRODUCTS must be greater than zero")
	}
	// GetDuration returns 0 for an unparseable value, and a zero interval
	// would blow up the scheduler's ticker. Refuse to start instead.
	if cfg.FetchInterval <= 0 {
		return nil, fmt.Errorf("FEED_INTERVAL must be a positive duration")
	}
	if cfg.FetchInitialDelay < 0 {
		return nil, fmt.Errorf("FEED_INITIAL_DELAY cannot be negative")
	}

	return cfg, nil
}
