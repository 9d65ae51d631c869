// Package config loads server configuration from the environment, with a
// .env file picked up when present.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything the server needs at startup.
type Config struct {
	// HTTPAddr is the listen address for the HTTP/WebSocket server.
	HTTPAddr string

	// RedisAddr selects the Redis match store when non-empty; otherwise
	// matches live in process memory.
	RedisAddr     string
	RedisPassword string

	// PostgresDSN enables the durable move log when non-empty.
	PostgresDSN string

	// TurnTimeout is how long a player may sit on their turn before the
	// server acts for them.
	TurnTimeout time.Duration

	// GameTTL bounds how long an idle match survives in Redis. Zero
	// means no expiry.
	GameTTL time.Duration

	LogLevel logrus.Level
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:      getEnv("BELATRO_HTTP_ADDR", ":8080"),
		RedisAddr:     os.Getenv("BELATRO_REDIS_ADDR"),
		RedisPassword: os.Getenv("BELATRO_REDIS_PASSWORD"),
		PostgresDSN:   os.Getenv("BELATRO_POSTGRES_DSN"),
		TurnTimeout:   getDuration("BELATRO_TURN_TIMEOUT", 30*time.Second),
		GameTTL:       getDuration("BELATRO_GAME_TTL", 24*time.Hour),
		LogLevel:      logrus.InfoLevel,
	}
	if raw := os.Getenv("BELATRO_LOG_LEVEL"); raw != "" {
		if lvl, err := logrus.ParseLevel(raw); err == nil {
			cfg.LogLevel = lvl
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
