package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service-level configuration. Database settings are
// read by the database package itself.
type Config struct {
	Port      string
	RedisURL  string
	JWTSecret string
	CartTTL   time.Duration
}

// LoadConfig reads configuration from environment variables, with a .env
// fallback for local development.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		CartTTL:   7 * 24 * time.Hour,
	}

	if raw := os.Getenv("CART_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("invalid CART_TTL_HOURS: %q", raw)
		}
		cfg.CartTTL = time.Duration(hours) * time.Hour
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
