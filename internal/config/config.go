package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL     string
	RedisURL        string
	HostTokenSecret string
	ServerPort      string
	RefreshInterval time.Duration
	SessionTTL      time.Duration
	HostTokenTTL    time.Duration
}

func Load() *Config {
	return &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		HostTokenSecret: getEnv("HOST_TOKEN_SECRET", "change-me"),
		ServerPort:      getEnv("PORT", "8080"),
		RefreshInterval: getDuration("REFRESH_INTERVAL_SECONDS", 2) * time.Second,
		SessionTTL:      getDuration("SESSION_TTL_HOURS", 72) * time.Hour,
		HostTokenTTL:    getDuration("HOST_TOKEN_TTL_HOURS", 72) * time.Hour,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback int64) time.Duration {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(fallback)
}
