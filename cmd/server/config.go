package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/seabattle/internal/factory"
	redisstorage "github.com/mcoot/seabattle/internal/storage/redis"
)

// serverConfig is everything the server reads from its environment
type serverConfig struct {
	Port        int
	LogLevel    slog.Level
	StorageType string
	Redis       *redisstorage.Config
}

// loadDotEnv reads .env outside production. A missing file is not an error.
func loadDotEnv(path string) error {
	if os.Getenv("STAGE") == "prod" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func loadConfig() (serverConfig, error) {
	cfg := serverConfig{
		Port:        8080,
		LogLevel:    slog.LevelInfo,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return cfg, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return cfg, fmt.Errorf("invalid LOG_LEVEL %q", v)
		}
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			return cfg, errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		if v := os.Getenv("SESSION_TTL"); v != "" {
			ttl, err := time.ParseDuration(v)
			if err != nil || ttl <= 0 {
				return cfg, fmt.Errorf("invalid SESSION_TTL %q", v)
			}
			redisCfg.SessionTTL = ttl
		}
		cfg.Redis = &redisCfg
	}

	return cfg, nil
}
