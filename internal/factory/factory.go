package factory

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/seabattle/internal/dependencies/clock"
	"github.com/mcoot/seabattle/internal/dependencies/random"
	"github.com/mcoot/seabattle/internal/services/match"
	"github.com/mcoot/seabattle/internal/services/session"
	"github.com/mcoot/seabattle/internal/storage"
	"github.com/mcoot/seabattle/internal/storage/memory"
	redisstorage "github.com/mcoot/seabattle/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Logger *slog.Logger

	// SessionService hosts persisted bot opponents
	SessionService *session.Service
	// Simulator plays self-play games on the app's shared random source
	Simulator *match.Simulator
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger; nil discards logs
	Logger *slog.Logger
	// StorageType is "memory" (the default) or "redis"
	StorageType string
	// RedisConfig is required when StorageType is "redis"
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	return newWithDependencies(store, clock.New(), random.New(), logger), nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	switch cfg.StorageType {
	case "", StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("storage type %q needs a RedisConfig", StorageTypeRedis)
		}
		store, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("invalid storage type %q: must be %q or %q", cfg.StorageType, StorageTypeMemory, StorageTypeRedis)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Logger:         logger,
		SessionService: session.NewService(store, clk, rnd, logger),
		Simulator:      match.NewSimulator(rnd, logger),
	}
}

// Close releases storage connections, if the backend holds any
func (a *App) Close() error {
	if c, ok := a.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
