package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/fwhittle/typerace-go/internal/dependencies/clock"
	"github.com/fwhittle/typerace-go/internal/dependencies/random"
	"github.com/fwhittle/typerace-go/internal/services/room"
	"github.com/fwhittle/typerace-go/internal/services/words"
	"github.com/fwhittle/typerace-go/internal/storage"
	"github.com/fwhittle/typerace-go/internal/storage/memory"
	redisstorage "github.com/fwhittle/typerace-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	WordsService   *words.Service
	RoomController *room.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// RoomConfig holds race timing settings (optional)
	// If zero value, defaults to room.DefaultConfig()
	RoomConfig room.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	roomCfg := cfg.RoomConfig
	if roomCfg.TestDuration == 0 {
		roomCfg = room.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, roomCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, roomCfg room.Config, logger *slog.Logger) *App {
	wordsService := words.New(store, rnd, logger)
	roomController := room.NewController(store, wordsService, clk, rnd, logger, roomCfg)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		WordsService:   wordsService,
		RoomController: roomController,
	}
}
