package factory

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mcoot/numberguess/internal/api"
	"github.com/mcoot/numberguess/internal/dependencies/clock"
	"github.com/mcoot/numberguess/internal/dependencies/random"
	"github.com/mcoot/numberguess/internal/services/auth"
	"github.com/mcoot/numberguess/internal/services/game"
	"github.com/mcoot/numberguess/internal/services/leaderboard"
	"github.com/mcoot/numberguess/internal/services/scoring"
	"github.com/mcoot/numberguess/internal/sse"
	"github.com/mcoot/numberguess/internal/storage"
	"github.com/mcoot/numberguess/internal/storage/memory"
	redisstorage "github.com/mcoot/numberguess/internal/storage/redis"
	"github.com/mcoot/numberguess/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage     storage.Storage
	StorageType string

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Logger *slog.Logger

	// Services
	AuthService        *auth.Service
	ScoringService     *scoring.Service
	LeaderboardService *leaderboard.Service
	GameController     *game.Controller
	Hub                *sse.Hub
	Broadcaster        *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// LeaderboardSize is the default number of leaderboard entries
	LeaderboardSize int
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	clk := clock.New()
	store, err := openStorage(storageType, cfg, clk)
	if err != nil {
		return nil, err
	}

	app := newWithDependencies(store, clk, random.New(), cfg.AuthConfig, cfg.LeaderboardSize, logger)
	app.StorageType = storageType
	return app, nil
}

func openStorage(storageType string, cfg Config, clk clock.Clock) (storage.Storage, error) {
	switch storageType {
	case StorageTypeMemory:
		return memory.New(memory.WithClock(clk)), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig, redisstorage.WithClock(clk))
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		return sqlite.Open(cfg.SQLitePath, sqlite.WithClock(clk))
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	leaderboardSize int,
	logger *slog.Logger,
) *App {
	leaderboardService := leaderboard.New(store, leaderboardSize)

	hub := sse.NewHub(logger)
	go hub.Run()
	broadcaster := sse.NewBroadcaster(hub, leaderboardService, logger)

	scoringService := scoring.New(store, logger, broadcaster)
	gameController := game.NewController(scoringService, clk, rnd, logger)
	authService := auth.New(store, clk, authCfg, logger)

	return &App{
		Storage:            store,
		StorageType:        StorageTypeMemory,
		Clock:              clk,
		Random:             rnd,
		Logger:             logger,
		AuthService:        authService,
		ScoringService:     scoringService,
		LeaderboardService: leaderboardService,
		GameController:     gameController,
		Hub:                hub,
		Broadcaster:        broadcaster,
	}
}

// Router builds the HTTP API for the app
func (a *App) Router() http.Handler {
	return api.NewRouter(api.RouterConfig{
		Logger:             a.Logger,
		Storage:            a.Storage,
		StorageType:        a.StorageType,
		AuthService:        a.AuthService,
		ScoringService:     a.ScoringService,
		LeaderboardService: a.LeaderboardService,
		GameController:     a.GameController,
		Hub:                a.Hub,
		Broadcaster:        a.Broadcaster,
	})
}

// Close stops the event hub and releases the store
func (a *App) Close() error {
	a.Hub.Close()
	return a.Storage.Close()
}
