package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/numberguess/internal/api/handler"
	"github.com/mcoot/numberguess/internal/api/middleware"
	"github.com/mcoot/numberguess/internal/services/auth"
	"github.com/mcoot/numberguess/internal/services/game"
	"github.com/mcoot/numberguess/internal/services/leaderboard"
	"github.com/mcoot/numberguess/internal/services/scoring"
	"github.com/mcoot/numberguess/internal/sse"
	"github.com/mcoot/numberguess/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	Storage            storage.Storage
	StorageType        string
	AuthService        *auth.Service
	ScoringService     *scoring.Service
	LeaderboardService *leaderboard.Service
	GameController     *game.Controller
	Hub                *sse.Hub
	Broadcaster        *sse.Broadcaster
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService, cfg.ScoringService)
	settingsHandler := handler.NewSettingsHandler(cfg.GameController)
	gameHandler := handler.NewGameHandler(cfg.GameController)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService, cfg.Hub, cfg.Broadcaster, cfg.Logger)
	healthHandler := handler.NewHealthHandler(cfg.Storage, cfg.StorageType)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestID)
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Player routes (no auth required for registering/logging in)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Settings routes
	settings := api.PathPrefix("/settings").Subrouter()
	settings.Use(authMiddleware)
	settings.HandleFunc("", settingsHandler.Get).Methods(http.MethodGet)
	settings.HandleFunc("", settingsHandler.Update).Methods(http.MethodPut)

	// Game routes
	games := api.PathPrefix("/game").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Start).Methods(http.MethodPost)
	games.HandleFunc("", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("", gameHandler.Abandon).Methods(http.MethodDelete)
	games.HandleFunc("/guess", gameHandler.Guess).Methods(http.MethodPost)

	// Leaderboard routes; a token only marks the caller's row
	boards := api.PathPrefix("/leaderboard").Subrouter()
	boards.Use(optionalAuthMiddleware)
	boards.HandleFunc("", leaderboardHandler.Get).Methods(http.MethodGet)
	boards.HandleFunc("/events", leaderboardHandler.Events).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)

	return r
}
