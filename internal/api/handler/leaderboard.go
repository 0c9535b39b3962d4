package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mcoot/numberguess/internal/api/middleware"
	"github.com/mcoot/numberguess/internal/api/response"
	"github.com/mcoot/numberguess/internal/model"
	"github.com/mcoot/numberguess/internal/services/leaderboard"
	"github.com/mcoot/numberguess/internal/sse"
)

// LeaderboardHandler serves the ranked best scores
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
	hub                *sse.Hub
	broadcaster        *sse.Broadcaster
	logger             *slog.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(
	leaderboardService *leaderboard.Service,
	hub *sse.Hub,
	broadcaster *sse.Broadcaster,
	logger *slog.Logger,
) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		hub:                hub,
		broadcaster:        broadcaster,
		logger:             logger,
	}
}

// Get handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			WriteError(w, model.ErrInvalidLimit)
			return
		}
		limit = n
	}

	entries, err := h.leaderboardService.Top(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	viewer := ""
	if session := middleware.GetSession(r.Context()); session != nil {
		viewer = session.Player.Username
	}
	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries, viewer))
}

// Events handles GET /api/v1/leaderboard/events
func (h *LeaderboardHandler) Events(w http.ResponseWriter, r *http.Request) {
	viewer := "anonymous"
	if session := middleware.GetSession(r.Context()); session != nil {
		viewer = session.Player.Username
	}

	snapshot, err := h.broadcaster.Snapshot(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	sse.ServeSSE(w, r, h.hub, viewer, snapshot)
}
