package handler

import (
	"net/http"

	"github.com/mcoot/numberguess/internal/api/middleware"
	"github.com/mcoot/numberguess/internal/api/request"
	"github.com/mcoot/numberguess/internal/api/response"
	"github.com/mcoot/numberguess/internal/model"
	"github.com/mcoot/numberguess/internal/services/auth"
	"github.com/mcoot/numberguess/internal/services/scoring"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	authService    *auth.Service
	scoringService *scoring.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(authService *auth.Service, scoringService *scoring.Service) *PlayerHandler {
	return &PlayerHandler{
		authService:    authService,
		scoringService: scoringService,
	}
}

// Register handles POST /api/v1/players/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := h.authService.Register(r.Context(), req.Username, req.Password, req.Confirm)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/players/login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /api/v1/players/logout
func (h *PlayerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	h.authService.Logout(session.Token)
	response.NoContent(w)
}

// GetMe handles GET /api/v1/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	best, err := h.scoringService.BestScore(r.Context(), session.Player.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	me := response.Me{Username: session.Player.Username, BestScore: best}
	_ = session.WithState(func(state *model.Session) error {
		me.Settings = response.SettingsFromModel(state.Settings)
		me.Playing = state.Game != nil && state.Game.State == model.GameStateInProgress
		return nil
	})
	response.JSON(w, http.StatusOK, me)
}
