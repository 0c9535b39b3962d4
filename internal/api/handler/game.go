package handler

import (
	"net/http"

	"github.com/mcoot/numberguess/internal/api/middleware"
	"github.com/mcoot/numberguess/internal/api/request"
	"github.com/mcoot/numberguess/internal/api/response"
	"github.com/mcoot/numberguess/internal/model"
	"github.com/mcoot/numberguess/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{gameController: gameController}
}

// Start handles POST /api/v1/game
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var resp response.Game
	err := session.WithState(func(state *model.Session) error {
		g, err := h.gameController.Start(state)
		if err != nil {
			return err
		}
		resp = response.GameFromModel(g)
		return nil
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, resp)
}

// Get handles GET /api/v1/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var resp response.Game
	err := session.WithState(func(state *model.Session) error {
		g, err := h.gameController.Current(state)
		if err != nil {
			return err
		}
		resp = response.GameFromModel(g)
		return nil
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, resp)
}

// Guess handles POST /api/v1/game/guess
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.GuessRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var resp response.GuessResponse
	err := session.WithState(func(state *model.Session) error {
		result, err := h.gameController.GuessInput(r.Context(), state, req.Raw())
		if err != nil {
			return err
		}
		resp = response.GuessResponseFromResult(result)
		return nil
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, resp)
}

// Abandon handles DELETE /api/v1/game
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	err := session.WithState(func(state *model.Session) error {
		return h.gameController.Abandon(state)
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
