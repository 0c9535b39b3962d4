package handler

import (
	"net/http"

	"github.com/mcoot/numberguess/internal/api/middleware"
	"github.com/mcoot/numberguess/internal/api/request"
	"github.com/mcoot/numberguess/internal/api/response"
	"github.com/mcoot/numberguess/internal/model"
	"github.com/mcoot/numberguess/internal/services/game"
)

// SettingsHandler handles the guess range settings
type SettingsHandler struct {
	gameController *game.Controller
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(gameController *game.Controller) *SettingsHandler {
	return &SettingsHandler{gameController: gameController}
}

// Get handles GET /api/v1/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var resp response.Settings
	_ = session.WithState(func(state *model.Session) error {
		resp = response.SettingsFromModel(state.Settings)
		return nil
	})
	response.JSON(w, http.StatusOK, resp)
}

// Update handles PUT /api/v1/settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.SettingsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.MinRange == nil || req.MaxRange == nil {
		WriteError(w, NewInvalidRequestError("min_range and max_range are required"))
		return
	}

	var resp response.Settings
	err := session.WithState(func(state *model.Session) error {
		if err := h.gameController.UpdateSettings(state, *req.MinRange, *req.MaxRange); err != nil {
			return err
		}
		resp = response.SettingsFromModel(state.Settings)
		return nil
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, resp)
}
