package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/mcoot/numberguess/internal/api/response"
	"github.com/mcoot/numberguess/internal/storage"
)

// HealthHandler reports whether the server can reach its store
type HealthHandler struct {
	storage     storage.Storage
	storageType string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storage storage.Storage, storageType string) *HealthHandler {
	return &HealthHandler{storage: storage, storageType: storageType}
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Health{Status: "ok", Storage: h.storageType})
}
