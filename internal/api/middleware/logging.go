package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/numberguess/internal/middleware"
)

// HealthPath is polled often, so successful checks only log at debug
const HealthPath = "/api/v1/health"

// RequestID tags each API request with an X-Request-ID
func RequestID(next http.Handler) http.Handler {
	return middleware.RequestID(next)
}

// Logging creates request logging middleware for the API
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger, HealthPath)
}
