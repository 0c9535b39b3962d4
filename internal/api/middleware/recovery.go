package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/numberguess/internal/api/apierr"
	"github.com/mcoot/numberguess/internal/middleware"
)

// Recovery answers handler panics with a JSON INTERNAL_ERROR quoting the
// request ID
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, r *http.Request, _ any) {
		err := apierr.NewInternalError()
		if id := middleware.GetRequestID(r.Context()); id != "" {
			err = apierr.NewInternalErrorf("Internal server error (request %s)", id)
		}
		apierr.WriteError(w, err)
	})
}
