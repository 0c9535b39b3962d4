package response

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// JSON writes data as the response body. Encoding happens before the
// status is sent, so a value that cannot be encoded becomes a plain 500.
func JSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if data != nil {
		if err := json.NewEncoder(&buf).Encode(data); err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	// Responses carry per-player state
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
