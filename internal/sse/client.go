package sse

import (
	"net/http"
	"time"
)

const (
	// Time between keepalive pings
	pingPeriod = 30 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 16
)

// Client represents a connected SSE client
type Client struct {
	viewer      string
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new SSE client; viewer is only used for logging
func NewClient(viewer string) *Client {
	return &Client{
		viewer:      viewer,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ServeSSE streams hub events to the client until either side goes away.
// initial, if non-empty, is written straight after the connected event.
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, viewer string, initial []byte) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := NewClient(viewer)
	if !hub.Register(client) {
		http.Error(w, "Event stream closed", http.StatusServiceUnavailable)
		return
	}
	defer hub.Unregister(client)

	_, _ = w.Write(formatSSEMessage("connected", `{"status":"connected"}`))
	if len(initial) > 0 {
		_, _ = w.Write(initial)
	}
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				// Hub closed the channel
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
