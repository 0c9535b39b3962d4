package request

import (
	"encoding/json"
	"strings"
)

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SettingsRequest is the request body for changing the guess range
type SettingsRequest struct {
	MinRange *int `json:"min_range"`
	MaxRange *int `json:"max_range"`
}

// GuessRequest carries the raw guess; the server parses it.
// Both "42" and 42 are accepted.
type GuessRequest struct {
	Guess json.RawMessage `json:"guess"`
}

// Raw returns the guess as the user typed it
func (g GuessRequest) Raw() string {
	var text string
	if err := json.Unmarshal(g.Guess, &text); err == nil {
		return text
	}
	return strings.TrimSpace(string(g.Guess))
}
