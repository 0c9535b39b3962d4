package response

import (
	"time"

	"github.com/mcoot/numberguess/internal/model"
	"github.com/mcoot/numberguess/internal/services/auth"
	"github.com/mcoot/numberguess/internal/services/game"
)

// Player represents a player in API responses
type Player struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// PlayerFromModel converts a model.Identity to a response Player
func PlayerFromModel(p model.Identity) Player {
	return Player{
		ID:       int64(p.ID),
		Username: p.Username,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(s.Player),
		SessionToken: s.Token,
	}
}

// Settings is the guess range used for new games
type Settings struct {
	MinRange int `json:"min_range"`
	MaxRange int `json:"max_range"`
}

// SettingsFromModel converts model.Settings
func SettingsFromModel(s model.Settings) Settings {
	return Settings{MinRange: s.MinRange, MaxRange: s.MaxRange}
}

// Me is the signed-in player's overview
type Me struct {
	Username  string   `json:"username"`
	BestScore *int     `json:"best_score"`
	Settings  Settings `json:"settings"`
	Playing   bool     `json:"playing"`
}

// Game is the visible state of a game; the target is only shown once won
type Game struct {
	ID        string    `json:"id"`
	State     string    `json:"state"`
	Attempts  int       `json:"attempts"`
	MinRange  int       `json:"min_range"`
	MaxRange  int       `json:"max_range"`
	Target    *int      `json:"target,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// GameFromModel converts model.Game
func GameFromModel(g *model.Game) Game {
	resp := Game{
		ID:        string(g.ID),
		State:     string(g.State),
		Attempts:  g.Attempts,
		MinRange:  g.Settings.MinRange,
		MaxRange:  g.Settings.MaxRange,
		StartedAt: g.StartedAt,
	}
	if g.IsWon() {
		target := g.Target
		resp.Target = &target
	}
	return resp
}

// Win reports the effect of a winning guess on the best score
type Win struct {
	Attempts     int  `json:"attempts"`
	IsNewBest    bool `json:"is_new_best"`
	PreviousBest *int `json:"previous_best"`
}

// GuessResponse is the response after a guess
type GuessResponse struct {
	Outcome  string `json:"outcome"`
	Attempts int    `json:"attempts"`
	State    string `json:"state"`
	MinRange int    `json:"min_range"`
	MaxRange int    `json:"max_range"`
	Win      *Win   `json:"win,omitempty"`
}

// GuessResponseFromResult converts a game.GuessResult
func GuessResponseFromResult(r *game.GuessResult) GuessResponse {
	resp := GuessResponse{
		Outcome:  string(r.Outcome),
		Attempts: r.Attempts,
		State:    string(r.State),
		MinRange: r.Settings.MinRange,
		MaxRange: r.Settings.MaxRange,
	}
	if r.Win != nil {
		resp.Win = &Win{
			Attempts:     r.Win.Attempts,
			IsNewBest:    r.Win.IsNewBest,
			PreviousBest: r.Win.PreviousBest,
		}
	}
	return resp
}

// LeaderboardEntry is one ranked row
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	Username  string `json:"username"`
	BestScore int    `json:"best_score"`
	IsYou     bool   `json:"is_you,omitempty"`
}

// Leaderboard is the top-n list
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromModel converts entries, marking the viewer's row
func LeaderboardFromModel(entries []model.LeaderboardEntry, viewer string) Leaderboard {
	resp := Leaderboard{Entries: make([]LeaderboardEntry, len(entries))}
	for i, e := range entries {
		resp.Entries[i] = LeaderboardEntry{
			Rank:      e.Rank,
			Username:  e.Username,
			BestScore: e.BestScore,
			IsYou:     viewer != "" && e.Username == viewer,
		}
	}
	return resp
}

// Health is the health check response
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
