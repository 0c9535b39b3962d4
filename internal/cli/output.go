package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	return &Output{format: format, w: w}
}

// JSON reports whether output is machine-readable
func (o *Output) JSON() bool {
	return o.format == "json"
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.JSON() {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.JSON() {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case Me:
		o.printMe(v)
	case Settings:
		o.printSettings(v)
	case Game:
		o.printGame(v)
	case GuessResult:
		o.printGuessResult(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Settings response type
type Settings struct {
	MinRange int `json:"min_range"`
	MaxRange int `json:"max_range"`
}

// Me response type
type Me struct {
	Username  string   `json:"username"`
	BestScore *int     `json:"best_score"`
	Settings  Settings `json:"settings"`
	Playing   bool     `json:"playing"`
}

// Game response type
type Game struct {
	ID       string `json:"id"`
	State    string `json:"state"`
	Attempts int    `json:"attempts"`
	MinRange int    `json:"min_range"`
	MaxRange int    `json:"max_range"`
	Target   *int   `json:"target,omitempty"`
}

// Win response type
type Win struct {
	Attempts     int  `json:"attempts"`
	IsNewBest    bool `json:"is_new_best"`
	PreviousBest *int `json:"previous_best"`
}

// GuessResult response type
type GuessResult struct {
	Outcome  string `json:"outcome"`
	Attempts int    `json:"attempts"`
	State    string `json:"state"`
	MinRange int    `json:"min_range"`
	MaxRange int    `json:"max_range"`
	Win      *Win   `json:"win,omitempty"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	Username  string `json:"username"`
	BestScore int    `json:"best_score"`
	IsYou     bool   `json:"is_you,omitempty"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Latency string `json:"latency,omitempty"`
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printf("Player: %s (%d)\n", a.Player.Username, a.Player.ID)
	o.printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printMe(m Me) {
	o.printf("Player: %s\n", m.Username)
	if m.BestScore != nil {
		o.printf("Best score: %d attempts\n", *m.BestScore)
	} else {
		o.printf("Best score: none yet\n")
	}
	o.printf("Range: %d-%d\n", m.Settings.MinRange, m.Settings.MaxRange)
	if m.Playing {
		o.printf("A game is in progress\n")
	}
}

func (o *Output) printSettings(s Settings) {
	o.printf("Range: %d-%d\n", s.MinRange, s.MaxRange)
}

func (o *Output) printGame(g Game) {
	o.printf("Game: %s\n", g.ID)
	o.printf("State: %s\n", g.State)
	o.printf("Range: %d-%d\n", g.MinRange, g.MaxRange)
	o.printf("Attempts: %d\n", g.Attempts)
	if g.Target != nil {
		o.printf("Number: %d\n", *g.Target)
	}
}

func (o *Output) printGuessResult(r GuessResult) {
	o.printf("%s\n", outcomeMessage(r))
	if r.Win == nil {
		o.printf("Attempts: %d\n", r.Attempts)
		return
	}
	o.printf("%s\n", winMessage(*r.Win))
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Entries) == 0 {
		o.printf("No scores yet\n")
		return
	}
	o.printf("%-5s %-20s %s\n", "RANK", "PLAYER", "ATTEMPTS")
	for _, e := range l.Entries {
		name := e.Username
		if e.IsYou {
			name += " (you)"
		}
		o.printf("%-5d %-20s %d\n", e.Rank, name, e.BestScore)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	o.printf("Status: %s\n", h.Status)
	if h.Storage != "" {
		o.printf("Storage: %s\n", h.Storage)
	}
	if h.Latency != "" {
		o.printf("Latency: %s\n", h.Latency)
	}
}

func outcomeMessage(r GuessResult) string {
	switch r.Outcome {
	case "too_low":
		return "Too low! Try a higher number."
	case "too_high":
		return "Too high! Try a lower number."
	case "correct":
		return "Correct! You win!"
	case "out_of_range":
		return fmt.Sprintf("Please enter a number between %d and %d", r.MinRange, r.MaxRange)
	default:
		return r.Outcome
	}
}

func winMessage(w Win) string {
	if w.IsNewBest {
		return fmt.Sprintf("New personal best! Attempts: %d", w.Attempts)
	}
	if w.PreviousBest != nil {
		return fmt.Sprintf("You won in %d attempts. Your best: %d attempts", w.Attempts, *w.PreviousBest)
	}
	return fmt.Sprintf("You won in %d attempts", w.Attempts)
}
