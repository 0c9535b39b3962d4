package model

import "time"

// GameID identifies a single game
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStateNotStarted GameState = "not_started"
	GameStateInProgress GameState = "in_progress"
	GameStateWon        GameState = "won"
)

// GuessOutcome is the evaluation of a single guess
type GuessOutcome string

const (
	GuessTooLow     GuessOutcome = "too_low"
	GuessTooHigh    GuessOutcome = "too_high"
	GuessCorrect    GuessOutcome = "correct"
	GuessOutOfRange GuessOutcome = "out_of_range" // costs no attempt
)

// Game is a transient guessing session; it is never persisted
type Game struct {
	ID       GameID
	State    GameState
	Settings Settings
	Target   int
	Attempts int

	StartedAt time.Time
	UpdatedAt time.Time
}

// NewGame creates an in-progress game for the given range and target
func NewGame(id GameID, settings Settings, target int, now time.Time) (*Game, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if !settings.Contains(target) {
		return nil, ErrTargetOutOfRange
	}
	return &Game{
		ID:        id,
		State:     GameStateInProgress,
		Settings:  settings,
		Target:    target,
		StartedAt: now,
		UpdatedAt: now,
	}, nil
}

// Guess evaluates value against the target.
// Out-of-range values return GuessOutOfRange and leave the game untouched.
func (g *Game) Guess(value int) (GuessOutcome, error) {
	switch g.State {
	case GameStateInProgress:
	case GameStateWon:
		return "", ErrGameOver
	default:
		return "", ErrNoGameInProgress
	}

	if !g.Settings.Contains(value) {
		return GuessOutOfRange, nil
	}

	g.Attempts++
	switch {
	case value < g.Target:
		return GuessTooLow, nil
	case value > g.Target:
		return GuessTooHigh, nil
	default:
		g.State = GameStateWon
		return GuessCorrect, nil
	}
}

// IsWon returns true once the target has been guessed
func (g *Game) IsWon() bool {
	return g.State == GameStateWon
}
