package game

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mcoot/numberguess/internal/dependencies/clock"
	"github.com/mcoot/numberguess/internal/dependencies/random"
	"github.com/mcoot/numberguess/internal/model"
	"github.com/mcoot/numberguess/internal/services/scoring"
)

const gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GuessResult is the evaluation of one guess and, on a win, the score outcome
type GuessResult struct {
	Outcome  model.GuessOutcome
	Attempts int
	State    model.GameState
	Settings model.Settings
	Win      *model.WinOutcome
}

// Controller drives the guessing game state machine for a session.
// Callers must hold exclusive access to the session they pass in.
type Controller struct {
	scoringService *scoring.Service
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	scoringService *scoring.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		scoringService: scoringService,
		clock:          clock,
		random:         random,
		logger:         logger,
	}
}

// UpdateSettings validates and stores the range used by the next game.
// A game already in progress keeps its own range.
func (c *Controller) UpdateSettings(state *model.Session, minRange, maxRange int) error {
	if err := model.ValidateSettings(minRange, maxRange); err != nil {
		return err
	}
	state.Settings = model.Settings{MinRange: minRange, MaxRange: maxRange}
	return nil
}

// Start begins a new game with a random target in the session's range.
// Any previous game, won or not, is replaced.
func (c *Controller) Start(state *model.Session) (*model.Game, error) {
	if !state.IsSignedIn() {
		return nil, model.ErrNotSignedIn
	}
	if err := state.Settings.Validate(); err != nil {
		return nil, err
	}

	target := c.random.Between(state.Settings.MinRange, state.Settings.MaxRange)
	id := model.GameID(c.random.String(12, gameIDAlphabet))

	game, err := model.NewGame(id, state.Settings, target, c.clock.Now())
	if err != nil {
		return nil, err
	}
	state.Game = game

	c.logger.Info("game started",
		slog.String("game_id", string(game.ID)),
		slog.String("username", state.CurrentUser.Username),
		slog.Int("min_range", game.Settings.MinRange),
		slog.Int("max_range", game.Settings.MaxRange),
	)
	return game, nil
}

// Current returns the session's game, won or in progress
func (c *Controller) Current(state *model.Session) (*model.Game, error) {
	if state.Game == nil {
		return nil, model.ErrNoGameInProgress
	}
	return state.Game, nil
}

// Guess evaluates value against the target. A correct guess records the
// win for the signed-in user; if that fails the game stays won and the
// store error is returned.
func (c *Controller) Guess(ctx context.Context, state *model.Session, value int) (*GuessResult, error) {
	game := state.Game
	if game == nil {
		return nil, model.ErrNoGameInProgress
	}

	outcome, err := game.Guess(value)
	if err != nil {
		return nil, err
	}
	game.UpdatedAt = c.clock.Now()

	result := &GuessResult{
		Outcome:  outcome,
		Attempts: game.Attempts,
		State:    game.State,
		Settings: game.Settings,
	}
	if outcome != model.GuessCorrect {
		return result, nil
	}

	c.logger.Info("game won",
		slog.String("game_id", string(game.ID)),
		slog.String("username", state.CurrentUser.Username),
		slog.Int("attempts", game.Attempts),
	)

	win, err := c.scoringService.RecordWin(ctx, state.CurrentUser.Username, game.Attempts)
	if err != nil {
		return nil, err
	}
	result.Win = &win
	return result, nil
}

// GuessInput parses raw user input and evaluates it. Input that is not a
// whole number fails with model.ErrInvalidGuess and costs no attempt.
func (c *Controller) GuessInput(ctx context.Context, state *model.Session, raw string) (*GuessResult, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, model.ErrInvalidGuess
	}
	return c.Guess(ctx, state, value)
}

// Abandon discards the game in progress
func (c *Controller) Abandon(state *model.Session) error {
	if state.Game == nil || state.Game.State != model.GameStateInProgress {
		return model.ErrNoGameInProgress
	}
	c.logger.Info("game abandoned",
		slog.String("game_id", string(state.Game.ID)),
		slog.Int("attempts", state.Game.Attempts),
	)
	state.Game = nil
	return nil
}
