package scoring

import (
	"context"
	"log/slog"

	"github.com/mcoot/numberguess/internal/model"
	"github.com/mcoot/numberguess/internal/storage"
)

// Listener is told about every stored improvement to a best score
type Listener interface {
	BestScoreImproved(ctx context.Context, username string, attempts int)
}

// Service keeps per-user best scores
type Service struct {
	storage   storage.Storage
	logger    *slog.Logger
	listeners []Listener
}

// New creates a new scoring Service
func New(storage storage.Storage, logger *slog.Logger, listeners ...Listener) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		storage:   storage,
		logger:    logger,
		listeners: listeners,
	}
}

// BestScore returns the user's fewest attempts to win, or nil if they never won
func (s *Service) BestScore(ctx context.Context, username string) (*int, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.BestScore, nil
}

// RecordWin stores attempts as the new best score when it beats the old one.
// The comparison and write are a single atomic store operation.
func (s *Service) RecordWin(ctx context.Context, username string, attempts int) (model.WinOutcome, error) {
	if attempts <= 0 {
		return model.WinOutcome{}, model.ErrInvalidAttempts
	}

	outcome, err := s.storage.RecordBestScore(ctx, username, attempts)
	if err != nil {
		return model.WinOutcome{}, err
	}

	if outcome.IsNewBest {
		s.logger.Info("new best score",
			slog.String("username", username),
			slog.Int("attempts", attempts),
		)
		for _, l := range s.listeners {
			l.BestScoreImproved(ctx, username, attempts)
		}
	}
	return outcome, nil
}
