package leaderboard

import (
	"context"

	"github.com/mcoot/numberguess/internal/model"
	"github.com/mcoot/numberguess/internal/storage"
)

// Service ranks users by best score
type Service struct {
	storage     storage.Storage
	defaultSize int
}

// New creates a leaderboard Service. A non-positive defaultSize falls back
// to model.DefaultLeaderboardSize.
func New(storage storage.Storage, defaultSize int) *Service {
	if defaultSize <= 0 {
		defaultSize = model.DefaultLeaderboardSize
	}
	return &Service{storage: storage, defaultSize: defaultSize}
}

// DefaultSize is the number of entries Top returns for n == 0
func (s *Service) DefaultSize() int {
	return s.defaultSize
}

// Top returns up to n users with a best score, fewest attempts first, with
// 1-based ranks. n == 0 uses the default size.
func (s *Service) Top(ctx context.Context, n int) ([]model.LeaderboardEntry, error) {
	if n < 0 {
		return nil, model.ErrInvalidLimit
	}
	if n == 0 {
		n = s.defaultSize
	}

	entries, err := s.storage.TopScores(ctx, n)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
