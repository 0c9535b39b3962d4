package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/numberguess/internal/dependencies/clock"
	"github.com/mcoot/numberguess/internal/model"
	"github.com/mcoot/numberguess/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users  map[string]*model.User
	nextID model.UserID
	clock  clock.Clock
}

// Option configures a Storage
type Option func(*Storage)

// WithClock sets the time source used to stamp score updates
func WithClock(clk clock.Clock) Option {
	return func(s *Storage) {
		s.clock = clk
	}
}

// New creates a new in-memory storage instance
func New(opts ...Option) *Storage {
	s := &Storage{
		users: make(map[string]*model.User),
		clock: clock.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return model.ErrDuplicateUsername
	}

	s.nextID++
	user.ID = s.nextID
	s.users[user.Username] = copyUser(user)
	return nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return copyUser(user), nil
}

func (s *Storage) RecordBestScore(ctx context.Context, username string, attempts int) (model.WinOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return model.WinOutcome{}, model.ErrUserNotFound
	}

	outcome := model.WinOutcome{
		Attempts:     attempts,
		PreviousBest: copyScore(user.BestScore),
	}
	if storage.IsBetter(user.BestScore, attempts) {
		user.BestScore = copyScore(&attempts)
		user.UpdatedAt = s.clock.Now()
		outcome.IsNewBest = true
	}
	return outcome, nil
}

func (s *Storage) TopScores(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	s.mu.RLock()
	scored := make([]*model.User, 0, len(s.users))
	for _, user := range s.users {
		if user.BestScore != nil {
			scored = append(scored, user)
		}
	}
	// Ties fall back to registration order
	sort.Slice(scored, func(i, j int) bool {
		if *scored[i].BestScore != *scored[j].BestScore {
			return *scored[i].BestScore < *scored[j].BestScore
		}
		return scored[i].ID < scored[j].ID
	})

	if limit < 0 {
		limit = 0
	}
	if limit < len(scored) {
		scored = scored[:limit]
	}
	entries := make([]model.LeaderboardEntry, len(scored))
	for i, user := range scored {
		entries[i] = model.LeaderboardEntry{
			Username:  user.Username,
			BestScore: *user.BestScore,
		}
	}
	s.mu.RUnlock()
	return entries, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

func (s *Storage) Close() error {
	return nil
}

func copyUser(u *model.User) *model.User {
	c := *u
	c.BestScore = copyScore(u.BestScore)
	return &c
}

func copyScore(score *int) *int {
	if score == nil {
		return nil
	}
	v := *score
	return &v
}
