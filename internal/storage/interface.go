package storage

import (
	"context"
	"fmt"

	"github.com/mcoot/numberguess/internal/model"
)

// Storage defines the persistence backend for user accounts and scores.
// Backend failures are reported as model.ErrStoreUnavailable, never as
// model.ErrUserNotFound.
type Storage interface {
	// CreateUser inserts a user and assigns its ID.
	// Returns model.ErrDuplicateUsername if the username is taken.
	CreateUser(ctx context.Context, user *model.User) error

	// GetUserByUsername looks up a user by exact username.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// RecordBestScore stores attempts as the user's best score if there is no
	// best score yet or attempts is strictly lower. The read and the
	// conditional write happen as one atomic step.
	RecordBestScore(ctx context.Context, username string, attempts int) (model.WinOutcome, error)

	// TopScores returns users with a best score ordered ascending, at most limit.
	// Rank is left unset.
	TopScores(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)

	// Ping checks that the backend is reachable
	Ping(ctx context.Context) error

	// Close releases backend resources
	Close() error
}

// Unavailable wraps a backend failure so it matches model.ErrStoreUnavailable
// as well as the original cause.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", model.ErrStoreUnavailable, err)
}

// IsBetter reports whether attempts improves on the current best
func IsBetter(current *int, attempts int) bool {
	return current == nil || attempts < *current
}
