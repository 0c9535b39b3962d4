package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mcoot/numberguess/internal/dependencies/clock"
	"github.com/mcoot/numberguess/internal/model"
	"github.com/mcoot/numberguess/internal/storage"
	"github.com/mcoot/numberguess/internal/storage/sqlite/migrations"
)

// Store is a SQLite-backed implementation of the storage interface
type Store struct {
	sqlDB *sql.DB
	clock clock.Clock
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the time source used to stamp score updates
func WithClock(clk clock.Clock) Option {
	return func(s *Store) {
		s.clock = clk
	}
}

// Ensure Store implements the interface
var _ storage.Storage = (*Store)(nil)

// Open opens the SQLite database at path and applies the embedded migrations
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	// Immediate transactions take the write lock up front, so the
	// read-then-update in RecordBestScore cannot deadlock on upgrade
	dsn := filepath.Clean(path) +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, storage.Unavailable(fmt.Errorf("ping sqlite db: %w", err))
	}

	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	store := &Store{sqlDB: sqlDB, clock: clock.New()}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// Close releases the underlying database
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return storage.Unavailable(s.sqlDB.PingContext(ctx))
}

// User operations

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, best_score, created_at, updated_at)
		 VALUES (?, ?, NULL, ?, ?)`,
		user.Username, user.PasswordHash, toMillis(user.CreatedAt), toMillis(user.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateUsername
		}
		return storage.Unavailable(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return storage.Unavailable(err)
	}
	user.ID = model.UserID(id)
	return nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, username, password_hash, best_score, created_at, updated_at
		 FROM users WHERE username = ?`,
		username,
	)

	var (
		user      model.User
		best      sql.NullInt64
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &best, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, storage.Unavailable(err)
	}

	user.BestScore = nullableScore(best)
	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updatedAt)
	return &user, nil
}

// Score operations

func (s *Store) RecordBestScore(ctx context.Context, username string, attempts int) (model.WinOutcome, error) {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return model.WinOutcome{}, storage.Unavailable(err)
	}
	defer func() { _ = tx.Rollback() }()

	var previous sql.NullInt64
	err = tx.QueryRowContext(ctx, `SELECT best_score FROM users WHERE username = ?`, username).Scan(&previous)
	if errors.Is(err, sql.ErrNoRows) {
		return model.WinOutcome{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.WinOutcome{}, storage.Unavailable(err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE users SET best_score = ?, updated_at = ?
		 WHERE username = ? AND (best_score IS NULL OR best_score > ?)`,
		attempts, toMillis(s.clock.Now()), username, attempts,
	)
	if err != nil {
		return model.WinOutcome{}, storage.Unavailable(err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return model.WinOutcome{}, storage.Unavailable(err)
	}

	if err := tx.Commit(); err != nil {
		return model.WinOutcome{}, storage.Unavailable(err)
	}

	return model.WinOutcome{
		Attempts:     attempts,
		IsNewBest:    changed > 0,
		PreviousBest: nullableScore(previous),
	}, nil
}

func (s *Store) TopScores(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		return []model.LeaderboardEntry{}, nil
	}

	// Ties fall back to registration order
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT username, best_score FROM users
		 WHERE best_score IS NOT NULL
		 ORDER BY best_score ASC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, storage.Unavailable(err)
	}
	defer rows.Close()

	entries := make([]model.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var entry model.LeaderboardEntry
		if err := rows.Scan(&entry.Username, &entry.BestScore); err != nil {
			return nil, storage.Unavailable(err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable(err)
	}
	return entries, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	// NOT NULL and CHECK failures are not duplicates
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func nullableScore(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	score := int(v.Int64)
	return &score
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
