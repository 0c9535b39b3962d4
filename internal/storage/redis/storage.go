package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/numberguess/internal/dependencies/clock"
	"github.com/mcoot/numberguess/internal/model"
	"github.com/mcoot/numberguess/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
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

// userRecord is the JSON form of a user. The best score lives in the
// leaderboard sorted set instead.
type userRecord struct {
	ID           model.UserID `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"password_hash"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// New creates a new Redis storage instance
func New(cfg Config, opts ...Option) (*Storage, error) {
	redisOpts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	redisOpts.PoolSize = cfg.PoolSize
	redisOpts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(redisOpts)

	// Verify connection
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, storage.Unavailable(err)
	}

	return NewWithClient(client, cfg, opts...), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, opts ...Option) *Storage {
	s := &Storage{
		client: client,
		cfg:    cfg,
		clock:  clock.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Ping(ctx context.Context) error {
	return storage.Unavailable(s.client.Ping(ctx).Err())
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	id, err := s.client.Incr(ctx, userSeqKey()).Result()
	if err != nil {
		return storage.Unavailable(err)
	}

	record := userRecord{
		ID:           model.UserID(id),
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	// SETNX makes the uniqueness check and the insert one step
	created, err := s.client.SetNX(ctx, userKey(user.Username), data, 0).Result()
	if err != nil {
		return storage.Unavailable(err)
	}
	if !created {
		return model.ErrDuplicateUsername
	}

	user.ID = record.ID
	return nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var getCmd *redis.StringCmd
	var scoreCmd *redis.FloatCmd
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		getCmd = pipe.Get(ctx, userKey(username))
		scoreCmd = pipe.ZScore(ctx, leaderboardKey(), username)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, storage.Unavailable(err)
	}

	data, err := getCmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, storage.Unavailable(err)
	}

	var record userRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding user %q: %w", username, err)
	}

	user := &model.User{
		ID:           record.ID,
		Username:     record.Username,
		PasswordHash: record.PasswordHash,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
	best, err := scoreResult(scoreCmd)
	if err != nil {
		return nil, err
	}
	user.BestScore = best
	return user, nil
}

// Score operations

func (s *Storage) RecordBestScore(ctx context.Context, username string, attempts int) (model.WinOutcome, error) {
	exists, err := s.client.Exists(ctx, userKey(username)).Result()
	if err != nil {
		return model.WinOutcome{}, storage.Unavailable(err)
	}
	if exists == 0 {
		return model.WinOutcome{}, model.ErrUserNotFound
	}

	// ZSCORE and ZADD LT run in one MULTI block so the previous best
	// reported is the one the conditional write compared against
	var prevCmd *redis.FloatCmd
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		prevCmd = pipe.ZScore(ctx, leaderboardKey(), username)
		pipe.ZAddArgs(ctx, leaderboardKey(), redis.ZAddArgs{
			LT: true,
			Members: []redis.Z{
				{Score: float64(attempts), Member: username},
			},
		})
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return model.WinOutcome{}, storage.Unavailable(err)
	}

	previous, err := scoreResult(prevCmd)
	if err != nil {
		return model.WinOutcome{}, err
	}
	improved := storage.IsBetter(previous, attempts)
	if improved {
		if err := s.touchUser(ctx, username); err != nil {
			return model.WinOutcome{}, err
		}
	}
	return model.WinOutcome{
		Attempts:     attempts,
		IsNewBest:    improved,
		PreviousBest: previous,
	}, nil
}

// touchUser rewrites the user record with a fresh UpdatedAt.
// WATCH drops this write if another rewrite lands first.
func (s *Storage) touchUser(ctx context.Context, username string) error {
	key := userKey(username)
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			return err
		}
		var record userRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("decoding user %q: %w", username, err)
		}
		record.UpdatedAt = s.clock.Now()
		updated, err := json.Marshal(record)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		// Another win stamped the record first
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return model.ErrUserNotFound
	}
	return storage.Unavailable(err)
}

func (s *Storage) TopScores(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		return []model.LeaderboardEntry{}, nil
	}

	// Equal scores come back in username byte order
	members, err := s.client.ZRangeWithScores(ctx, leaderboardKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, storage.Unavailable(err)
	}

	entries := make([]model.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		username, ok := m.Member.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected leaderboard member %v", m.Member)
		}
		entries = append(entries, model.LeaderboardEntry{
			Username:  username,
			BestScore: int(m.Score),
		})
	}
	return entries, nil
}

// scoreResult converts a ZSCORE reply into an optional best score
func scoreResult(cmd *redis.FloatCmd) (*int, error) {
	score, err := cmd.Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, storage.Unavailable(err)
	}
	best := int(score)
	return &best, nil
}
