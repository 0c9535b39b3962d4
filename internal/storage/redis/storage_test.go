package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/numberguess/internal/dependencies/mocks"
	"github.com/mcoot/numberguess/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) createUser(username string) *model.User {
	user := &model.User{
		Username:     username,
		PasswordHash: "hash-" + username,
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	s.Require().NoError(s.storage.CreateUser(s.ctx, user))
	return user
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	user := s.createUser("alice")
	s.NotZero(user.ID)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.ID, retrieved.ID)
	s.Equal("alice", retrieved.Username)
	s.Equal("hash-alice", retrieved.PasswordHash)
	s.True(user.CreatedAt.Equal(retrieved.CreatedAt))
	s.Nil(retrieved.BestScore)
}

func (s *StorageSuite) TestCreateUserStoresRecordUnderPrefix() {
	s.createUser("alice")
	s.True(s.mini.Exists("ngame:user:alice"))
}

func (s *StorageSuite) TestUsernameMatchingCounterName() {
	alice := s.createUser("alice")
	seq := s.createUser("seq")
	s.NotEqual(alice.ID, seq.ID)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "seq")
	s.Require().NoError(err)
	s.Equal(seq.ID, retrieved.ID)
	s.Equal("hash-seq", retrieved.PasswordHash)

	_, err = s.storage.RecordBestScore(s.ctx, "seq", 4)
	s.Require().NoError(err)

	third := s.createUser("bob")
	s.Greater(third.ID, seq.ID)
}

func (s *StorageSuite) TestCreateDuplicateUser() {
	s.createUser("alice")

	err := s.storage.CreateUser(s.ctx, &model.User{Username: "alice", PasswordHash: "other"})
	s.ErrorIs(err, model.ErrDuplicateUsername)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("hash-alice", retrieved.PasswordHash)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Best score tests

func (s *StorageSuite) TestRecordBestScoreFirstWin() {
	s.createUser("alice")

	outcome, err := s.storage.RecordBestScore(s.ctx, "alice", 7)
	s.Require().NoError(err)
	s.True(outcome.IsNewBest)
	s.Nil(outcome.PreviousBest)

	user, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Require().NotNil(user.BestScore)
	s.Equal(7, *user.BestScore)
}

func (s *StorageSuite) TestRecordBestScoreOnlyImproves() {
	s.createUser("alice")
	_, err := s.storage.RecordBestScore(s.ctx, "alice", 7)
	s.Require().NoError(err)

	outcome, err := s.storage.RecordBestScore(s.ctx, "alice", 12)
	s.Require().NoError(err)
	s.False(outcome.IsNewBest)
	s.Equal(7, *outcome.PreviousBest)

	outcome, err = s.storage.RecordBestScore(s.ctx, "alice", 3)
	s.Require().NoError(err)
	s.True(outcome.IsNewBest)
	s.Equal(7, *outcome.PreviousBest)

	score, err := s.mini.ZScore("ngame:leaderboard", "alice")
	s.Require().NoError(err)
	s.Equal(float64(3), score)
}

func (s *StorageSuite) TestRecordBestScoreStampsUpdatedAt() {
	later := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	clk := mocks.NewMockClock(later)
	s.storage = NewWithClient(s.storage.client, DefaultConfig(), WithClock(clk))
	created := s.createUser("alice")

	_, err := s.storage.RecordBestScore(s.ctx, "alice", 5)
	s.Require().NoError(err)

	user, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.True(later.Equal(user.UpdatedAt))
	s.True(created.CreatedAt.Equal(user.CreatedAt))
	s.Equal("hash-alice", user.PasswordHash)
	s.Equal(5, *user.BestScore)

	// A worse score leaves the timestamp alone
	clk.Advance(time.Hour)
	_, err = s.storage.RecordBestScore(s.ctx, "alice", 8)
	s.Require().NoError(err)

	user, err = s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.True(later.Equal(user.UpdatedAt))
}

func (s *StorageSuite) TestRecordBestScoreUnknownUser() {
	_, err := s.storage.RecordBestScore(s.ctx, "nobody", 3)
	s.ErrorIs(err, model.ErrUserNotFound)
	s.False(s.mini.Exists("ngame:leaderboard"))
}

// Leaderboard tests

func (s *StorageSuite) TestTopScores() {
	s.createUser("a")
	s.createUser("b")
	s.createUser("c")
	_, _ = s.storage.RecordBestScore(s.ctx, "a", 3)
	_, _ = s.storage.RecordBestScore(s.ctx, "b", 1)

	entries, err := s.storage.TopScores(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal([]model.LeaderboardEntry{
		{Username: "b", BestScore: 1},
		{Username: "a", BestScore: 3},
	}, entries)
}

func (s *StorageSuite) TestTopScoresLimitAndTies() {
	for _, name := range []string{"zed", "amy", "kim", "bob"} {
		s.createUser(name)
	}
	_, _ = s.storage.RecordBestScore(s.ctx, "zed", 2)
	_, _ = s.storage.RecordBestScore(s.ctx, "amy", 2)
	_, _ = s.storage.RecordBestScore(s.ctx, "kim", 1)
	_, _ = s.storage.RecordBestScore(s.ctx, "bob", 9)

	entries, err := s.storage.TopScores(s.ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("kim", entries[0].Username)
	s.Equal("amy", entries[1].Username)
	s.Equal("zed", entries[2].Username)
}

func (s *StorageSuite) TestTopScoresEmpty() {
	entries, err := s.storage.TopScores(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(entries)
}

// Failure tests

func (s *StorageSuite) TestPing() {
	s.NoError(s.storage.Ping(s.ctx))
}

func (s *StorageSuite) TestUnavailableAfterServerStops() {
	s.createUser("alice")
	s.mini.Close()

	_, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrStoreUnavailable)
	s.NotErrorIs(err, model.ErrUserNotFound)

	_, err = s.storage.RecordBestScore(s.ctx, "alice", 1)
	s.ErrorIs(err, model.ErrStoreUnavailable)

	s.ErrorIs(s.storage.Ping(s.ctx), model.ErrStoreUnavailable)
}
