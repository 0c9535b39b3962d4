package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/numberguess/internal/model"
	"github.com/mcoot/numberguess/internal/storage/memory"
	"github.com/mcoot/numberguess/internal/testutil"
)

type recordingListener struct {
	calls []int
}

func (l *recordingListener) BestScoreImproved(_ context.Context, _ string, attempts int) {
	l.calls = append(l.calls, attempts)
}

type ServiceSuite struct {
	suite.Suite
	storage  *memory.Storage
	listener *recordingListener
	service  *Service
	logs     *testutil.LogBuffer
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.listener = &recordingListener{}
	logger, logs := testutil.CaptureLogger()
	s.logs = logs
	s.service = New(s.storage, logger, s.listener)
	s.ctx = context.Background()

	s.Require().NoError(s.storage.CreateUser(s.ctx, &model.User{Username: "alice", PasswordHash: "x"}))
}

func (s *ServiceSuite) TestBestScoreNoneBeforeFirstWin() {
	best, err := s.service.BestScore(s.ctx, "alice")
	s.Require().NoError(err)
	s.Nil(best)
}

func (s *ServiceSuite) TestBestScoreUnknownUser() {
	_, err := s.service.BestScore(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestFirstWinIsNewBest() {
	outcome, err := s.service.RecordWin(s.ctx, "alice", 3)
	s.Require().NoError(err)
	s.True(outcome.IsNewBest)
	s.Nil(outcome.PreviousBest)
	s.Equal(3, outcome.Attempts)

	best, err := s.service.BestScore(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(3, *best)
}

func (s *ServiceSuite) TestWorseWinKeepsBest() {
	_, _ = s.service.RecordWin(s.ctx, "alice", 4)

	outcome, err := s.service.RecordWin(s.ctx, "alice", 9)
	s.Require().NoError(err)
	s.False(outcome.IsNewBest)
	s.Equal(4, *outcome.PreviousBest)

	best, _ := s.service.BestScore(s.ctx, "alice")
	s.Equal(4, *best)
}

func (s *ServiceSuite) TestBestScoreIsMinimumSeen() {
	for _, attempts := range []int{9, 12, 7, 7, 8, 2, 5} {
		_, err := s.service.RecordWin(s.ctx, "alice", attempts)
		s.Require().NoError(err)
	}

	best, err := s.service.BestScore(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(2, *best)
}

func (s *ServiceSuite) TestListenerOnlyHearsImprovements() {
	for _, attempts := range []int{9, 12, 7, 7, 2} {
		_, _ = s.service.RecordWin(s.ctx, "alice", attempts)
	}
	s.Equal([]int{9, 7, 2}, s.listener.calls)
}

func (s *ServiceSuite) TestRecordWinRejectsNonPositiveAttempts() {
	_, err := s.service.RecordWin(s.ctx, "alice", 0)
	s.ErrorIs(err, model.ErrInvalidAttempts)
	s.ErrorIs(err, model.ErrValidation)

	best, _ := s.service.BestScore(s.ctx, "alice")
	s.Nil(best)
}

func (s *ServiceSuite) TestNewBestIsLogged() {
	_, err := s.service.RecordWin(s.ctx, "alice", 6)
	s.Require().NoError(err)
	_, err = s.service.RecordWin(s.ctx, "alice", 8)
	s.Require().NoError(err)

	var bests []float64
	for _, e := range s.logs.Entries() {
		if e["msg"] == "new best score" {
			s.Equal("alice", e["username"])
			bests = append(bests, e["attempts"].(float64))
		}
	}
	s.Equal([]float64{6}, bests)
}
