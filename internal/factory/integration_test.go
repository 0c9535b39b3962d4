package factory

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/numberguess/internal/model"
	"github.com/mcoot/numberguess/internal/services/auth"
	"github.com/mcoot/numberguess/internal/services/game"
	"github.com/mcoot/numberguess/internal/sse"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	_ = s.app.Close()
}

func (s *IntegrationSuite) register(username string) *auth.Session {
	session, err := s.app.AuthService.Register(s.ctx, username, "secret", "secret")
	s.Require().NoError(err)
	return session
}

// play starts a game with the given target and submits guesses in order
func (s *IntegrationSuite) play(session *auth.Session, target int, guesses ...int) *game.GuessResult {
	var last *game.GuessResult
	err := session.WithState(func(state *model.Session) error {
		s.app.QueueTarget(target)
		if _, err := s.app.GameController.Start(state); err != nil {
			return err
		}
		for _, g := range guesses {
			result, err := s.app.GameController.Guess(s.ctx, state, g)
			if err != nil {
				return err
			}
			last = result
		}
		return nil
	})
	s.Require().NoError(err)
	return last
}

// Test: register, log in, play to a win and see the leaderboard
func (s *IntegrationSuite) TestCompleteGameFlow() {
	s.register("alice")
	s.app.AuthService.Logout(s.register("bob").Token)

	session, err := s.app.AuthService.Login(s.ctx, "alice", "secret")
	s.Require().NoError(err)

	result := s.play(session, 42, 50, 25, 42)
	s.Equal(model.GuessCorrect, result.Outcome)
	s.Equal(3, result.Attempts)
	s.Require().NotNil(result.Win)
	s.True(result.Win.IsNewBest)

	best, err := s.app.ScoringService.BestScore(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(3, *best)

	entries, err := s.app.LeaderboardService.Top(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal([]model.LeaderboardEntry{{Rank: 1, Username: "alice", BestScore: 3}}, entries)
}

// Test: the leaderboard only holds users who have won, ordered by best score
func (s *IntegrationSuite) TestLeaderboardAcrossPlayers() {
	a := s.register("amy")
	b := s.register("bob")
	s.register("cat")

	s.play(a, 10, 50, 25, 10)
	s.play(b, 10, 10)

	entries, err := s.app.LeaderboardService.Top(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal([]model.LeaderboardEntry{
		{Rank: 1, Username: "bob", BestScore: 1},
		{Rank: 2, Username: "amy", BestScore: 3},
	}, entries)
}

// Test: a new best stamps the account with the app clock
func (s *IntegrationSuite) TestNewBestStampsUpdatedAt() {
	session := s.register("alice")
	registered := s.app.MockClock.Now()

	s.app.MockClock.Advance(time.Hour)
	s.play(session, 30, 30)

	user, err := s.app.Storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(registered, user.CreatedAt)
	s.Equal(registered.Add(time.Hour), user.UpdatedAt)
}

// Test: playing again with more attempts keeps the old best
func (s *IntegrationSuite) TestPlayAgainKeepsBest() {
	session := s.register("alice")

	s.play(session, 30, 30)
	result := s.play(session, 60, 10, 20, 60)

	s.Require().NotNil(result.Win)
	s.False(result.Win.IsNewBest)
	s.Equal(1, *result.Win.PreviousBest)

	best, _ := s.app.ScoringService.BestScore(s.ctx, "alice")
	s.Equal(1, *best)
}

// Test: settings changes apply to the next game only
func (s *IntegrationSuite) TestSettingsApplyToNextGame() {
	session := s.register("alice")

	err := session.WithState(func(state *model.Session) error {
		if err := s.app.GameController.UpdateSettings(state, 10, 20); err != nil {
			return err
		}
		s.app.QueueTarget(15)
		g, err := s.app.GameController.Start(state)
		if err != nil {
			return err
		}
		s.Equal(model.Settings{MinRange: 10, MaxRange: 20}, g.Settings)

		result, err := s.app.GameController.Guess(s.ctx, state, 5)
		s.Equal(model.GuessOutOfRange, result.Outcome)
		return err
	})
	s.Require().NoError(err)
}

// Test: a new best score is pushed to event stream clients
func (s *IntegrationSuite) TestNewBestIsBroadcast() {
	srv := httptest.NewServer(s.app.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/leaderboard/events")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal("text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 64)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	// connected event, then the initial snapshot
	s.Require().True(waitForLine(lines, "event: connected"))
	s.Require().True(waitForLine(lines, "event: "+sse.LeaderboardEvent))
	s.Require().Eventually(func() bool { return s.app.Hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	session := s.register("alice")
	s.play(session, 42, 42)

	s.Require().True(waitForLine(lines, "event: "+sse.LeaderboardEvent))
	s.True(waitForLine(lines, `"username":"alice","attempts":1`))
}

func waitForLine(lines <-chan string, substr string) bool {
	timeout := time.After(2 * time.Second)
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return false
			}
			if strings.Contains(line, substr) {
				return true
			}
		case <-timeout:
			return false
		}
	}
}

// Test: logging out drops the game
func (s *IntegrationSuite) TestLogoutDropsGame() {
	session := s.register("alice")
	_ = session.WithState(func(state *model.Session) error {
		s.app.QueueTarget(42)
		_, err := s.app.GameController.Start(state)
		return err
	})

	s.app.AuthService.Logout(session.Token)

	_, err := s.app.AuthService.ValidateSession(session.Token)
	s.ErrorIs(err, model.ErrInvalidSession)
	err = session.WithState(func(state *model.Session) error {
		_, err := s.app.GameController.Current(state)
		return err
	})
	s.ErrorIs(err, model.ErrNoGameInProgress)
}
