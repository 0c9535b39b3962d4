package response

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/numberguess/internal/model"
)

func TestJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusCreated, Settings{MinRange: 1, MaxRange: 10})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"min_range":1,"max_range":10}`, rr.Body.String())
}

func TestJSONUnencodable(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusOK, map[string]float64{"x": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestGameHidesTargetUntilWon(t *testing.T) {
	g, err := model.NewGame("G1", model.Settings{MinRange: 1, MaxRange: 10}, 4, time.Time{})
	require.NoError(t, err)

	assert.Nil(t, GameFromModel(g).Target)

	_, err = g.Guess(4)
	require.NoError(t, err)

	resp := GameFromModel(g)
	require.NotNil(t, resp.Target)
	assert.Equal(t, 4, *resp.Target)
	assert.Equal(t, "won", resp.State)
}

func TestLeaderboardMarksViewer(t *testing.T) {
	entries := []model.LeaderboardEntry{
		{Rank: 1, Username: "bob", BestScore: 1},
		{Rank: 2, Username: "amy", BestScore: 3},
	}

	resp := LeaderboardFromModel(entries, "amy")
	assert.False(t, resp.Entries[0].IsYou)
	assert.True(t, resp.Entries[1].IsYou)

	resp = LeaderboardFromModel(nil, "")
	assert.NotNil(t, resp.Entries)
	assert.Empty(t, resp.Entries)
}
