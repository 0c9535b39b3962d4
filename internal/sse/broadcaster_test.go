package sse

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/numberguess/internal/model"
	"github.com/mcoot/numberguess/internal/testutil"
)

type fakeRanker struct {
	entries []model.LeaderboardEntry
	err     error
}

func (f *fakeRanker) Top(_ context.Context, _ int) ([]model.LeaderboardEntry, error) {
	return f.entries, f.err
}

func TestBroadcasterSendsLeaderboard(t *testing.T) {
	hub := startHub(t)
	ranker := &fakeRanker{entries: []model.LeaderboardEntry{
		{Rank: 1, Username: "bob", BestScore: 1},
		{Rank: 2, Username: "alice", BestScore: 3},
	}}
	broadcaster := NewBroadcaster(hub, ranker, testutil.NopLogger())

	client := NewClient("viewer")
	require.True(t, hub.Register(client))

	broadcaster.BestScoreImproved(context.Background(), "bob", 1)

	select {
	case msg := <-client.send:
		text := string(msg)
		require.True(t, strings.HasPrefix(text, "event: leaderboard-update\ndata: "))
		payload := strings.TrimSuffix(strings.TrimPrefix(text, "event: leaderboard-update\ndata: "), "\n\n")

		var update LeaderboardUpdate
		require.NoError(t, json.Unmarshal([]byte(payload), &update))
		assert.Equal(t, "bob", update.Username)
		assert.Equal(t, 1, update.Attempts)
		assert.Equal(t, []EntryEvent{
			{Rank: 1, Username: "bob", BestScore: 1},
			{Rank: 2, Username: "alice", BestScore: 3},
		}, update.Entries)
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
	}
}

func TestBroadcasterSkipsOnRankerError(t *testing.T) {
	hub := startHub(t)
	broadcaster := NewBroadcaster(hub, &fakeRanker{err: errors.New("boom")}, testutil.NopLogger())

	client := NewClient("viewer")
	require.True(t, hub.Register(client))

	broadcaster.BestScoreImproved(context.Background(), "bob", 1)

	select {
	case msg := <-client.send:
		t.Fatalf("unexpected message %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestServeSSEStreamsSnapshotAndUpdates(t *testing.T) {
	hub := startHub(t)
	broadcaster := NewBroadcaster(hub, &fakeRanker{entries: []model.LeaderboardEntry{
		{Rank: 1, Username: "bob", BestScore: 2},
	}}, testutil.NopLogger())

	snapshot, err := broadcaster.Snapshot(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		ServeSSE(rec, req, hub, "viewer", snapshot)
		close(done)
	}()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.BroadcastEvent("leaderboard-update", `{"username":"bob"}`)
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "event: connected\n")
	assert.Contains(t, body, `"username":"bob","best_score":2`)
	assert.Contains(t, body, "data: {\"username\":\"bob\"}\n\n")
}
