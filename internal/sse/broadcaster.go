package sse

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mcoot/numberguess/internal/model"
)

// LeaderboardEvent is the name of the event sent when the top list changes
const LeaderboardEvent = "leaderboard-update"

// Ranker supplies the current leaderboard
type Ranker interface {
	Top(ctx context.Context, n int) ([]model.LeaderboardEntry, error)
}

// LeaderboardUpdate is the JSON payload of a leaderboard-update event
type LeaderboardUpdate struct {
	Username string       `json:"username"`
	Attempts int          `json:"attempts"`
	Entries  []EntryEvent `json:"entries"`
}

// EntryEvent is one leaderboard row inside an update
type EntryEvent struct {
	Rank      int    `json:"rank"`
	Username  string `json:"username"`
	BestScore int    `json:"best_score"`
}

// Broadcaster pushes the fresh leaderboard to the hub whenever a best
// score improves
type Broadcaster struct {
	hub    *Hub
	ranker Ranker
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, ranker Ranker, logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Broadcaster{
		hub:    hub,
		ranker: ranker,
		logger: logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// BestScoreImproved broadcasts the leaderboard after a new best score
func (b *Broadcaster) BestScoreImproved(ctx context.Context, username string, attempts int) {
	entries, err := b.ranker.Top(ctx, 0)
	if err != nil {
		b.logger.Error("sse failed to load leaderboard",
			slog.String("username", username),
			slog.Any("error", err))
		return
	}

	data, err := json.Marshal(NewLeaderboardUpdate(username, attempts, entries))
	if err != nil {
		b.logger.Error("sse failed to encode leaderboard", slog.Any("error", err))
		return
	}
	b.hub.BroadcastEvent(LeaderboardEvent, string(data))
}

// Snapshot renders the current leaderboard as an event for a new client
func (b *Broadcaster) Snapshot(ctx context.Context) ([]byte, error) {
	entries, err := b.ranker.Top(ctx, 0)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(NewLeaderboardUpdate("", 0, entries))
	if err != nil {
		return nil, err
	}
	return formatSSEMessage(LeaderboardEvent, string(data)), nil
}

// NewLeaderboardUpdate builds the event payload
func NewLeaderboardUpdate(username string, attempts int, entries []model.LeaderboardEntry) LeaderboardUpdate {
	update := LeaderboardUpdate{
		Username: username,
		Attempts: attempts,
		Entries:  make([]EntryEvent, len(entries)),
	}
	for i, e := range entries {
		update.Entries[i] = EntryEvent{Rank: e.Rank, Username: e.Username, BestScore: e.BestScore}
	}
	return update
}
