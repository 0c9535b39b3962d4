package model

// DefaultLeaderboardSize is the number of entries returned by default
const DefaultLeaderboardSize = 10

// LeaderboardEntry is one ranked row of the leaderboard
type LeaderboardEntry struct {
	Rank      int // 1-based position; ties still get distinct ranks
	Username  string
	BestScore int
}

// WinOutcome reports the effect of recording a win
type WinOutcome struct {
	Attempts     int
	IsNewBest    bool
	PreviousBest *int // best score before this win, nil if there was none
}
