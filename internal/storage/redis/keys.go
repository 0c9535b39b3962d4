package redis

import "fmt"

// Key prefix for all number game data
const keyPrefix = "ngame"

// userKey returns the Redis key for a user record
func userKey(username string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, username)
}

// userSeqKey returns the Redis key of the user ID counter.
// It lives outside the user: namespace so no username can address it.
func userSeqKey() string {
	return fmt.Sprintf("%s:seq:user", keyPrefix)
}

// leaderboardKey returns the Redis key of the best score sorted set.
// Members are usernames, scores are attempts.
func leaderboardKey() string {
	return fmt.Sprintf("%s:leaderboard", keyPrefix)
}
