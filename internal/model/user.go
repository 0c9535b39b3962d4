package model

import "time"

// UserID uniquely identifies a stored user; assigned by the store
type UserID int64

// Username constraints applied at registration
const (
	MinUsernameLength = 3
	MinPasswordLength = 4
	// bcrypt ignores input past 72 bytes, so longer passwords are rejected
	MaxPasswordLength = 72
)

// User is a registered account together with its best score
type User struct {
	ID           UserID
	Username     string // unique, case-sensitive
	PasswordHash string // bcrypt hash
	BestScore    *int   // fewest attempts to win; nil until the first win
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the public identity of the user
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username}
}

// Identity is the part of a user that is safe to hold in a session
type Identity struct {
	ID       UserID
	Username string
}
