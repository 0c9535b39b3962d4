package model

// Session is the explicit per-user context threaded through game operations.
// It replaces any process-wide "current user" or "current game" state.
type Session struct {
	CurrentUser *Identity
	Settings    Settings
	Game        *Game
}

// NewSession creates a signed-out session with the given settings
func NewSession(settings Settings) *Session {
	return &Session{Settings: settings}
}

// SignIn sets the current user
func (s *Session) SignIn(id Identity) {
	s.CurrentUser = &id
}

// SignOut clears the current user and discards any game
func (s *Session) SignOut() {
	s.CurrentUser = nil
	s.Game = nil
}

// IsSignedIn reports whether a user is attached to the session
func (s *Session) IsSignedIn() bool {
	return s.CurrentUser != nil
}
