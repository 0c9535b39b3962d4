package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/numberguess/internal/dependencies/clock"
	"github.com/mcoot/numberguess/internal/model"
	"github.com/mcoot/numberguess/internal/storage"
)

// Session is an authenticated bearer token and the game context it owns
type Session struct {
	Token     string
	Player    model.Identity
	CreatedAt time.Time
	ExpiresAt time.Time

	mu    sync.Mutex
	state *model.Session
}

// WithState runs fn with exclusive access to the session's game context
func (s *Session) WithState(fn func(state *model.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// Service handles registration, authentication and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
	defaultSettings model.Settings
	bcryptCost      int
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
	// DefaultSettings is the range new sessions start with
	DefaultSettings model.Settings
	// BcryptCost defaults to bcrypt.DefaultCost
	BcryptCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
		DefaultSettings: model.DefaultSettings(),
		BcryptCost:      bcrypt.DefaultCost,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	defaults := DefaultConfig()
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = defaults.SessionDuration
	}
	if cfg.DefaultSettings == (model.Settings{}) {
		cfg.DefaultSettings = defaults.DefaultSettings
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = defaults.BcryptCost
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		logger:          logger,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
		defaultSettings: cfg.DefaultSettings,
		bcryptCost:      cfg.BcryptCost,
	}
}

// RegisterUser validates the credentials and stores a new user.
// The store's uniqueness constraint decides duplicates.
func (s *Service) RegisterUser(ctx context.Context, username, password, confirm string) (model.Identity, error) {
	username = strings.TrimSpace(username)
	if err := validateRegistration(username, password, confirm); err != nil {
		return model.Identity{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return model.Identity{}, err
	}

	now := s.clock.Now()
	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return model.Identity{}, err
	}

	s.logger.Info("user registered", "username", user.Username, "user_id", user.ID)
	return user.Identity(), nil
}

// Register creates an account and signs it in
func (s *Service) Register(ctx context.Context, username, password, confirm string) (*Session, error) {
	identity, err := s.RegisterUser(ctx, username, password, confirm)
	if err != nil {
		return nil, err
	}
	return s.createSession(identity), nil
}

// Authenticate checks a username and password. Unknown users and wrong
// passwords both fail with model.ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (model.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.Identity{}, model.ErrMissingCredentials
	}

	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.Identity{}, model.ErrInvalidCredentials
		}
		return model.Identity{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.Identity{}, model.ErrInvalidCredentials
	}
	return user.Identity(), nil
}

// Login authenticates a user and creates a session
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	identity, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.createSession(identity), nil
}

// Logout signs the session out and drops the token along with any game
func (s *Service) Logout(token string) {
	s.mu.Lock()
	session, ok := s.sessions[token]
	delete(s.sessions, token)
	s.mu.Unlock()

	if ok {
		_ = session.WithState(func(state *model.Session) error {
			state.SignOut()
			return nil
		})
	}
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, model.ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, model.ErrInvalidSession
	}

	return session, nil
}

// CleanExpiredSessions removes expired sessions and returns how many went
func (s *Service) CleanExpiredSessions() int {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

func (s *Service) createSession(identity model.Identity) *Session {
	now := s.clock.Now()

	state := model.NewSession(s.defaultSettings)
	state.SignIn(identity)

	session := &Session{
		Token:     generateToken(),
		Player:    identity,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
		state:     state,
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

func validateRegistration(username, password, confirm string) error {
	switch {
	case username == "" || password == "":
		return model.ErrMissingCredentials
	case utf8.RuneCountInString(username) < model.MinUsernameLength:
		return model.ErrUsernameTooShort
	case utf8.RuneCountInString(password) < model.MinPasswordLength:
		return model.ErrPasswordTooShort
	case len(password) > model.MaxPasswordLength:
		return model.ErrPasswordTooLong
	case password != confirm:
		return model.ErrPasswordMismatch
	}
	return nil
}

// generateToken returns an opaque session token
func generateToken() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
