package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/numberguess/internal/dependencies/mocks"
	"github.com/mcoot/numberguess/internal/services/auth"
	"github.com/mcoot/numberguess/internal/storage/memory"
	"github.com/mcoot/numberguess/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	store := memory.New(memory.WithClock(mockClock))
	mockRandom := mocks.NewMockRandom()

	authCfg := auth.DefaultConfig()
	authCfg.BcryptCost = bcrypt.MinCost

	app := newWithDependencies(store, mockClock, mockRandom, authCfg, 0, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// QueueTarget makes the next started game use target
func (t *TestApp) QueueTarget(target int) {
	t.MockRandom.QueueBetween(target)
}
