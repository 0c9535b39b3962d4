package mocks

import (
	"sync"

	"github.com/mcoot/numberguess/internal/dependencies/random"
)

// MockRandom replays queued values. Queued targets are returned as-is even
// when they fall outside the requested range, so tests can drive the game's
// own range checks. With nothing queued, Between returns lo and String
// returns a counter-based ID.
type MockRandom struct {
	mu      sync.Mutex
	targets []int
	strings []string
	issued  int
}

var _ random.Random = (*MockRandom)(nil)

func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

func (r *MockRandom) Between(lo, hi int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.targets) == 0 {
		return lo
	}
	v := r.targets[0]
	r.targets = r.targets[1:]
	return v
}

func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.strings) > 0 {
		s := r.strings[0]
		r.strings = r.strings[1:]
		return s
	}
	r.issued++
	return fallbackID(r.issued, length, alphabet)
}

// QueueBetween queues values for Between, consumed in order
func (r *MockRandom) QueueBetween(values ...int) {
	r.mu.Lock()
	r.targets = append(r.targets, values...)
	r.mu.Unlock()
}

// QueueString queues values for String, consumed in order
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	r.strings = append(r.strings, values...)
	r.mu.Unlock()
}

// Pending reports how many queued targets are left
func (r *MockRandom) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.targets)
}

// fallbackID encodes n in the given alphabet, left-padded to length
func fallbackID(n, length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	b := make([]byte, length)
	base := len(alphabet)
	for i := length - 1; i >= 0; i-- {
		b[i] = alphabet[n%base]
		n /= base
	}
	return string(b)
}
