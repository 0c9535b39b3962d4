package random

import (
	"math"
	"math/rand/v2"
)

// Random draws game targets and IDs; tests swap in a scripted source
type Random interface {
	// Between returns a uniformly distributed int in [lo, hi]
	Between(lo, hi int) int

	// String returns length characters drawn from alphabet
	String(length int, alphabet string) string
}

// System draws from the runtime's ChaCha8-seeded generator.
// Targets and game IDs are not secrets; session tokens use crypto/rand.
type System struct{}

// New creates a System source
func New() *System {
	return &System{}
}

// Between returns lo when the range is empty
func (System) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	// Wrapping arithmetic keeps the result in range even when hi-lo overflows int
	span := uint64(hi) - uint64(lo)
	if span == math.MaxUint64 {
		return lo + int(rand.Uint64())
	}
	return lo + int(rand.Uint64N(span+1))
}

func (System) String(length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
