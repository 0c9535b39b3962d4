package random

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBetweenStaysInRange(t *testing.T) {
	r := New()
	ranges := [][2]int{{1, 100}, {0, 5}, {-10, -5}, {995, 1000}}

	for _, rg := range ranges {
		seen := make(map[int]bool)
		for range 2000 {
			v := r.Between(rg[0], rg[1])
			assert.GreaterOrEqual(t, v, rg[0])
			assert.LessOrEqual(t, v, rg[1])
			seen[v] = true
		}
		// Narrow ranges should see both endpoints over this many draws
		if rg[1]-rg[0] <= 5 {
			assert.True(t, seen[rg[0]], "low endpoint never drawn for %v", rg)
			assert.True(t, seen[rg[1]], "high endpoint never drawn for %v", rg)
		}
	}
}

func TestBetweenExtremeRanges(t *testing.T) {
	r := New()
	ranges := [][2]int{
		{0, math.MaxInt},
		{-1, math.MaxInt},
		{math.MinInt, math.MaxInt},
		{math.MinInt, 0},
		{math.MaxInt - 5, math.MaxInt},
		{math.MinInt, math.MinInt + 5},
	}

	for _, rg := range ranges {
		for range 500 {
			v := r.Between(rg[0], rg[1])
			assert.GreaterOrEqual(t, v, rg[0])
			assert.LessOrEqual(t, v, rg[1])
		}
	}
}

func TestBetweenDegenerateRange(t *testing.T) {
	r := New()
	assert.Equal(t, 7, r.Between(7, 7))
	assert.Equal(t, 7, r.Between(7, 3))
}

func TestString(t *testing.T) {
	r := New()
	s := r.String(12, "ABC")
	assert.Len(t, s, 12)
	for _, c := range s {
		assert.Contains(t, "ABC", string(c))
	}
	assert.Empty(t, r.String(0, "ABC"))
	assert.Empty(t, r.String(5, ""))
}
