package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		expected error
	}{
		{"default range", 1, 100, nil},
		{"exact minimum span", 10, 15, nil},
		{"negative range", -20, -10, nil},
		{"span too small", 10, 12, ErrRangeTooSmall},
		{"span of four", 10, 14, ErrRangeTooSmall},
		{"reversed", 50, 10, ErrInvalidOrder},
		{"equal", 7, 7, ErrInvalidOrder},
		{"up to max int", 0, math.MaxInt, nil},
		{"negative to max int", -1, math.MaxInt, nil},
		{"full int range", math.MinInt, math.MaxInt, nil},
		{"min int to zero", math.MinInt, 0, nil},
		{"narrow at max int", math.MaxInt - 4, math.MaxInt, ErrRangeTooSmall},
		{"narrow at min int", math.MinInt, math.MinInt + 4, ErrRangeTooSmall},
		{"min span at max int", math.MaxInt - 5, math.MaxInt, nil},
		{"reversed extremes", math.MaxInt, math.MinInt, ErrInvalidOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSettings(tt.min, tt.max)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestSettingsContains(t *testing.T) {
	s := Settings{MinRange: 1, MaxRange: 10}

	assert.True(t, s.Contains(1))
	assert.True(t, s.Contains(10))
	assert.True(t, s.Contains(5))
	assert.False(t, s.Contains(0))
	assert.False(t, s.Contains(11))
}

func TestDefaultSettingsAreValid(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())
}
