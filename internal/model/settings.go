package model

// MinRangeSpan is the smallest allowed difference between max and min
const MinRangeSpan = 5

// Settings holds the guess range used for new games
type Settings struct {
	MinRange int
	MaxRange int
}

// DefaultSettings returns the 1-100 range
func DefaultSettings() Settings {
	return Settings{MinRange: 1, MaxRange: 100}
}

// ValidateSettings checks that a range is ordered and wide enough
func ValidateSettings(minRange, maxRange int) error {
	if minRange >= maxRange {
		return ErrInvalidOrder
	}
	// Unsigned difference so ranges spanning most of int do not wrap
	if uint(maxRange)-uint(minRange) < MinRangeSpan {
		return ErrRangeTooSmall
	}
	return nil
}

// Validate checks the settings with ValidateSettings
func (s Settings) Validate() error {
	return ValidateSettings(s.MinRange, s.MaxRange)
}

// Contains reports whether value lies within the inclusive range
func (s Settings) Contains(value int) bool {
	return value >= s.MinRange && value <= s.MaxRange
}
