// Package timespec parses the duration grammar used on the command line:
// a non-negative decimal number with an optional unit suffix, where 's'
// means seconds (the default), 'm' minutes, 'h' hours and 'd' days.
package timespec

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Parse converts a duration expression into a time.Duration. Fractional
// values are accepted ("1.5h" is 5400 seconds). A value of exactly zero is
// valid and means "no limit" to callers. Negative, empty, malformed or
// overflowing input is rejected.
func Parse(text string) (time.Duration, error) {
	if text == "" {
		return 0, fmt.Errorf("empty duration")
	}

	number := text
	unit := time.Second
	switch text[len(text)-1] {
	case 's':
		number = text[:len(text)-1]
	case 'm':
		number = text[:len(text)-1]
		unit = time.Minute
	case 'h':
		number = text[:len(text)-1]
		unit = time.Hour
	case 'd':
		number = text[:len(text)-1]
		unit = 24 * time.Hour
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", text)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid duration %q", text)
	}
	if value < 0 {
		return 0, fmt.Errorf("duration %q must not be negative", text)
	}
	if value > float64(math.MaxInt64)/float64(unit) {
		return 0, fmt.Errorf("duration %q is too large", text)
	}

	return time.Duration(value * float64(unit)), nil
}
