// Package schedule implements the scheduling core: wall-clock arithmetic,
// per-day agendas, conflict detection, free-slot search and time aggregation.
// All functions are pure; persistence and delivery live elsewhere.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the number of minutes in a wall-clock day.
const MinutesPerDay = 24 * 60

// ParseClock parses an "HH:MM" 24-hour wall-clock string into minutes after
// midnight. Malformed input is an explicit error rather than a silent
// nonsense value.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock value %q: want HH:MM", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q: %w", s, err)
	}

	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}

	return h*60 + m, nil
}

// FormatClock renders minutes after midnight as "HH:MM". Hours wrap modulo
// 24; overflow into a following day is not signaled.
func FormatClock(totalMinutes int) string {
	h := (totalMinutes / 60) % 24
	m := totalMinutes % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Duration returns end minus start in minutes. The result may be negative
// when end precedes start; rejecting that is a caller policy decision.
func Duration(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, fmt.Errorf("parsing start: %w", err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, fmt.Errorf("parsing end: %w", err)
	}
	return e - s, nil
}
