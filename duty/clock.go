package duty

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of a calendar day as seen by a Clock.
const MinutesPerDay = 24 * 60

// Clock is a wall-clock time of day with minute precision, stored as minutes
// after midnight. It carries no date and no time zone.
type Clock int

var (
	errClockFormat = errors.New("time of day must be HH:MM")
	errClockRange  = errors.New("time of day is past the end of the day")
)

// NewClock returns the Clock for hour:minute.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses "HH:MM" or "H:MM" (24-hour).
func ParseClock(s string) (Clock, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(m) != 2 || h == "" || len(h) > 2 || !digits(h) || !digits(m) {
		return 0, fmt.Errorf("%q: %w", s, errClockFormat)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 {
		return 0, fmt.Errorf("%q: %w", s, errClockFormat)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%q: %w", s, errClockFormat)
	}
	if hour > 23 {
		return 0, fmt.Errorf("%q: %w", s, errClockRange)
	}
	return NewClock(hour, minute), nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

// IsValid reports whether c falls within a single day.
func (c Clock) IsValid() bool {
	return c >= 0 && c < MinutesPerDay
}

// HoursUntil returns the number of hours from c to o. It is negative when o
// is earlier than c.
func (c Clock) HoursUntil(o Clock) float64 {
	return float64(o-c) / 60
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("invalid time of day %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	v, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
