// Package duty evaluates a logbook of instructor activities against duty and
// rest limits. Every function works on a snapshot and keeps no state.
package duty

import (
	"fmt"
	"math"
	"slices"

	"cloud.google.com/go/civil"
)

// Activity is one logged interval of duty. Start and End fall on Date;
// an activity never spans midnight.
type Activity struct {
	ID            string     `json:"id"`
	Date          civil.Date `json:"date"`
	Start         Clock      `json:"start"`
	End           Clock      `json:"end"`
	DurationHours float64    `json:"duration_hours"`
	Kind          Kind       `json:"kind"`
	PrePostHours  float64    `json:"pre_post_hours"`
}

// Hours returns the length of the activity derived from Start and End.
func (a Activity) Hours() float64 {
	return a.Start.HoursUntil(a.End)
}

// ContactHours is the activity time plus any pre/post time.
func (a Activity) ContactHours() float64 {
	return a.Hours() + a.PrePostHours
}

// Overlaps reports whether the half-open intervals [Start, End) of a and b
// intersect on the same date.
func (a Activity) Overlaps(b Activity) bool {
	if a.Date != b.Date {
		return false
	}
	return a.Start < b.End && b.Start < a.End
}

// normalize restores the derived fields after a change.
func (a *Activity) normalize() {
	if !a.Kind.AllowsPrePost() || a.PrePostHours < 0 || math.IsNaN(a.PrePostHours) {
		a.PrePostHours = 0
	}
	a.DurationHours = a.Hours()
}

// Check verifies the record-level invariants.
func (a Activity) Check() error {
	if !a.Date.IsValid() {
		return fmt.Errorf("activity %s: invalid date %s", a.ID, a.Date)
	}
	if !a.Kind.IsValid() {
		return fmt.Errorf("activity %s: invalid kind", a.ID)
	}
	if !a.Start.IsValid() || !a.End.IsValid() || a.End <= a.Start {
		return fmt.Errorf("activity %s: %s-%s: %w", a.ID, a.Start, a.End, ErrInvalidTimeOrder)
	}
	if a.PrePostHours < 0 || (a.PrePostHours != 0 && !a.Kind.AllowsPrePost()) {
		return fmt.Errorf("activity %s: pre/post time not allowed for %s", a.ID, a.Kind)
	}
	if a.DurationHours != a.Hours() {
		return fmt.Errorf("activity %s: duration %v does not match %s-%s", a.ID, a.DurationHours, a.Start, a.End)
	}
	return nil
}

// CheckCollection verifies every record and that no two records on the
// same date overlap.
func CheckCollection(records []Activity) error {
	byDate := make(map[civil.Date][]Activity)
	for _, a := range records {
		if err := a.Check(); err != nil {
			return err
		}
		for _, b := range byDate[a.Date] {
			if a.Overlaps(b) {
				return fmt.Errorf("%s %s-%s and %s-%s: %w", a.Date, a.Start, a.End, b.Start, b.End, ErrTimeConflict)
			}
		}
		byDate[a.Date] = append(byDate[a.Date], a)
	}
	return nil
}

// Sort orders records newest first: by date descending, then start descending.
func Sort(records []Activity) {
	slices.SortStableFunc(records, func(a, b Activity) int {
		switch {
		case a.Date.After(b.Date):
			return -1
		case a.Date.Before(b.Date):
			return 1
		}
		return int(b.Start) - int(a.Start)
	})
}
