package duty

import (
	"errors"
	"fmt"
)

// Rejection reasons. A rejected mutation leaves the collection unchanged.
var (
	ErrMissingField     = errors.New("required field missing")
	ErrMidnightCrossing = errors.New("activity extends past midnight")
	ErrTimeConflict     = errors.New("activity overlaps an existing activity")
	ErrInvalidTimeOrder = errors.New("end time must be after start time")

	ErrIndexOutOfRange = errors.New("activity index out of range")
)

// RejectionError describes why a candidate or an edit was not accepted.
type RejectionError struct {
	Reason error

	// Field names the offending input, if there is one.
	Field string

	// Conflict is the existing activity a TimeConflict collided with.
	Conflict *Activity
}

func (e *RejectionError) Error() string {
	switch {
	case errors.Is(e.Reason, ErrMissingField):
		return fmt.Sprintf("please fill out all fields: %s is missing or invalid", e.Field)
	case errors.Is(e.Reason, ErrMidnightCrossing):
		return "duration extends past midnight, please enter a shorter duration"
	case errors.Is(e.Reason, ErrTimeConflict):
		if e.Conflict != nil {
			return fmt.Sprintf("time conflict detected: the selected timeframe overlaps with %s %s-%s",
				e.Conflict.Kind, e.Conflict.Start, e.Conflict.End)
		}
		return "time conflict detected: the selected timeframe overlaps with an existing activity"
	case errors.Is(e.Reason, ErrInvalidTimeOrder):
		return "end time must be after start time"
	}
	return e.Reason.Error()
}

func (e *RejectionError) Unwrap() error { return e.Reason }

func reject(reason error, field string) error {
	return &RejectionError{Reason: reason, Field: field}
}
