package duty

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
)

const msPerMinute = 60 * 1000

// Candidate is a not-yet-validated activity as entered by the user. All
// fields are raw input strings; PrePost may be empty.
type Candidate struct {
	Date     string
	Start    string
	Duration string
	Kind     string
	PrePost  string
}

// ValidateAndAttachEnd checks c against existing and, when accepted, returns
// the activity with End computed from Start and Duration. The returned
// activity has no ID. Rejections are returned as *RejectionError.
func ValidateAndAttachEnd(c Candidate, existing []Activity) (Activity, error) {
	if strings.TrimSpace(c.Date) == "" {
		return Activity{}, reject(ErrMissingField, "date")
	}
	date, err := civil.ParseDate(strings.TrimSpace(c.Date))
	if err != nil || !date.IsValid() {
		return Activity{}, reject(ErrMissingField, "date")
	}
	if strings.TrimSpace(c.Start) == "" {
		return Activity{}, reject(ErrMissingField, "start")
	}
	start, err := ParseClock(c.Start)
	if err != nil {
		return Activity{}, reject(ErrMissingField, "start")
	}
	duration, ok := parseHours(c.Duration)
	if !ok || duration <= 0 {
		return Activity{}, reject(ErrMissingField, "duration")
	}
	if strings.TrimSpace(c.Kind) == "" {
		return Activity{}, reject(ErrMissingField, "kind")
	}
	kind, err := ParseKind(c.Kind)
	if err != nil {
		return Activity{}, reject(ErrMissingField, "kind")
	}

	if duration >= 24 {
		return Activity{}, reject(ErrMidnightCrossing, "duration")
	}
	startMs := int64(start) * msPerMinute
	endMs := startMs + int64(math.Round(duration*3600*1000))
	if endMs >= MinutesPerDay*msPerMinute {
		return Activity{}, reject(ErrMidnightCrossing, "duration")
	}

	for i := range existing {
		e := existing[i]
		if e.Date != date {
			continue
		}
		eStart, eEnd := int64(e.Start)*msPerMinute, int64(e.End)*msPerMinute
		if !(endMs <= eStart || startMs >= eEnd) {
			return Activity{}, &RejectionError{Reason: ErrTimeConflict, Field: "start", Conflict: &e}
		}
	}

	a := Activity{
		Date:  date,
		Start: start,
		End:   Clock(endMs / msPerMinute),
		Kind:  kind,
	}
	if a.End <= a.Start {
		return Activity{}, reject(ErrInvalidTimeOrder, "duration")
	}
	if kind.AllowsPrePost() {
		a.PrePostHours = parsePrePost(c.PrePost)
	}
	a.normalize()
	return a, nil
}

// Add validates c against existing and returns a new collection with the
// accepted activity inserted under id, sorted newest first.
func Add(existing []Activity, c Candidate, id string) ([]Activity, Activity, error) {
	a, err := ValidateAndAttachEnd(c, existing)
	if err != nil {
		return nil, Activity{}, err
	}
	a.ID = id
	next := make([]Activity, 0, len(existing)+1)
	next = append(next, existing...)
	next = append(next, a)
	Sort(next)
	return next, a, nil
}

// Field is an editable column of an activity.
type Field int

const (
	FieldStart Field = iota + 1
	FieldEnd
	FieldKind
	FieldPrePost
)

// ParseField maps a column name to a Field.
func ParseField(s string) (Field, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return FieldStart, true
	case "end":
		return FieldEnd, true
	case "kind", "activity":
		return FieldKind, true
	case "prepost", "pre-post", "pre_post":
		return FieldPrePost, true
	}
	return 0, false
}

func (f Field) String() string {
	switch f {
	case FieldStart:
		return "start"
	case FieldEnd:
		return "end"
	case FieldKind:
		return "kind"
	case FieldPrePost:
		return "prepost"
	}
	return "unknown"
}

// Edit sets one field of the activity at index and returns the new
// collection. Start and end edits are rejected when they would reverse the
// interval or overlap another activity on the same date. The collection
// order is kept so indices stay stable.
func Edit(existing []Activity, index int, field Field, value string) ([]Activity, error) {
	if index < 0 || index >= len(existing) {
		return nil, ErrIndexOutOfRange
	}
	a := existing[index]

	switch field {
	case FieldStart, FieldEnd:
		c, err := ParseClock(value)
		if err != nil {
			if errors.Is(err, errClockRange) {
				return nil, reject(ErrMidnightCrossing, field.String())
			}
			return nil, reject(ErrMissingField, field.String())
		}
		if field == FieldStart {
			a.Start = c
		} else {
			a.End = c
		}
		if a.End <= a.Start {
			return nil, reject(ErrInvalidTimeOrder, field.String())
		}
		for i := range existing {
			if i == index {
				continue
			}
			if e := existing[i]; a.Overlaps(e) {
				return nil, &RejectionError{Reason: ErrTimeConflict, Field: field.String(), Conflict: &e}
			}
		}
	case FieldKind:
		k, err := ParseKind(value)
		if err != nil {
			return nil, reject(ErrMissingField, field.String())
		}
		a.Kind = k
	case FieldPrePost:
		a.PrePostHours = parsePrePost(value)
	default:
		return nil, reject(ErrMissingField, "field")
	}

	a.normalize()
	next := slices.Clone(existing)
	next[index] = a
	return next, nil
}

// Delete returns a new collection without the activity at index.
func Delete(existing []Activity, index int) ([]Activity, error) {
	if index < 0 || index >= len(existing) {
		return nil, ErrIndexOutOfRange
	}
	next := make([]Activity, 0, len(existing)-1)
	next = append(next, existing[:index]...)
	return append(next, existing[index+1:]...), nil
}

func parseHours(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parsePrePost treats empty, invalid or negative input as zero.
func parsePrePost(s string) float64 {
	v, ok := parseHours(strings.Replace(s, ",", ".", 1))
	if !ok || v < 0 {
		return 0
	}
	return v
}
