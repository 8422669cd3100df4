package main

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

type Logbook struct {
	ID         int64
	Name       string
	Active     bool
	Activities int
}

// Window is the span of days the list command shows around the target date.
type Window string

const (
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
	WindowAll   Window = "all"
)

var Windows = []string{string(WindowDay), string(WindowWeek), string(WindowMonth), string(WindowYear), string(WindowAll)}

// Range returns the inclusive date range of w containing target. Weeks
// start on Monday. ok is false for WindowAll.
func (w Window) Range(target civil.Date) (from, to civil.Date, ok bool, err error) {
	switch w {
	case WindowDay:
		return target, target, true, nil
	case WindowWeek:
		weekday := int(target.In(time.UTC).Weekday())
		// shift so Monday is 0
		offset := (weekday + 6) % 7
		from = target.AddDays(-offset)
		return from, from.AddDays(6), true, nil
	case WindowMonth:
		from = civil.Date{Year: target.Year, Month: target.Month, Day: 1}
		next := civil.DateOf(from.In(time.UTC).AddDate(0, 1, 0))
		return from, next.AddDays(-1), true, nil
	case WindowYear:
		from = civil.Date{Year: target.Year, Month: time.January, Day: 1}
		to = civil.Date{Year: target.Year, Month: time.December, Day: 31}
		return from, to, true, nil
	case WindowAll:
		return civil.Date{}, civil.Date{}, false, nil
	}
	return civil.Date{}, civil.Date{}, false, fmt.Errorf("invalid display mode: %s", w)
}
