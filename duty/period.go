package duty

import (
	"math"

	"cloud.google.com/go/civil"
)

// DutySpanHours is the elapsed time from the earliest start to the latest
// end on date, gaps included, rounded to two decimals.
func DutySpanHours(records []Activity, date civil.Date) float64 {
	if !date.IsValid() {
		return 0
	}
	first, last, ok := bounds(records, date)
	if !ok {
		return 0
	}
	span := first.HoursUntil(last)
	return math.Max(0, math.Round(span*100)/100)
}

// RestHours is the time between the last activity end on the day before
// target and the first activity start on target, rounded to whole hours. It
// is zero when either day has no activity.
func RestHours(records []Activity, target civil.Date) float64 {
	if !target.IsValid() {
		return 0
	}
	prev := target.AddDays(-1)
	_, lastEnd, okPrev := bounds(records, prev)
	firstStart, _, okTarget := bounds(records, target)
	if !okPrev || !okTarget {
		return 0
	}
	rest := 24 + lastEnd.HoursUntil(firstStart)
	return math.Max(0, math.Round(rest))
}

// bounds returns the earliest start and latest end of the records on date.
func bounds(records []Activity, date civil.Date) (first, last Clock, ok bool) {
	for _, a := range records {
		if a.Date != date {
			continue
		}
		if !ok || a.Start < first {
			first = a.Start
		}
		if !ok || a.End > last {
			last = a.End
		}
		ok = true
	}
	return first, last, ok
}
