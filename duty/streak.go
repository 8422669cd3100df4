package duty

import "cloud.google.com/go/civil"

// ConsecutiveDays counts the unbroken run of days ending on target that each
// hold at least one qualifying activity. A day with only Other activities
// breaks the run.
func ConsecutiveDays(records []Activity, target civil.Date) int {
	if !target.IsValid() {
		return 0
	}
	active := make(map[civil.Date]bool)
	for _, a := range records {
		if a.Kind.Qualifying() {
			active[a.Date] = true
		}
	}

	count := 0
	for current := target; active[current]; current = current.AddDays(-1) {
		count++
	}
	return count
}
