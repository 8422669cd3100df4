package duty

import "cloud.google.com/go/civil"

// KindFilter selects the activity kinds an aggregate counts.
type KindFilter func(Kind) bool

// OnlyKind counts activities of kind k.
func OnlyKind(k Kind) KindFilter {
	return func(o Kind) bool { return o == k }
}

// Qualifying counts every kind except Other.
func Qualifying(k Kind) bool { return k.Qualifying() }

// SumSingleDay sums the hours of the records on date that pass filter. With
// includePrePost set, each record's pre/post time is added as well.
func SumSingleDay(records []Activity, date civil.Date, filter KindFilter, includePrePost bool) float64 {
	var total float64
	for _, a := range records {
		if a.Date != date || !filter(a.Kind) {
			continue
		}
		total += a.Hours()
		if includePrePost {
			total += a.PrePostHours
		}
	}
	return total
}

// SumRange sums per-day hours of records passing filter over the inclusive
// range [from, to]. Only days with at least one qualifying record
// contribute.
func SumRange(records []Activity, from, to civil.Date, filter KindFilter) float64 {
	daily := make(map[civil.Date]float64)
	for _, a := range records {
		if a.Date.Before(from) || a.Date.After(to) || !filter(a.Kind) {
			continue
		}
		daily[a.Date] += a.Hours()
	}
	var total float64
	for _, h := range daily {
		total += h
	}
	return total
}

// FlightHours is the flight instruction logged on date.
func FlightHours(records []Activity, date civil.Date) float64 {
	return SumSingleDay(records, date, OnlyKind(KindFlight), false)
}

// ContactHours is all non-Other time on date including pre/post time.
func ContactHours(records []Activity, date civil.Date) float64 {
	return SumSingleDay(records, date, Qualifying, true)
}

// Trailing7DayHours sums qualifying hours over the seven days ending on
// target, inclusive.
func Trailing7DayHours(records []Activity, target civil.Date) float64 {
	if !target.IsValid() {
		return 0
	}
	return SumRange(records, target.AddDays(-6), target, Qualifying)
}
