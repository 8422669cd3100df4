package duty

// Rule is the regulation a metric is measured against.
type Rule struct {
	Metric   Metric
	Citation string
	Text     string
}

var rules = map[Metric]Rule{
	MetricFlightHours: {
		Metric:   MetricFlightHours,
		Citation: "14 CFR § 61.195(j)",
		Text:     "A flight instructor may not conduct more than 8 hours of flight training in any 24-consecutive-hour period.",
	},
	MetricContactHours: {
		Metric:   MetricContactHours,
		Citation: "SP&P 2.10.7(B)",
		Text:     "No more than 10 contact hours in any 24 consecutive hour period.",
	},
	MetricConsecutiveDays: {
		Metric:   MetricConsecutiveDays,
		Citation: "SP&P 2.10.8",
		Text:     "No flight instructor or crew member shall work more than 15 consecutive days without at least one day free of employment activities.",
	},
	MetricDutySpan: {
		Metric:   MetricDutySpan,
		Citation: "SP&P 2.10.6",
		Text:     "Each duty period must not exceed 16 hours and must be preceded by 10 hours of uninterrupted rest that should include 6 to 8 hours of sleep.",
	},
	MetricTrailing7Day: {
		Metric:   MetricTrailing7Day,
		Citation: "SP&P 2.10.7(C)",
		Text:     "No more than 50 contact hours in any 7 consecutive day period. A day is the hours between 00:00:00 and 23:59:59 local time.",
	},
	MetricRest: {
		Metric:   MetricRest,
		Citation: "SP&P 2.10.6",
		Text:     "A duty period must be preceded by 10 hours of uninterrupted rest.",
	},
}

// RuleFor returns the regulation behind metric.
func RuleFor(m Metric) (Rule, bool) {
	r, ok := rules[m]
	return r, ok
}
