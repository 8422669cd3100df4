package duty

import "fmt"

// Metric identifies one of the computed duty limits.
type Metric int

const (
	MetricFlightHours Metric = iota + 1
	MetricContactHours
	MetricConsecutiveDays
	MetricDutySpan
	MetricTrailing7Day
	MetricRest
)

// Metrics in report order.
var AllMetrics = []Metric{
	MetricFlightHours,
	MetricContactHours,
	MetricConsecutiveDays,
	MetricDutySpan,
	MetricTrailing7Day,
	MetricRest,
}

func (m Metric) String() string {
	switch m {
	case MetricFlightHours:
		return "Flight Instruction"
	case MetricContactHours:
		return "Contact Time"
	case MetricConsecutiveDays:
		return "Consecutive Days"
	case MetricDutySpan:
		return "Duty Period"
	case MetricTrailing7Day:
		return "Past 7 Days"
	case MetricRest:
		return "Rest Period"
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// Severity grades a metric value against its limit.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityCaution
	SeverityViolation
)

func (s Severity) String() string {
	switch s {
	case SeverityNormal:
		return "normal"
	case SeverityCaution:
		return "caution"
	case SeverityViolation:
		return "violation"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Classify grades value for metric. Hour metrics are in hours, the
// consecutive-day metric is a day count. Rest has no violation tier: a
// positive rest under ten hours is a caution, and zero means no rest
// boundary was defined.
func Classify(metric Metric, value float64) Severity {
	switch metric {
	case MetricFlightHours:
		switch {
		case value > 8:
			return SeverityViolation
		case value > 6:
			return SeverityCaution
		}
	case MetricContactHours:
		switch {
		case value >= 10:
			return SeverityViolation
		case value > 8:
			return SeverityCaution
		}
	case MetricConsecutiveDays:
		switch {
		case value > 15:
			return SeverityViolation
		case value == 15:
			return SeverityCaution
		}
	case MetricDutySpan:
		switch {
		case value > 16:
			return SeverityViolation
		case value > 14:
			return SeverityCaution
		}
	case MetricTrailing7Day:
		switch {
		case value > 50:
			return SeverityViolation
		case value >= 48:
			return SeverityCaution
		}
	case MetricRest:
		if value > 0 && value < 10 {
			return SeverityCaution
		}
	}
	return SeverityNormal
}
