package duty

import "cloud.google.com/go/civil"

// Metrics holds every derived value for one target date.
type Metrics struct {
	Date              civil.Date
	FlightHours       float64
	ContactHours      float64
	DutySpanHours     float64
	RestHours         float64
	ConsecutiveDays   int
	Trailing7DayHours float64
}

// Evaluation is a metric value together with its severity.
type Evaluation struct {
	Metric   Metric
	Value    float64
	Severity Severity
}

// ComputeMetrics derives all metrics for target from the full collection.
func ComputeMetrics(records []Activity, target civil.Date) Metrics {
	return Metrics{
		Date:              target,
		FlightHours:       FlightHours(records, target),
		ContactHours:      ContactHours(records, target),
		DutySpanHours:     DutySpanHours(records, target),
		RestHours:         RestHours(records, target),
		ConsecutiveDays:   ConsecutiveDays(records, target),
		Trailing7DayHours: Trailing7DayHours(records, target),
	}
}

// Value returns the value of metric.
func (m Metrics) Value(metric Metric) float64 {
	switch metric {
	case MetricFlightHours:
		return m.FlightHours
	case MetricContactHours:
		return m.ContactHours
	case MetricConsecutiveDays:
		return float64(m.ConsecutiveDays)
	case MetricDutySpan:
		return m.DutySpanHours
	case MetricTrailing7Day:
		return m.Trailing7DayHours
	case MetricRest:
		return m.RestHours
	}
	return 0
}

// Evaluate classifies every metric, in report order.
func (m Metrics) Evaluate() []Evaluation {
	out := make([]Evaluation, 0, len(AllMetrics))
	for _, metric := range AllMetrics {
		v := m.Value(metric)
		out = append(out, Evaluation{Metric: metric, Value: v, Severity: Classify(metric, v)})
	}
	return out
}

// Worst returns the highest severity among evals.
func Worst(evals []Evaluation) Severity {
	worst := SeverityNormal
	for _, e := range evals {
		if e.Severity > worst {
			worst = e.Severity
		}
	}
	return worst
}
