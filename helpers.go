package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"safehours/duty"
)

func PrintTable(w io.Writer, headers []string, rows [][]string, footers []string) {
	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}
	for i, footer := range footers {
		if len(footer) > colWidths[i] {
			colWidths[i] = len(footer)
		}
	}

	// print header
	for i, header := range headers {
		fmt.Fprintf(w, "%-*s\t", colWidths[i], header)
	}
	fmt.Fprintln(w)

	// print rows
	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprintf(w, "%-*s\t", colWidths[i], cell)
		}
		fmt.Fprintln(w)
	}

	if footers == nil {
		return
	}

	// print footer, skipped cells stay blank
	for i, footer := range footers {
		fmt.Fprintf(w, "%-*s\t", colWidths[i], footer)
	}
	fmt.Fprintln(w)
}

// FormatHours renders hours with two decimals.
func FormatHours(h float64) string {
	return fmt.Sprintf("%.2f hrs", h)
}

func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// FormatValue renders a metric value the way the report shows it.
func FormatValue(m duty.Metric, v float64) string {
	if m == duty.MetricConsecutiveDays {
		return FormatDays(int(v))
	}
	return FormatHours(v)
}

var severityColors = map[duty.Severity]*color.Color{
	duty.SeverityNormal:    color.New(color.FgHiBlack),
	duty.SeverityCaution:   color.New(color.FgYellow, color.Bold),
	duty.SeverityViolation: color.New(color.FgRed, color.Bold),
}

func severityColor(s duty.Severity) *color.Color {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return color.New(color.Reset)
}
