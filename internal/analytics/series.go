// Package analytics provides common types and utilities for monthly metric
// analytics (forecasting and anomaly detection).
//
// All statistics in this package and its subpackages use the population
// standard deviation (divide by n) unless stated otherwise.
package analytics

import (
	"fmt"
	"math"
	"time"
)

// MonthLayout is the period label layout, e.g. "2024-03".
const MonthLayout = "2006-01"

// ErrValidation marks parameter or input-series validation failures.
// Callers can match it with errors.Is.
var ErrValidation = fmt.Errorf("validation error")

// Point is a single monthly observation: a "YYYY-MM" period label and a value.
type Point struct {
	Month string
	Value float64
}

// Series is a chronologically ordered monthly series with unique labels.
type Series []Point

// Values extracts just the values from the series.
func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}

// Months extracts just the period labels from the series.
func (s Series) Months() []string {
	months := make([]string, len(s))
	for i, p := range s {
		months[i] = p.Month
	}
	return months
}

// Mean calculates the mean of all values.
func (s Series) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range s {
		sum += p.Value
	}
	return sum / float64(len(s))
}

// StdDev calculates the population standard deviation of all values.
func (s Series) StdDev() float64 {
	if len(s) == 0 {
		return 0
	}
	mean := s.Mean()
	sumSq := 0.0
	for _, p := range s {
		diff := p.Value - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(s)))
}

// Validate checks that the series is chronologically ordered with unique,
// parseable "YYYY-MM" labels and finite values.
func (s Series) Validate() error {
	var prev time.Time
	for i, p := range s {
		t, err := ParseMonth(p.Month)
		if err != nil {
			return fmt.Errorf("%w: point %d: %v", ErrValidation, i, err)
		}
		if i > 0 && !t.After(prev) {
			return fmt.Errorf("%w: point %d: month %q not after %q", ErrValidation, i, p.Month, s[i-1].Month)
		}
		if !IsFinite(p.Value) {
			return fmt.Errorf("%w: point %d (%s): non-finite value", ErrValidation, i, p.Month)
		}
		prev = t
	}
	return nil
}

// NextMonths returns the n period labels immediately following the last point.
// Labels fall back to empty strings when the series is empty or unparseable.
func (s Series) NextMonths(n int) []string {
	months := make([]string, n)
	if len(s) == 0 {
		return months
	}
	last, err := ParseMonth(s[len(s)-1].Month)
	if err != nil {
		return months
	}
	for i := 0; i < n; i++ {
		months[i] = last.AddDate(0, i+1, 0).Format(MonthLayout)
	}
	return months
}

// ParseMonth parses a "YYYY-MM" period label.
func ParseMonth(label string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, label)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month label %q", label)
	}
	return t, nil
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
