package anomaly

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/pulsedash/pulsedash/internal/analytics"
)

func TestDetectLinear_Spike(t *testing.T) {
	series := monthlySeries("2024-01", 1, 1, 1, 1, 10, 1, 1)

	records, err := DetectLinear(series, 3, 2.5, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %v", len(records), flaggedMonths(records))
	}

	// The spike month follows an exactly flat window: zero dispersion with a
	// nonzero deviation, flagged with a maximal score.
	spike := records[0]
	if spike.Month != "2024-05" {
		t.Errorf("expected month 2024-05, got %s", spike.Month)
	}
	if spike.Value != 10 {
		t.Errorf("expected value 10, got %v", spike.Value)
	}
	if spike.Expected != 1 {
		t.Errorf("expected fitted value 1, got %v", spike.Expected)
	}
	if spike.Residual != 9 {
		t.Errorf("expected residual 9, got %v", spike.Residual)
	}
	if spike.Score != math.MaxFloat64 {
		t.Errorf("expected maximal score on an exact-fit window, got %v", spike.Score)
	}

	// The month after deviates hard from the line fitted through the spike.
	after := records[1]
	if after.Month != "2024-06" {
		t.Errorf("expected month 2024-06, got %s", after.Month)
	}
	if after.Value != 1 {
		t.Errorf("expected value 1, got %v", after.Value)
	}
	if after.Expected != 13 {
		t.Errorf("expected fitted value 13, got %v", after.Expected)
	}
	if after.Residual != -12 {
		t.Errorf("expected residual -12, got %v", after.Residual)
	}
	if after.Score <= 2.5 {
		t.Errorf("expected score above threshold, got %v", after.Score)
	}
}

func TestDetectLinear_RobustFallsBackOnFlatWindows(t *testing.T) {
	series := monthlySeries("2024-01", 1, 1, 1, 1, 10, 1, 1)

	// With mostly flat windows the MAD degenerates to zero; the stddev
	// fallback keeps the deviation after the spike detectable.
	records, err := DetectLinear(series, 3, 2.5, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !containsMonth(records, "2024-05") {
		t.Errorf("expected 2024-05 flagged, got %v", flaggedMonths(records))
	}
	if !containsMonth(records, "2024-06") {
		t.Errorf("expected 2024-06 flagged, got %v", flaggedMonths(records))
	}
}

func TestDetectLinear_ConstantSeries(t *testing.T) {
	series := monthlySeries("2024-01", 5, 5, 5, 5, 5, 5)

	records, err := DetectLinear(series, 3, 2.0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no anomalies in a constant series, got %v", flaggedMonths(records))
	}
}

func TestDetectLinear_CleanTrend(t *testing.T) {
	// A steady trend with a small alternating wobble stays well inside the
	// threshold at every evaluable month.
	n := 24
	values := make([]float64, n)
	for i := range values {
		wobble := 0.5
		if i%2 == 1 {
			wobble = -0.5
		}
		values[i] = 100 + 2*float64(i) + wobble
	}
	series := monthlySeries("2022-01", values...)

	records, err := DetectLinear(series, 6, 3.0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no anomalies on a smooth trend, got %v", flaggedMonths(records))
	}
}

func TestDetectLinear_ChronologicalOrder(t *testing.T) {
	series := monthlySeries("2023-01", 10, 10, 10, 10, 100, 10, 10, 10, 10, 200, 10, 10)

	records, err := DetectLinear(series, 4, 2.0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(records); i++ {
		if records[i].Month <= records[i-1].Month {
			t.Errorf("records out of order: %s before %s", records[i-1].Month, records[i].Month)
		}
	}
}

func TestDetectLinear_Validation(t *testing.T) {
	series := monthlySeries("2024-01", 1, 2, 3)

	tests := []struct {
		name      string
		series    analytics.Series
		window    int
		threshold float64
	}{
		{"window too small", series, 1, 2.0},
		{"window exceeds series", series, 4, 2.0},
		{"zero threshold", series, 2, 0},
		{"negative threshold", series, 2, -1},
		{"unsorted series", analytics.Series{{Month: "2024-02", Value: 1}, {Month: "2024-01", Value: 2}}, 2, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DetectLinear(tt.series, tt.window, tt.threshold, false)
			if !errors.Is(err, analytics.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestDetectLinear_Deterministic(t *testing.T) {
	series := monthlySeries("2024-01", 2, 7, 1, 8, 2, 8, 1, 30, 2)
	before := make(analytics.Series, len(series))
	copy(before, series)

	first, err := DetectLinear(series, 4, 2.0, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := DetectLinear(series, 4, 2.0, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical results on repeated calls")
	}
	if !reflect.DeepEqual(before, series) {
		t.Error("input series was mutated")
	}
}
