package anomaly

import (
	"fmt"

	"github.com/pulsedash/pulsedash/internal/analytics"
)

// LinearDetector flags months that deviate from a rolling linear trend
// extrapolated from the preceding window.
type LinearDetector struct{}

func init() {
	RegisterDetector("linear", &LinearDetector{})
}

// Name returns the algorithm name.
func (d *LinearDetector) Name() string {
	return "linear"
}

// Detect runs the rolling linear-residual detection.
func (d *LinearDetector) Detect(series analytics.Series, opts Options) ([]Record, error) {
	return DetectLinear(series, opts.Window, opts.Threshold, opts.Robust)
}

// DetectLinear fits a least-squares line over the window preceding each
// evaluable month t (t >= window), extrapolates one step to obtain the
// expected value, and flags t when |actual - expected| exceeds threshold
// times the dispersion of the in-window fit residuals. The dispersion is the
// population standard deviation, or MAD * 1.4826 when robust is set. A zero
// dispersion means the window fit exactly, so any deviation from it is
// flagged with a maximal score.
func DetectLinear(series analytics.Series, window int, threshold float64, robust bool) ([]Record, error) {
	if window < 2 {
		return nil, fmt.Errorf("%w: window must be at least 2, got %d", analytics.ErrValidation, window)
	}
	if window > len(series) {
		return nil, fmt.Errorf("%w: window %d exceeds series length %d", analytics.ErrValidation, window, len(series))
	}
	if threshold <= 0 {
		return nil, fmt.Errorf("%w: threshold must be positive, got %v", analytics.ErrValidation, threshold)
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	var records []Record
	residuals := make([]float64, window)

	for t := window; t < len(series); t++ {
		values := series[t-window : t].Values()
		intercept, slope := fitLine(values)
		for i, y := range values {
			residuals[i] = y - (intercept + slope*float64(i))
		}

		expected := intercept + slope*float64(window)
		residual := series[t].Value - expected

		score, ok := scoreResidual(residual, Scale(residuals, robust))
		if !ok || score <= threshold {
			continue
		}

		records = append(records, Record{
			Month:    series[t].Month,
			Value:    series[t].Value,
			Expected: expected,
			Residual: residual,
			Score:    score,
		})
	}

	return records, nil
}

// fitLine fits y = intercept + slope*x by ordinary least squares with
// x = 0..len(values)-1.
func fitLine(values []float64) (intercept, slope float64) {
	n := float64(len(values))

	sumX := 0.0
	sumY := 0.0
	sumXY := 0.0
	sumX2 := 0.0
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return sumY / n, 0
	}

	slope = (n*sumXY - sumX*sumY) / denominator
	intercept = (sumY - slope*sumX) / n
	return intercept, slope
}
