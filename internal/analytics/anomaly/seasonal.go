package anomaly

import (
	"fmt"

	"github.com/pulsedash/pulsedash/internal/analytics"
)

// SeasonalDetector flags months whose residual after seasonal-trend
// decomposition deviates from the robust residual dispersion.
type SeasonalDetector struct{}

func init() {
	RegisterDetector("stl", &SeasonalDetector{})
}

// Name returns the algorithm name.
func (d *SeasonalDetector) Name() string {
	return "stl"
}

// Detect runs seasonal-decomposition residual detection.
func (d *SeasonalDetector) Detect(series analytics.Series, opts Options) ([]Record, error) {
	return DetectSeasonal(series, opts.Threshold, opts.SeasonalPeriods)
}

// DetectSeasonal decomposes the series into trend, seasonal and residual
// components and flags months where |residual| exceeds threshold times the
// robust residual dispersion (MAD * 1.4826). A series shorter than two full
// seasons cannot be decomposed and yields ErrModelFit, which callers treat as
// a recoverable empty result.
func DetectSeasonal(series analytics.Series, threshold float64, seasonalPeriods int) ([]Record, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("%w: threshold must be positive, got %v", analytics.ErrValidation, threshold)
	}
	if seasonalPeriods < 2 {
		return nil, fmt.Errorf("%w: seasonal_periods must be at least 2, got %d", analytics.ErrValidation, seasonalPeriods)
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if len(series) < 2*seasonalPeriods {
		return nil, fmt.Errorf("%w: need at least %d observations for period %d, got %d",
			ErrModelFit, 2*seasonalPeriods, seasonalPeriods, len(series))
	}

	_, _, residuals := Decompose(series.Values(), seasonalPeriods)

	scale := RobustScale(residuals)

	var records []Record
	for t, residual := range residuals {
		score, ok := scoreResidual(residual, scale)
		if !ok || score <= threshold {
			continue
		}
		records = append(records, Record{
			Month:    series[t].Month,
			Value:    series[t].Value,
			Expected: series[t].Value - residual,
			Residual: residual,
			Score:    score,
		})
	}

	return records, nil
}

// Decompose splits a periodic series into trend, seasonal and residual
// components using classical moving-average decomposition: a centered moving
// average of one period estimates the trend (a 2xm average for even periods),
// edge-extended to cover the full series; the seasonal component is the
// centered mean of the detrended values per phase. The caller guarantees
// len(values) >= 2*period.
func Decompose(values []float64, period int) (trend, seasonal, residual []float64) {
	n := len(values)
	half := period / 2

	// Centered moving-average trend.
	trend = make([]float64, n)
	for t := half; t <= n-1-half; t++ {
		if period%2 == 1 {
			sum := 0.0
			for i := t - half; i <= t+half; i++ {
				sum += values[i]
			}
			trend[t] = sum / float64(period)
		} else {
			sum := 0.5*values[t-half] + 0.5*values[t+half]
			for i := t - half + 1; i <= t+half-1; i++ {
				sum += values[i]
			}
			trend[t] = sum / float64(period)
		}
	}
	for t := 0; t < half; t++ {
		trend[t] = trend[half]
	}
	for t := n - half; t < n; t++ {
		trend[t] = trend[n-1-half]
	}

	// Phase-average seasonal component, centered to sum to zero.
	phaseSum := make([]float64, period)
	phaseCount := make([]int, period)
	for t := 0; t < n; t++ {
		phaseSum[t%period] += values[t] - trend[t]
		phaseCount[t%period]++
	}
	phaseMean := make([]float64, period)
	total := 0.0
	for p := 0; p < period; p++ {
		phaseMean[p] = phaseSum[p] / float64(phaseCount[p])
		total += phaseMean[p]
	}
	center := total / float64(period)

	seasonal = make([]float64, n)
	residual = make([]float64, n)
	for t := 0; t < n; t++ {
		seasonal[t] = phaseMean[t%period] - center
		residual[t] = values[t] - trend[t] - seasonal[t]
	}

	return trend, seasonal, residual
}
