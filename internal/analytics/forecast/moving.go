package forecast

import (
	"fmt"

	"github.com/pulsedash/pulsedash/internal/analytics"
)

// MovingStatsForecaster extrapolates the trailing-window mean as a flat
// forecast, banded by k window standard deviations.
type MovingStatsForecaster struct{}

// NewMovingStatsForecaster creates a new moving-stats forecaster.
func NewMovingStatsForecaster() *MovingStatsForecaster {
	return &MovingStatsForecaster{}
}

func init() {
	RegisterForecaster("moving_stats", NewMovingStatsForecaster())
}

// Name returns the algorithm name.
func (f *MovingStatsForecaster) Name() string {
	return "moving_stats"
}

// Forecast generates predictions using moving window statistics.
func (f *MovingStatsForecaster) Forecast(series analytics.Series, config Config) (*Result, error) {
	return MovingStatsBand(series, config.Window, config.Horizon, config.K)
}

// MovingStatsBand forecasts the mean of the last window observations, repeated
// flat for every horizon step. The band half-width is k times the population
// standard deviation (divide by n) of the same window.
func MovingStatsBand(series analytics.Series, window, horizon int, k float64) (*Result, error) {
	if window < 2 {
		return nil, fmt.Errorf("%w: window must be at least 2, got %d", analytics.ErrValidation, window)
	}
	if window > len(series) {
		return nil, fmt.Errorf("%w: window %d exceeds series length %d", analytics.ErrValidation, window, len(series))
	}
	if horizon < 1 {
		return nil, fmt.Errorf("%w: horizon must be positive, got %d", analytics.ErrValidation, horizon)
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: k must be non-negative, got %v", analytics.ErrValidation, k)
	}

	tail := series[len(series)-window:]
	if err := checkFinite(tail.Values()); err != nil {
		return nil, err
	}

	mean := tail.Mean()
	halfWidth := k * tail.StdDev()

	result := &Result{
		Months:   series.NextMonths(horizon),
		Forecast: make([]float64, horizon),
		Lower:    make([]float64, horizon),
		Upper:    make([]float64, horizon),
	}
	for h := 0; h < horizon; h++ {
		result.Forecast[h] = mean
		result.Lower[h] = mean - halfWidth
		result.Upper[h] = mean + halfWidth
	}

	return result, nil
}
