package forecast

import (
	"fmt"

	"github.com/pulsedash/pulsedash/internal/analytics"
)

// LinearBandForecaster fits a least-squares line over a trailing window and
// extrapolates it, with a band of k residual standard deviations.
type LinearBandForecaster struct{}

// NewLinearBandForecaster creates a new linear band forecaster.
func NewLinearBandForecaster() *LinearBandForecaster {
	return &LinearBandForecaster{}
}

func init() {
	RegisterForecaster("linear_band", NewLinearBandForecaster())
}

// Name returns the algorithm name.
func (f *LinearBandForecaster) Name() string {
	return "linear_band"
}

// Forecast generates predictions using the trailing-window linear fit.
func (f *LinearBandForecaster) Forecast(series analytics.Series, config Config) (*Result, error) {
	return LinearBand(series, config.Window, config.Horizon, config.K)
}

// LinearBand fits y = a + b*x over the last window observations
// (x = 0..window-1) and forecasts step h as a + b*(window-1+h). The band
// half-width is k times the population standard deviation of the in-window fit
// residuals, so an exactly linear window yields lower == upper == forecast.
func LinearBand(series analytics.Series, window, horizon int, k float64) (*Result, error) {
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

	values := series[len(series)-window:].Values()
	if err := checkFinite(values); err != nil {
		return nil, err
	}

	intercept, slope := fitLine(values)

	residuals := make([]float64, window)
	for i, y := range values {
		residuals[i] = y - (intercept + slope*float64(i))
	}
	halfWidth := k * stdDev(residuals)

	result := &Result{
		Months:   series.NextMonths(horizon),
		Forecast: make([]float64, horizon),
		Lower:    make([]float64, horizon),
		Upper:    make([]float64, horizon),
	}
	for h := 1; h <= horizon; h++ {
		value := intercept + slope*float64(window-1+h)
		result.Forecast[h-1] = value
		result.Lower[h-1] = value - halfWidth
		result.Upper[h-1] = value + halfWidth
	}

	return result, nil
}
