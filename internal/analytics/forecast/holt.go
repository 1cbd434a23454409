package forecast

import (
	"fmt"

	"github.com/pulsedash/pulsedash/internal/analytics"
)

// HoltLinearForecaster implements Holt's linear method (double exponential
// smoothing) producing level and trend estimates.
type HoltLinearForecaster struct{}

// NewHoltLinearForecaster creates a new Holt linear forecaster.
func NewHoltLinearForecaster() *HoltLinearForecaster {
	return &HoltLinearForecaster{}
}

func init() {
	RegisterForecaster("holt", NewHoltLinearForecaster())
}

// Name returns the algorithm name.
func (f *HoltLinearForecaster) Name() string {
	return "holt"
}

// Forecast generates predictions using Holt's linear method.
func (f *HoltLinearForecaster) Forecast(series analytics.Series, config Config) (*Result, error) {
	return HoltLinear(series, config.Alpha, config.Beta, config.Horizon)
}

// HoltLinear runs double exponential smoothing with level L0 = y0 and trend
// T0 = y1 - y0, then forecasts step h as L + h*T. It returns point forecasts
// only: this forecaster deliberately carries no band, unlike the windowed
// band forecasters.
func HoltLinear(series analytics.Series, alpha, beta float64, horizon int) (*Result, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 observations to initialize trend, got %d", analytics.ErrValidation, len(series))
	}
	if alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("%w: alpha must be in [0,1], got %v", analytics.ErrValidation, alpha)
	}
	if beta < 0 || beta > 1 {
		return nil, fmt.Errorf("%w: beta must be in [0,1], got %v", analytics.ErrValidation, beta)
	}
	if horizon < 1 {
		return nil, fmt.Errorf("%w: horizon must be positive, got %d", analytics.ErrValidation, horizon)
	}

	values := series.Values()
	if err := checkFinite(values); err != nil {
		return nil, err
	}

	level := values[0]
	trend := values[1] - values[0]
	for _, y := range values[1:] {
		prevLevel := level
		level = alpha*y + (1-alpha)*(prevLevel+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
	}

	result := &Result{
		Months:   series.NextMonths(horizon),
		Forecast: make([]float64, horizon),
	}
	for h := 1; h <= horizon; h++ {
		result.Forecast[h-1] = level + float64(h)*trend
	}

	return result, nil
}
