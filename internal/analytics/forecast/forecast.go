// Package forecast implements short-horizon forecasters for monthly metric
// series. Every entry point is a pure function of its input: the series is
// never mutated and identical arguments produce identical output.
package forecast

import (
	"fmt"
	"math"

	"github.com/pulsedash/pulsedash/internal/analytics"
)

// Result holds a forecast aligned by position: one entry per horizon step.
// Lower and Upper are nil for forecasters that produce point forecasts only.
type Result struct {
	Months   []string  `json:"months"`
	Forecast []float64 `json:"forecast"`
	Lower    []float64 `json:"lower,omitempty"`
	Upper    []float64 `json:"upper,omitempty"`
}

// Config holds configuration shared by all forecasters.
type Config struct {
	Window  int     // Window size for windowed methods
	Horizon int     // Number of months to forecast
	K       float64 // Band half-width in residual standard deviations
	Alpha   float64 // Level smoothing factor (0-1)
	Beta    float64 // Trend smoothing factor (0-1)
}

// DefaultConfig returns default forecast configuration.
func DefaultConfig() Config {
	return Config{
		Window:  12,  // One year of monthly observations
		Horizon: 3,   // Forecast one quarter ahead
		K:       2.0, // Two standard deviations
		Alpha:   0.3,
		Beta:    0.1,
	}
}

// Forecaster interface for all forecasting algorithms.
type Forecaster interface {
	// Name returns the algorithm name.
	Name() string
	// Forecast generates predictions for future months.
	Forecast(series analytics.Series, config Config) (*Result, error)
}

var forecasterRegistry = make(map[string]Forecaster)

// RegisterForecaster adds a forecaster to the registry.
func RegisterForecaster(name string, forecaster Forecaster) {
	forecasterRegistry[name] = forecaster
}

// GetForecaster returns a forecaster by name.
func GetForecaster(name string) (Forecaster, error) {
	if forecaster, ok := forecasterRegistry[name]; ok {
		return forecaster, nil
	}
	return nil, fmt.Errorf("unknown forecaster: %s", name)
}

// ListForecasters returns the available forecaster names.
func ListForecasters() []string {
	names := make([]string, 0, len(forecasterRegistry))
	for name := range forecasterRegistry {
		names = append(names, name)
	}
	return names
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

// stdDev calculates the population standard deviation.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mu := 0.0
	for _, v := range values {
		mu += v
	}
	mu /= float64(len(values))

	sumSq := 0.0
	for _, v := range values {
		diff := v - mu
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// checkFinite validates that every value in the slice is finite.
func checkFinite(values []float64) error {
	for i, v := range values {
		if !analytics.IsFinite(v) {
			return fmt.Errorf("%w: non-finite value at window position %d", analytics.ErrValidation, i)
		}
	}
	return nil
}
