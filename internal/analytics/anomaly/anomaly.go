// Package anomaly implements anomaly detectors for monthly metric series.
// Detectors are pure functions: the input series is never mutated, no state
// survives a call, and identical input yields identical output.
//
// Recoverable model failures (series too short to decompose, non-convergent
// fits, degenerate input) are reported as ErrModelFit so callers can degrade
// to an empty result instead of aborting.
package anomaly

import (
	"fmt"

	"github.com/pulsedash/pulsedash/internal/analytics"
)

// ErrModelFit marks recoverable model-fitting failures.
var ErrModelFit = fmt.Errorf("model fit failed")

// Record describes a single flagged month.
type Record struct {
	Month    string  `json:"month"`
	Value    float64 `json:"value"`
	Expected float64 `json:"expected"`
	Residual float64 `json:"residual"`
	Score    float64 `json:"score"`
}

// Options holds configuration for anomaly detection.
type Options struct {
	// Threshold is the detection sensitivity in scale units.
	Threshold float64

	// Window size for the rolling linear detector.
	Window int

	// Robust selects MAD-based dispersion for the rolling linear detector.
	Robust bool

	// SeasonalPeriods is the season length for the seasonal detector.
	SeasonalPeriods int

	// MaxIterations bounds the autoregressive detector's moving-average
	// estimation loop. Zero selects the model default.
	MaxIterations int
}

// DefaultOptions returns default detector options.
func DefaultOptions() Options {
	return Options{
		Threshold:       3.0, // 3 scale units
		Window:          6,   // Half a year of monthly observations
		SeasonalPeriods: 12,  // Yearly seasonality
		MaxIterations:   50,
	}
}

// Detector interface for all anomaly detection algorithms.
type Detector interface {
	// Name returns the algorithm name.
	Name() string

	// Detect returns flagged months in chronological order, possibly empty.
	Detect(series analytics.Series, opts Options) ([]Record, error)
}

var detectorRegistry = make(map[string]Detector)

// RegisterDetector adds a detector to the registry.
func RegisterDetector(name string, detector Detector) {
	detectorRegistry[name] = detector
}

// GetDetector returns a detector by name.
func GetDetector(name string) (Detector, error) {
	if detector, ok := detectorRegistry[name]; ok {
		return detector, nil
	}
	return nil, fmt.Errorf("unknown anomaly detector: %s", name)
}

// ListDetectors returns the available detector names.
func ListDetectors() []string {
	names := make([]string, 0, len(detectorRegistry))
	for name := range detectorRegistry {
		names = append(names, name)
	}
	return names
}
