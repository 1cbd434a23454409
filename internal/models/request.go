package models

// SeriesPoint represents one monthly observation of a dashboard metric
type SeriesPoint struct {
	Month string  `json:"month" validate:"required"` // Format: YYYY-MM
	Value float64 `json:"value"`
}

// ForecastRequest represents a metric forecast request
type ForecastRequest struct {
	Metric string        `json:"metric,omitempty"`                    // Optional metric name, echoed back
	Series []SeriesPoint `json:"series" validate:"required,min=2"`    // Chronological monthly observations
	Method string        `json:"method,omitempty"`                    // linear_band (default), holt, moving_stats
	Window *int          `json:"window,omitempty" validate:"min=2"`   // Trailing window for windowed methods
	Months *int          `json:"months,omitempty" validate:"min=1"`   // Forecast horizon
	K      *float64      `json:"k,omitempty"`                         // Band half-width in residual stddevs
	Alpha  *float64      `json:"alpha,omitempty" validate:"max=1"`    // Holt level smoothing factor
	Beta   *float64      `json:"beta,omitempty" validate:"max=1"`     // Holt trend smoothing factor
}

// AnomalyRequest represents an anomaly detection request
type AnomalyRequest struct {
	Metric          string        `json:"metric,omitempty"`                 // Optional metric name, echoed back
	Series          []SeriesPoint `json:"series" validate:"required,min=2"` // Chronological monthly observations
	Method          string        `json:"method,omitempty"`                 // linear (default), stl, arima
	Threshold       *float64      `json:"threshold,omitempty"`              // Detection sensitivity in scale units
	Window          *int          `json:"window,omitempty"`                 // Rolling window for the linear detector
	Robust          *bool         `json:"robust,omitempty"`                 // MAD-based dispersion for the linear detector
	SeasonalPeriods *int          `json:"seasonal_periods,omitempty"`       // Season length for the seasonal detector
}

// LanguageRequest represents a session language update request
type LanguageRequest struct {
	Language string `json:"language" validate:"required"` // Language code, e.g. "en", "de"
}
