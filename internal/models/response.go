package models

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ForecastResponse represents a metric forecast response
type ForecastResponse struct {
	Metric   string    `json:"metric,omitempty"`
	Method   string    `json:"method"`
	Months   []string  `json:"months"`
	Forecast []float64 `json:"forecast"`
	Lower    []float64 `json:"lower,omitempty"` // Absent for point-only methods
	Upper    []float64 `json:"upper,omitempty"` // Absent for point-only methods
}

// AnomalyView represents a single flagged month in a detection response
type AnomalyView struct {
	Month    string  `json:"month"`
	Value    float64 `json:"value"`
	Expected float64 `json:"expected"`
	Residual float64 `json:"residual"`
	Score    float64 `json:"score"`
}

// AnomalyResponse represents an anomaly detection response
type AnomalyResponse struct {
	Metric    string        `json:"metric,omitempty"`
	Method    string        `json:"method"`
	Anomalies []AnomalyView `json:"anomalies"`
	Degraded  bool          `json:"degraded,omitempty"` // True when a model fit failure yielded an empty result
}

// LanguageInfo represents one available dashboard language
type LanguageInfo struct {
	Code string `json:"code"`
	Name string `json:"name"` // Self-described display name
}

// LanguageListResponse represents the available languages response
type LanguageListResponse struct {
	Languages []LanguageInfo `json:"languages"`
	Default   string         `json:"default"`
}

// LabelResponse represents a resolved translation label
type LabelResponse struct {
	Key      string `json:"key"`
	Language string `json:"language"` // Language the value was resolved in
	Value    string `json:"value"`
}

// SessionLanguageResponse represents a session language read or update
type SessionLanguageResponse struct {
	SessionID string `json:"session_id"`
	Language  string `json:"language"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
