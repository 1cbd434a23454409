package services

import (
	"context"
	"errors"
	"time"

	"github.com/pulsedash/pulsedash/internal/analytics"
	"github.com/pulsedash/pulsedash/internal/analytics/anomaly"
	"github.com/pulsedash/pulsedash/internal/config"
	"github.com/pulsedash/pulsedash/internal/logging"
	"github.com/pulsedash/pulsedash/internal/models"
)

// DefaultAnomalyMethod is used when a request does not name a method.
const DefaultAnomalyMethod = "linear"

// AnomalyService handles anomaly detection business logic
type AnomalyService struct {
	logger   *logging.Logger
	defaults config.AnomalyConfig
}

// NewAnomalyService creates a new AnomalyService
func NewAnomalyService(logger *logging.Logger, defaults config.AnomalyConfig) *AnomalyService {
	return &AnomalyService{
		logger:   logger,
		defaults: defaults,
	}
}

// Execute runs anomaly detection on the submitted series. A model fit
// failure (series too short for the season, degenerate or non-convergent
// fit) degrades to an empty result instead of an error: the dashboard renders
// no markers rather than breaking.
func (s *AnomalyService) Execute(ctx context.Context, req *models.AnomalyRequest) (*models.AnomalyResponse, error) {
	startExec := time.Now()

	series, err := toSeries(req.Series)
	if err != nil {
		return nil, &ServiceError{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		}
	}

	method := req.Method
	if method == "" {
		method = DefaultAnomalyMethod
	}

	detector, err := anomaly.GetDetector(method)
	if err != nil {
		return nil, &ServiceError{
			Code:    "INVALID_METHOD",
			Message: err.Error(),
			Details: map[string]interface{}{
				"available_methods": anomaly.ListDetectors(),
			},
		}
	}

	opts := s.detectorOptions(req)

	records, err := detector.Detect(series, opts)
	if err != nil {
		if errors.Is(err, anomaly.ErrModelFit) {
			s.logger.WithContext(ctx).Warn("Anomaly model fit failed, returning empty result",
				"metric", req.Metric,
				"method", method,
				"observations", len(series),
				"error", err)
			return &models.AnomalyResponse{
				Metric:    req.Metric,
				Method:    method,
				Anomalies: []models.AnomalyView{},
				Degraded:  true,
			}, nil
		}
		if errors.Is(err, analytics.ErrValidation) {
			return nil, &ServiceError{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			}
		}
		return nil, &ServiceError{
			Code:    "DETECTION_FAILED",
			Message: "Failed to run anomaly detection",
			Details: map[string]interface{}{"error": err.Error()},
		}
	}

	anomalies := make([]models.AnomalyView, len(records))
	for i, r := range records {
		anomalies[i] = models.AnomalyView{
			Month:    r.Month,
			Value:    r.Value,
			Expected: r.Expected,
			Residual: r.Residual,
			Score:    r.Score,
		}
	}

	latency := time.Since(startExec)
	s.logger.WithContext(ctx).Info("Anomaly detection completed",
		"metric", req.Metric,
		"method", method,
		"observations", len(series),
		"anomalies_count", len(anomalies),
		"latency_ms", latency.Milliseconds())

	return &models.AnomalyResponse{
		Metric:    req.Metric,
		Method:    method,
		Anomalies: anomalies,
	}, nil
}

// detectorOptions merges configured defaults with per-request overrides
func (s *AnomalyService) detectorOptions(req *models.AnomalyRequest) anomaly.Options {
	opts := anomaly.Options{
		Threshold:       s.defaults.Threshold,
		Window:          s.defaults.Window,
		Robust:          s.defaults.Robust,
		SeasonalPeriods: s.defaults.SeasonalPeriods,
		MaxIterations:   s.defaults.MaxIterations,
	}

	if req.Threshold != nil {
		opts.Threshold = *req.Threshold
	}
	if req.Window != nil {
		opts.Window = *req.Window
	}
	if req.Robust != nil {
		opts.Robust = *req.Robust
	}
	if req.SeasonalPeriods != nil {
		opts.SeasonalPeriods = *req.SeasonalPeriods
	}

	// The rolling linear detector rejects windows longer than the series;
	// clamp the configured default when no explicit window was requested.
	if req.Window == nil && opts.Window > len(req.Series) {
		opts.Window = len(req.Series)
	}

	return opts
}
