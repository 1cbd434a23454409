package services

import (
	"context"
	"errors"
	"time"

	"github.com/pulsedash/pulsedash/internal/analytics"
	"github.com/pulsedash/pulsedash/internal/analytics/forecast"
	"github.com/pulsedash/pulsedash/internal/config"
	"github.com/pulsedash/pulsedash/internal/logging"
	"github.com/pulsedash/pulsedash/internal/models"
)

// DefaultForecastMethod is used when a request does not name a method.
const DefaultForecastMethod = "linear_band"

// ForecastService handles metric forecasting business logic
type ForecastService struct {
	logger   *logging.Logger
	defaults config.ForecastConfig
}

// NewForecastService creates a new ForecastService
func NewForecastService(logger *logging.Logger, defaults config.ForecastConfig) *ForecastService {
	return &ForecastService{
		logger:   logger,
		defaults: defaults,
	}
}

// Execute produces a forecast for the submitted series
func (s *ForecastService) Execute(ctx context.Context, req *models.ForecastRequest) (*models.ForecastResponse, error) {
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
		method = DefaultForecastMethod
	}

	forecaster, err := forecast.GetForecaster(method)
	if err != nil {
		return nil, &ServiceError{
			Code:    "INVALID_METHOD",
			Message: err.Error(),
			Details: map[string]interface{}{
				"available_methods": forecast.ListForecasters(),
			},
		}
	}

	cfg := s.forecastConfig(req)

	result, err := forecaster.Forecast(series, cfg)
	if err != nil {
		if errors.Is(err, analytics.ErrValidation) {
			return nil, &ServiceError{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			}
		}
		return nil, &ServiceError{
			Code:    "FORECAST_FAILED",
			Message: "Failed to compute forecast",
			Details: map[string]interface{}{"error": err.Error()},
		}
	}

	latency := time.Since(startExec)
	s.logger.WithContext(ctx).Info("Forecast completed",
		"metric", req.Metric,
		"method", method,
		"observations", len(series),
		"horizon", cfg.Horizon,
		"latency_ms", latency.Milliseconds())

	return &models.ForecastResponse{
		Metric:   req.Metric,
		Method:   method,
		Months:   result.Months,
		Forecast: result.Forecast,
		Lower:    result.Lower,
		Upper:    result.Upper,
	}, nil
}

// forecastConfig merges configured defaults with per-request overrides
func (s *ForecastService) forecastConfig(req *models.ForecastRequest) forecast.Config {
	cfg := forecast.Config{
		Window:  s.defaults.Window,
		Horizon: s.defaults.Horizon,
		K:       s.defaults.K,
		Alpha:   s.defaults.Alpha,
		Beta:    s.defaults.Beta,
	}

	if req.Window != nil {
		cfg.Window = *req.Window
	}
	if req.Months != nil {
		cfg.Horizon = *req.Months
	}
	if req.K != nil {
		cfg.K = *req.K
	}
	if req.Alpha != nil {
		cfg.Alpha = *req.Alpha
	}
	if req.Beta != nil {
		cfg.Beta = *req.Beta
	}

	// Windowed methods reject windows longer than the series; clamp the
	// configured default so short series still forecast without an explicit
	// window override.
	if req.Window == nil && cfg.Window > len(req.Series) {
		cfg.Window = len(req.Series)
	}

	return cfg
}

// toSeries converts request points to a validated analytics series
func toSeries(points []models.SeriesPoint) (analytics.Series, error) {
	series := make(analytics.Series, len(points))
	for i, p := range points {
		series[i] = analytics.Point{Month: p.Month, Value: p.Value}
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	return series, nil
}
