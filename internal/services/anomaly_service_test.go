package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pulsedash/pulsedash/internal/config"
	"github.com/pulsedash/pulsedash/internal/logging"
	"github.com/pulsedash/pulsedash/internal/models"
)

func newAnomalyService() *AnomalyService {
	return NewAnomalyService(logging.NewDevelopment(), config.DefaultConfig().Analytics.Anomaly)
}

func TestAnomalyService_LinearSpike(t *testing.T) {
	svc := newAnomalyService()

	resp, err := svc.Execute(context.Background(), &models.AnomalyRequest{
		Metric:    "error_rate",
		Series:    seriesPoints("2024-01", 1, 1, 1, 1, 10, 1, 1),
		Method:    "linear",
		Window:    intPtr(3),
		Threshold: floatPtr(2.5),
		Robust:    boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Degraded {
		t.Error("linear detection should not degrade")
	}
	// Both the spike itself and the distorted month after it are flagged.
	if len(resp.Anomalies) != 2 {
		t.Fatalf("expected 2 anomalies, got %d", len(resp.Anomalies))
	}
	if resp.Anomalies[0].Month != "2024-05" {
		t.Errorf("expected 2024-05 flagged, got %s", resp.Anomalies[0].Month)
	}
	if resp.Anomalies[1].Month != "2024-06" {
		t.Errorf("expected 2024-06 flagged, got %s", resp.Anomalies[1].Month)
	}
}

func TestAnomalyService_SeasonalTooShortDegrades(t *testing.T) {
	svc := newAnomalyService()

	// 10 observations cannot cover two 12-month seasons: the service degrades
	// to an empty result instead of failing the request.
	resp, err := svc.Execute(context.Background(), &models.AnomalyRequest{
		Series: seriesPoints("2024-01", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10),
		Method: "stl",
	})
	if err != nil {
		t.Fatalf("expected degraded result, got error: %v", err)
	}

	if !resp.Degraded {
		t.Error("expected degraded flag")
	}
	if len(resp.Anomalies) != 0 {
		t.Errorf("expected empty anomalies, got %v", resp.Anomalies)
	}
}

func TestAnomalyService_ARIMAConstantSeriesDegrades(t *testing.T) {
	svc := newAnomalyService()

	resp, err := svc.Execute(context.Background(), &models.AnomalyRequest{
		Series: seriesPoints("2024-01", 5, 5, 5, 5, 5, 5, 5, 5, 5, 5),
		Method: "arima",
	})
	if err != nil {
		t.Fatalf("expected degraded result, got error: %v", err)
	}
	if !resp.Degraded || len(resp.Anomalies) != 0 {
		t.Errorf("expected empty degraded result, got degraded=%v anomalies=%v",
			resp.Degraded, resp.Anomalies)
	}
}

func TestAnomalyService_UnknownMethod(t *testing.T) {
	svc := newAnomalyService()

	_, err := svc.Execute(context.Background(), &models.AnomalyRequest{
		Series: seriesPoints("2024-01", 1, 2, 3),
		Method: "isolation_forest",
	})

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.Code != "INVALID_METHOD" {
		t.Errorf("expected INVALID_METHOD, got %s", svcErr.Code)
	}
}

func TestAnomalyService_InvalidOverrides(t *testing.T) {
	svc := newAnomalyService()

	_, err := svc.Execute(context.Background(), &models.AnomalyRequest{
		Series:    seriesPoints("2024-01", 1, 2, 3, 4, 5, 6),
		Method:    "linear",
		Threshold: floatPtr(-1),
	})

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.Code != "INVALID_REQUEST" {
		t.Errorf("expected INVALID_REQUEST, got %s", svcErr.Code)
	}
}

func TestAnomalyService_QuietSeries(t *testing.T) {
	svc := newAnomalyService()

	resp, err := svc.Execute(context.Background(), &models.AnomalyRequest{
		Series: seriesPoints("2024-01", 5, 5, 5, 5, 5, 5, 5, 5),
		Method: "linear",
		Window: intPtr(3),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Anomalies) != 0 {
		t.Errorf("expected no anomalies, got %v", resp.Anomalies)
	}
	// An empty result still serializes as [] rather than null.
	if resp.Anomalies == nil {
		t.Error("anomalies slice should be non-nil")
	}
}
