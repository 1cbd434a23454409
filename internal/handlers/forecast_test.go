package handlers

import (
	"encoding/json"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/pulsedash/pulsedash/internal/models"
)

func TestHandler_Forecast(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, "POST", "/v1/metrics/forecast", models.ForecastRequest{
		Metric: "active_users",
		Method: "linear_band",
		Series: []models.SeriesPoint{
			{Month: "2024-01", Value: 1},
			{Month: "2024-02", Value: 2},
			{Month: "2024-03", Value: 3},
			{Month: "2024-04", Value: 4},
			{Month: "2024-05", Value: 5},
			{Month: "2024-06", Value: 6},
		},
	})
	if status != fiber.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", fiber.StatusOK, status, body)
	}

	var resp models.ForecastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if resp.Metric != "active_users" {
		t.Errorf("Expected metric 'active_users', got '%s'", resp.Metric)
	}
	if len(resp.Forecast) != 3 {
		t.Fatalf("Expected 3 forecast steps, got %d", len(resp.Forecast))
	}
	if resp.Forecast[0] != 7 {
		t.Errorf("Expected first forecast value 7, got %v", resp.Forecast[0])
	}
	if resp.Months[0] != "2024-07" {
		t.Errorf("Expected first forecast month '2024-07', got '%s'", resp.Months[0])
	}
}

func TestHandler_ForecastInvalidJSON(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, "POST", "/v1/metrics/forecast", "not an object")
	if status != fiber.StatusBadRequest {
		t.Fatalf("Expected status %d, got %d", fiber.StatusBadRequest, status)
	}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if errResp.Error.Code != "INVALID_JSON" {
		t.Errorf("Expected error code 'INVALID_JSON', got '%s'", errResp.Error.Code)
	}
}

func TestHandler_ForecastUnknownMethod(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, "POST", "/v1/metrics/forecast", models.ForecastRequest{
		Method: "prophet",
		Series: []models.SeriesPoint{
			{Month: "2024-01", Value: 1},
			{Month: "2024-02", Value: 2},
			{Month: "2024-03", Value: 3},
		},
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("Expected status %d, got %d", fiber.StatusBadRequest, status)
	}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if errResp.Error.Code != "INVALID_METHOD" {
		t.Errorf("Expected error code 'INVALID_METHOD', got '%s'", errResp.Error.Code)
	}
	if _, ok := errResp.Error.Details["available_methods"]; !ok {
		t.Error("Expected available_methods in error details")
	}
}

func TestHandler_ForecastInvalidSeries(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, "POST", "/v1/metrics/forecast", models.ForecastRequest{
		Series: []models.SeriesPoint{
			{Month: "2024-02", Value: 1},
			{Month: "2024-01", Value: 2},
		},
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("Expected status %d, got %d", fiber.StatusBadRequest, status)
	}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if errResp.Error.Code != "INVALID_REQUEST" {
		t.Errorf("Expected error code 'INVALID_REQUEST', got '%s'", errResp.Error.Code)
	}
}
