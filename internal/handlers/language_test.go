package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/pulsedash/pulsedash/internal/models"
)

func TestHandler_Languages(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, "GET", "/v1/languages", nil)
	if status != fiber.StatusOK {
		t.Fatalf("Expected status %d, got %d", fiber.StatusOK, status)
	}

	var resp models.LanguageListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if resp.Default != "en" {
		t.Errorf("Expected default 'en', got '%s'", resp.Default)
	}
	if len(resp.Languages) != 2 {
		t.Fatalf("Expected 2 languages, got %d", len(resp.Languages))
	}
	if resp.Languages[0].Code != "en" || resp.Languages[1].Code != "ja" {
		t.Errorf("Expected codes [en ja], got [%s %s]",
			resp.Languages[0].Code, resp.Languages[1].Code)
	}
}

func TestHandler_Label(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, "GET", "/v1/labels/dashboard.title?lang=ja", nil)
	if status != fiber.StatusOK {
		t.Fatalf("Expected status %d, got %d", fiber.StatusOK, status)
	}

	var resp models.LabelResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if resp.Value != "運用ダッシュボード" {
		t.Errorf("Expected Japanese title, got '%s'", resp.Value)
	}
	if resp.Language != "ja" {
		t.Errorf("Expected language 'ja', got '%s'", resp.Language)
	}
}

func TestHandler_LabelDefaultsToConfiguredLanguage(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, "GET", "/v1/labels/dashboard.title", nil)
	if status != fiber.StatusOK {
		t.Fatalf("Expected status %d, got %d", fiber.StatusOK, status)
	}

	var resp models.LabelResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Value != "Operations Dashboard" {
		t.Errorf("Expected English title, got '%s'", resp.Value)
	}
}

func TestHandler_LabelUsesSessionLanguage(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, "PUT", "/v1/sessions/sess-1/language",
		models.LanguageRequest{Language: "ja"})
	if status != fiber.StatusOK {
		t.Fatalf("Expected status %d setting session language, got %d", fiber.StatusOK, status)
	}

	req := httptest.NewRequest("GET", "/v1/labels/dashboard.title", nil)
	req.Header.Set(SessionHeader, "sess-1")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	var label models.LabelResponse
	if err := json.Unmarshal(body, &label); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if label.Value != "運用ダッシュボード" {
		t.Errorf("Expected Japanese title via session, got '%s'", label.Value)
	}
}

func TestHandler_SessionLanguageRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)

	// Fresh sessions report the configured default.
	status, body := doJSON(t, app, "GET", "/v1/sessions/sess-9/language", nil)
	if status != fiber.StatusOK {
		t.Fatalf("Expected status %d, got %d", fiber.StatusOK, status)
	}
	var resp models.SessionLanguageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Language != "en" {
		t.Errorf("Expected default language 'en', got '%s'", resp.Language)
	}

	status, body = doJSON(t, app, "PUT", "/v1/sessions/sess-9/language",
		models.LanguageRequest{Language: "ja"})
	if status != fiber.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", fiber.StatusOK, status, body)
	}

	status, body = doJSON(t, app, "GET", "/v1/sessions/sess-9/language", nil)
	if status != fiber.StatusOK {
		t.Fatalf("Expected status %d, got %d", fiber.StatusOK, status)
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Language != "ja" {
		t.Errorf("Expected language 'ja', got '%s'", resp.Language)
	}
	if resp.SessionID != "sess-9" {
		t.Errorf("Expected session 'sess-9', got '%s'", resp.SessionID)
	}
}

func TestHandler_SetUnsupportedLanguage(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, "PUT", "/v1/sessions/sess-1/language",
		models.LanguageRequest{Language: "fr"})
	if status != fiber.StatusBadRequest {
		t.Fatalf("Expected status %d, got %d", fiber.StatusBadRequest, status)
	}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if errResp.Error.Code != "INVALID_LANGUAGE" {
		t.Errorf("Expected error code 'INVALID_LANGUAGE', got '%s'", errResp.Error.Code)
	}
}
