package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"keyword-engine-go/internal/service"
	"keyword-engine-go/pkg/engine"
)

func testApp() *fiber.App {
	app := fiber.New()
	analysis := service.NewAnalysisService(engine.New(nil), nil)
	NewController(analysis).Register(app)
	return app
}

func TestHandleAnalyze_Success(t *testing.T) {
	app := testApp()

	body, _ := json.Marshal(AnalyzeRequest{
		Keywords: []string{"buy running shoes", "what is a shoe"},
	})
	req := httptest.NewRequest("POST", "/api/v1/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result engine.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(result.IntentClassification) != 2 {
		t.Errorf("Expected 2 classified keywords, got %d", len(result.IntentClassification))
	}
	if len(result.Clusters) == 0 {
		t.Error("Expected clusters in response")
	}
	if len(result.KeywordScores) != 2 {
		t.Errorf("Expected 2 score records, got %d", len(result.KeywordScores))
	}
}

func TestHandleAnalyze_EmptyKeywords(t *testing.T) {
	app := testApp()

	body, _ := json.Marshal(AnalyzeRequest{})
	req := httptest.NewRequest("POST", "/api/v1/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestHandleAnalyze_InvalidBody(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("POST", "/api/v1/analyze", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestHandleHealth(t *testing.T) {
	app := testApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}
