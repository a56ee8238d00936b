package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/taxease-service/internal/observability"
)

func TestHealthMetrics(t *testing.T) {
	t.Parallel()

	metrics := observability.NewMetrics()
	metrics.RecordRequest("/api/plans", "GET", 200, time.Millisecond)
	metrics.RecordError("/api/auth/login", "POST", "INVALID_CREDENTIALS")

	h := NewHealthHandler("taxease-service", "test", nil, nil, metrics)

	app := fiber.New()
	app.Get("/health/metrics", h.Metrics)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/metrics", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Service  string           `json:"service"`
		Requests map[string]int64 `json:"requests"`
		Errors   map[string]int64 `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Service != "taxease-service" {
		t.Errorf("service = %q, want taxease-service", body.Service)
	}
	if body.Requests["/api/plans|GET|200"] != 1 {
		t.Errorf("requests = %v, want /api/plans|GET|200 = 1", body.Requests)
	}
	if body.Errors["/api/auth/login|POST|INVALID_CREDENTIALS"] != 1 {
		t.Errorf("errors = %v, want /api/auth/login|POST|INVALID_CREDENTIALS = 1", body.Errors)
	}
}
