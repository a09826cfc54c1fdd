package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthCheck_BasicMode(t *testing.T) {
	t.Parallel()

	checker := NewHealthChecker(nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	checker.HealthCheck(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if resp.Timestamp == "" {
		t.Error("expected timestamp to be set")
	}
	if resp.Checks != nil {
		t.Error("basic mode should not include checks")
	}
}

func TestHealthCheck_ExtendedModeWithoutDatabase(t *testing.T) {
	t.Parallel()

	checker := NewHealthChecker(nil)

	req := httptest.NewRequest("GET", "/healthz?mode=extended", nil)
	w := httptest.NewRecorder()
	checker.HealthCheck(w, req)

	// A missing store is a degraded configuration, not an unhealthy process.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Checks["database"] != "not configured" {
		t.Errorf("checks.database = %q, want 'not configured'", resp.Checks["database"])
	}
}
