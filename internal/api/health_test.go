package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler_CheckHealth(t *testing.T) {
	for _, tc := range []struct {
		healthy bool
		want    string
	}{{true, "healthy"}, {false, "unhealthy"}} {
		healthy := tc.healthy
		h := NewHealthHandler(func() bool { return healthy })
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()
		h.CheckHealth(w, req)

		if code := w.Result().StatusCode; code != http.StatusOK {
			t.Fatalf("unexpected status code: %d", code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["status"] != tc.want {
			t.Fatalf("want %s, got %s", tc.want, body["status"])
		}
	}
}

func TestHealthHandler_NilMeansHealthy(t *testing.T) {
	h := NewHealthHandler(nil)
	w := httptest.NewRecorder()
	h.CheckHealth(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code: %d", w.Code)
	}
}
