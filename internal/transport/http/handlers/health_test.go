package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newHealthRouter(h *HealthHandler) *gin.Engine {
	router := gin.New()
	router.GET("/healthz", h.Status)
	router.GET("/readyz", h.Readiness)
	return router
}

func TestHealthStatus(t *testing.T) {
	router := newHealthRouter(NewHealthHandler())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := decodeBody(t, w); body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
}

func TestReadinessAllChecksPass(t *testing.T) {
	handler := NewHealthHandler(
		WithReadinessCheck("database", func(context.Context) error { return nil }),
		WithReadinessCheck("cache", func(context.Context) error { return nil }),
	)
	router := newHealthRouter(handler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := decodeBody(t, w)
	checks, _ := body["checks"].(map[string]any)
	if checks["database"] != "ok" || checks["cache"] != "ok" {
		t.Errorf("checks = %v, want both ok", checks)
	}
}

func TestReadinessFailingCheck(t *testing.T) {
	handler := NewHealthHandler(
		WithReadinessCheck("database", func(context.Context) error { return nil }),
		WithReadinessCheck("cache", func(context.Context) error { return errors.New("connection refused") }),
	)
	router := newHealthRouter(handler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}

	body := decodeBody(t, w)
	if body["status"] != "degraded" {
		t.Errorf("status = %v, want degraded", body["status"])
	}
	checks, _ := body["checks"].(map[string]any)
	if checks["database"] != "ok" || checks["cache"] != "unavailable" {
		t.Errorf("checks = %v", checks)
	}
}
