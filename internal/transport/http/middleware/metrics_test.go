package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsCountsRequests(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics, err := NewHTTPMetrics(HTTPMetricsOptions{Registerer: registry})
	if err != nil {
		t.Fatalf("NewHTTPMetrics: %v", err)
	}

	router := gin.New()
	router.Use(metrics.Handler())
	router.GET("/contacts/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contacts/abc", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	}

	count := testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "/contacts/:id", "200"))
	if count != 3 {
		t.Fatalf("requests_total = %v, want 3", count)
	}
}

func TestHTTPMetricsLabelsUnmatchedRoute(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics, err := NewHTTPMetrics(HTTPMetricsOptions{Registerer: registry})
	if err != nil {
		t.Fatalf("NewHTTPMetrics: %v", err)
	}

	router := gin.New()
	router.Use(metrics.Handler())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	count := testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "/nope", "404"))
	if count != 1 {
		t.Fatalf("requests_total = %v, want 1", count)
	}
}

func TestHTTPMetricsDuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()

	if _, err := NewHTTPMetrics(HTTPMetricsOptions{Registerer: registry}); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewHTTPMetrics(HTTPMetricsOptions{Registerer: registry}); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}
