package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsCountsByRouteAndStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/books/:id", func(c echo.Context) error {
		if c.Param("id") == "1" {
			return c.NoContent(http.StatusOK)
		}
		return echo.NewHTTPError(http.StatusNotFound)
	})

	for _, path := range []string{"/books/1", "/books/1", "/books/2", "/nowhere"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/books/:id", "200")); got != 2 {
		t.Fatalf("200 count = %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/books/:id", "404")); got != 1 {
		t.Fatalf("404 count = %v", got)
	}

	// 未匹配的路径不应该以原始 URL 作为 label
	if n := testutil.CollectAndCount(m.requests); n != 3 {
		t.Fatalf("expected 3 label sets, got %d", n)
	}
}

func TestMetricsRegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewMetrics(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := NewMetrics(reg); err == nil {
		t.Fatalf("registering the same collectors twice should fail")
	}
}
