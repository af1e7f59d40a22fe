package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/config"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/infrastructure"
)

func TestOTelMiddleware_RecordsRouteMetrics(t *testing.T) {
	logger := infrastructure.NewLogger(config.LoggingConfig{}, io.Discard)
	providers, err := infrastructure.InitializeOTel(config.TelemetryConfig{
		ServiceName:     "test",
		TracingExporter: "none",
		MetricsEnabled:  true,
	}, "test", logger)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(NewOTelMiddleware(providers, metrics).Handler)
	r.Get("/api/charts/{chart}.svg", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/charts/nope.svg", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	scrape := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := scrape.Body.String()

	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, `route="/api/charts/{chart}.svg"`)
	assert.Contains(t, body, `status_code="404"`)
}

func TestOTelMiddleware_KeepsRequestIDWithoutTracing(t *testing.T) {
	logger := infrastructure.NewLogger(config.LoggingConfig{}, io.Discard)
	providers, err := infrastructure.InitializeOTel(config.TelemetryConfig{
		ServiceName:     "test",
		TracingExporter: "none",
	}, "test", logger)
	require.NoError(t, err)

	metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)

	var traceID string
	h := RequestID(NewOTelMiddleware(providers, metrics).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = infrastructure.GetTraceID(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "req-42", traceID)
}
