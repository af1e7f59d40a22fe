package http

import (
	"net/http"

	apierrors "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/errors"
)

// MetricsHandler serves the Prometheus scrape endpoint
type MetricsHandler struct {
	exporter http.Handler
}

// NewMetricsHandler wraps the Prometheus exporter handler. A nil exporter
// means metrics are disabled.
func NewMetricsHandler(exporter http.Handler) *MetricsHandler {
	return &MetricsHandler{exporter: exporter}
}

// ServeHTTP handles GET /metrics
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.exporter == nil {
		apierrors.WriteError(w, apierrors.NotFoundError("metrics"))
		return
	}
	h.exporter.ServeHTTP(w, r)
}
