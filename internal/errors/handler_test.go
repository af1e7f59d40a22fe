package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/dataset"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/infrastructure"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/series"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/shared/testutil"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorHandler_ErrorToProblem(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)
	r := httptest.NewRequest(http.MethodGet, "/api/series/timeseries", nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"unknown period", fmt.Errorf("%w: %q", series.ErrUnknownPeriod, "999999"), http.StatusBadRequest, TypeInvalidParameter},
		{"invalid level", fmt.Errorf("%w: %q", series.ErrInvalidLevel, "Total"), http.StatusBadRequest, TypeInvalidParameter},
		{"unknown feature", fmt.Errorf("wrap: %w", domain.ErrUnknownFeature), http.StatusBadRequest, TypeInvalidParameter},
		{"unknown metric", domain.ErrUnknownMetric, http.StatusBadRequest, TypeInvalidParameter},
		{"malformed period", domain.ErrInvalidPeriod, http.StatusBadRequest, TypeInvalidParameter},
		{"unknown course level", domain.ErrUnknownCourseLevel, http.StatusBadRequest, TypeInvalidParameter},
		{"dataset not loaded", fmt.Errorf("series: %w", dataset.ErrNotLoaded), http.StatusServiceUnavailable, TypeServiceDown},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, TypeTimeout},
		{"api error", ErrRateLimitExceeded, http.StatusTooManyRequests, TypeRateLimit},
		{"wrapped api error", fmt.Errorf("bind: %w", ErrValidationFailed), http.StatusBadRequest, TypeValidation},
		{"anything else", errors.New("disk on fire"), http.StatusInternalServerError, TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := h.ErrorToProblem(tt.err, r)
			assert.Equal(t, tt.wantStatus, p.Status)
			assert.Equal(t, tt.wantType, p.Type)
			assert.Equal(t, "/api/series/timeseries", p.Instance)
		})
	}
}

func TestErrorHandler_InternalDetailIsGeneric(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	p := h.ErrorToProblem(errors.New("secret path /etc/x"), r)
	assert.NotContains(t, p.Detail, "/etc/x")
}

func TestErrorHandler_HandleError(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	r := httptest.NewRequest(http.MethodGet, "/api/series/age?period=999999", nil)
	r = r.WithContext(infrastructure.WithTraceID(r.Context(), "trace-1"))
	w := httptest.NewRecorder()

	h.HandleError(w, r, fmt.Errorf("%w: %q", series.ErrUnknownPeriod, "999999"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	body := decodeProblem(t, w)
	assert.Equal(t, "trace-1", body["trace_id"])
	assert.Equal(t, CodeInvalidParameter, body["error_code"])
	assert.Contains(t, body["detail"], "999999")

	testutil.AssertLogContains(t, logs, slog.LevelWarn, "request failed")
	testutil.AssertLogAttr(t, logs, "component", "error_handler")
}

func TestErrorHandler_HandleErrorNil(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)
	w := httptest.NewRecorder()

	h.HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, logs.Count())
}

func TestErrorHandler_HandleErrorServerSideIncludesStack(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, true)
	w := httptest.NewRecorder()

	h.HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, decodeProblem(t, w)["stack"])
	testutil.AssertLogContains(t, logs, slog.LevelError, "request failed")
}

func TestErrorHandler_APIErrorDetails(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)
	w := httptest.NewRecorder()

	h.HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), ErrValidation("period", "required"))

	body := decodeProblem(t, w)
	assert.Equal(t, TypeValidation, body["type"])
	assert.Equal(t, map[string]interface{}{"field": "period", "message": "required"}, body["details"])
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	w := httptest.NewRecorder()
	h.NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, TypeNotFound, decodeProblem(t, w)["type"])

	w = httptest.NewRecorder()
	h.MethodNotAllowed(w, httptest.NewRequest(http.MethodDelete, "/api/periods", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, decodeProblem(t, w)["detail"], "DELETE")
}

func TestErrorHandler_Recoverer(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, true)

	panicking := h.Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	w := httptest.NewRecorder()
	panicking.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pages/home", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeProblem(t, w)
	assert.Equal(t, "kaboom", body["panic"])
	testutil.AssertLogContains(t, logs, slog.LevelError, "panic recovered")
}

func TestIsInvalidParameter(t *testing.T) {
	assert.True(t, IsInvalidParameter(fmt.Errorf("x: %w", series.ErrUnknownMetric)))
	assert.True(t, IsInvalidParameter(domain.ErrUnknownEmploymentStatus))
	assert.False(t, IsInvalidParameter(dataset.ErrNotLoaded))
	assert.False(t, IsInvalidParameter(nil))
}
