package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "Rate limit exceeded", ErrRateLimitExceeded.Error())
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		err    *APIError
		status int
		code   string
	}{
		{ErrInvalidRequest, http.StatusBadRequest, CodeInvalidRequest},
		{ErrValidationFailed, http.StatusBadRequest, CodeValidationFailed},
		{ErrInvalidParameter, http.StatusBadRequest, CodeInvalidParameter},
		{ErrNotFound, http.StatusNotFound, CodeNotFound},
		{ErrRateLimitExceeded, http.StatusTooManyRequests, CodeRateLimitExceeded},
		{ErrInternalServer, http.StatusInternalServerError, CodeInternal},
		{ErrWebSocketUpgrade, http.StatusInternalServerError, CodeWebSocketUpgrade},
		{ErrDatasetUnavailable, http.StatusServiceUnavailable, CodeDatasetUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.Equal(t, tt.code, tt.err.ErrorCode)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestInvalidParameter(t *testing.T) {
	err := InvalidParameter("period", errors.New(`unknown period: "999999"`))

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, CodeInvalidParameter, err.ErrorCode)
	assert.Equal(t, "Invalid value for period", err.Message)
	assert.Equal(t, ValidationError{Field: "period", Message: `unknown period: "999999"`}, err.Details)
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("level", "must be Undergraduate or Postgraduate")

	assert.Equal(t, CodeValidationFailed, err.ErrorCode)
	assert.Equal(t, ValidationError{Field: "level", Message: "must be Undergraduate or Postgraduate"}, err.Details)
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError("chart")
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "chart not found", err.Message)
}

func TestNewValidationErrors(t *testing.T) {
	err := NewValidationErrors([]ValidationError{
		{Field: "period", Message: "required"},
		{Field: "feature", Message: "unknown"},
	})

	details, ok := err.Details.(ValidationErrors)
	require.True(t, ok)
	assert.Len(t, details.Errors, 2)
}

func TestErrorResponse_Render(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/series/totals", nil)

	require.NoError(t, render.Render(w, r, NewErrorResponse(ErrNotFound)))
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, CodeNotFound, body["error"].(map[string]interface{})["error_code"])
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, ErrWebSocketUpgrade)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), CodeWebSocketUpgrade)
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	p := NewProblemDetails(http.StatusBadRequest, TypeInvalidParameter, "Invalid Parameter", "bad period", "/api/series/age").
		WithExtension("trace_id", "abc").
		WithExtension("status", 999)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, TypeInvalidParameter, body["type"])
	assert.Equal(t, "bad period", body["detail"])
	assert.Equal(t, "/api/series/age", body["instance"])
	assert.Equal(t, "abc", body["trace_id"])
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
}

func TestProblemDetails_OmitsEmptyMembers(t *testing.T) {
	data, err := json.Marshal(NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "", ""))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "detail")
	assert.NotContains(t, string(data), "instance")
}

func TestProblemDetails_WithExtensionOnZeroValue(t *testing.T) {
	var p ProblemDetails
	p.WithExtension("k", "v")
	assert.Equal(t, "v", p.Extensions["k"])
}
