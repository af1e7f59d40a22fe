package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/dataset"
	apierrors "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/errors"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/infrastructure"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/services"
	api "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/api/v1"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/events"
)

// ChartService computes the views requested over the live channel
type ChartService interface {
	Compute(ctx context.Context, chart string, bind services.Binder) (interface{}, error)
	Page(ctx context.Context, page string, req api.PageRequest) (*api.PageBundle, error)
}

// StructValidator validates bound request parameters
type StructValidator interface {
	ValidateStruct(v interface{}) error
}

var _ ChartService = (*services.DashboardService)(nil)

// Dispatcher turns one ChartRequest into one ChartResponse
type Dispatcher struct {
	service   ChartService
	validator StructValidator
	metrics   *infrastructure.BusinessMetrics
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher. metrics may be nil.
func NewDispatcher(service ChartService, validator StructValidator, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &Dispatcher{
		service:   service,
		validator: validator,
		metrics:   metrics,
		logger:    logger.With(slog.String("component", "websocket.dispatcher")),
	}
}

// Handle answers req. Failures are reported in the response, never returned.
func (d *Dispatcher) Handle(ctx context.Context, req events.ChartRequest) events.ChartResponse {
	ctx = infrastructure.EnsureTraceID(ctx)
	start := time.Now()

	var (
		data interface{}
		err  error
	)
	if req.Chart == events.ChartPage {
		var pr api.PageRequest
		if err = d.bind(req.Params)(&pr); err == nil {
			data, err = d.service.Page(ctx, req.Page, pr)
		}
	} else {
		data, err = d.service.Compute(ctx, req.Chart, d.bind(req.Params))
	}

	resp := events.ChartResponse{
		ID:        req.ID,
		Type:      events.MessageTypeSeries,
		Chart:     req.Chart,
		Timestamp: time.Now().UTC(),
		TraceID:   infrastructure.GetTraceID(ctx),
	}
	if err != nil {
		resp.Type = events.MessageTypeError
		resp.Error = errorMessage(err)
	} else {
		resp.Data = data
	}

	d.record(ctx, req.Chart, resp)
	d.logger.DebugContext(ctx, "request answered",
		slog.String("id", req.ID),
		slog.String("chart", req.Chart),
		slog.String("type", string(resp.Type)),
		slog.Duration("duration", time.Since(start)))
	return resp
}

// Reject answers a message that could not be decoded as a request.
func (d *Dispatcher) Reject(ctx context.Context, err error) events.ChartResponse {
	ctx = infrastructure.EnsureTraceID(ctx)
	resp := events.ChartResponse{
		Type:      events.MessageTypeError,
		Timestamp: time.Now().UTC(),
		TraceID:   infrastructure.GetTraceID(ctx),
		Error:     errorMessage(err),
	}
	d.record(ctx, "", resp)
	return resp
}

// bind decodes params into the chart's request type. Missing or null
// params bind nothing, so only validation can fail.
func (d *Dispatcher) bind(params json.RawMessage) services.Binder {
	return func(dst interface{}) error {
		trimmed := bytes.TrimSpace(params)
		if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			if err := json.Unmarshal(trimmed, dst); err != nil {
				return apierrors.InvalidRequestWithError(err)
			}
		}
		return d.validator.ValidateStruct(dst)
	}
}

func (d *Dispatcher) record(ctx context.Context, chart string, resp events.ChartResponse) {
	if d.metrics == nil {
		return
	}
	status := "success"
	if resp.Error != nil {
		status = resp.Error.Code
	}
	d.metrics.WebSocketMessages.Add(ctx, 1, metric.WithAttributes(
		attribute.String("chart", chart),
		attribute.String("status", status),
	))
}

// errorMessage maps err onto the same codes the HTTP API uses.
func errorMessage(err error) *events.ErrorMessage {
	var apiErr *apierrors.APIError
	switch {
	case errors.As(err, &apiErr):
		return &events.ErrorMessage{Code: apiErr.ErrorCode, Message: apiErr.Message, Details: apiErr.Details}
	case errors.Is(err, services.ErrUnknownChart), errors.Is(err, services.ErrUnknownPage):
		return &events.ErrorMessage{Code: apierrors.CodeNotFound, Message: err.Error()}
	case apierrors.IsInvalidParameter(err):
		return &events.ErrorMessage{Code: apierrors.CodeInvalidParameter, Message: err.Error()}
	case errors.Is(err, dataset.ErrNotLoaded):
		return &events.ErrorMessage{Code: apierrors.CodeDatasetUnavailable, Message: "The outcomes dataset is not loaded"}
	default:
		return &events.ErrorMessage{Code: apierrors.CodeInternal, Message: "An unexpected error occurred while processing your request"}
	}
}
