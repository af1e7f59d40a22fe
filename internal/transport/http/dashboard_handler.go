package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/charts"
	apierrors "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/errors"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/exporter"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/middleware"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/services"
	api "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/api/v1"
)

// DashboardHandler serves series, pages, charts and exports with RFC 7807
// error responses
type DashboardHandler struct {
	service      DashboardServiceInterface
	renderer     *charts.Renderer
	exporter     *exporter.Exporter
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	service DashboardServiceInterface,
	renderer *charts.Renderer,
	exp *exporter.Exporter,
	validator *middleware.Validator,
	logger *slog.Logger,
	errorHandler *apierrors.ErrorHandler,
) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		renderer:     renderer,
		exporter:     exp,
		validator:    validator,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/periods", h.GetPeriods)
		r.Get("/options", h.GetOptions)
		r.Get("/series/{chart}", h.GetSeries)
		r.Get("/pages/{page}", h.GetPage)
	})

	r.Get("/charts/{chart}.svg", h.GetChart)
	r.Get("/export/workbook.xlsx", h.ExportWorkbook)
	r.Get("/export/{chart}.csv", h.ExportCSV)

	return r
}

// GetPeriods handles GET /api/periods
func (h *DashboardHandler) GetPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.service.Periods(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, api.Success(api.NewPeriodOptions(periods)))
}

// GetOptions handles GET /api/options
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Options(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, api.Success(opts))
}

// GetSeries handles GET /api/series/{chart}
func (h *DashboardHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	view, err := h.compute(r, chi.URLParam(r, "chart"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, api.Success(view))
}

// GetPage handles GET /api/pages/{page}
func (h *DashboardHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.page(r, chi.URLParam(r, "page"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, api.Success(bundle))
}

// GetChart handles GET /api/charts/{chart}.svg
func (h *DashboardHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	chart := chi.URLParam(r, "chart")
	view, err := h.compute(r, chart)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(r.Context(), &buf, view); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// ExportCSV handles GET /api/export/{chart}.csv
func (h *DashboardHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	view, err := h.compute(r, chi.URLParam(r, "chart"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	name, err := h.exporter.CSV(r.Context(), &buf, view)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	attachment(w, "text/csv; charset=utf-8", name)
	buf.WriteTo(w)
}

// ExportWorkbook handles GET /api/export/workbook.xlsx. The workbook holds
// every chart of every page for the controls in the query.
func (h *DashboardHandler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	var views []interface{}
	for _, page := range api.Pages {
		bundle, err := h.page(r, page)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		views = append(views, bundleViews(bundle)...)
	}

	var buf bytes.Buffer
	if err := h.exporter.Workbook(r.Context(), &buf, views...); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	attachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		exporter.Filename("workbook", exporter.FormatXLSX))
	buf.WriteTo(w)
}

// compute binds the query into the chart's request type and computes it.
func (h *DashboardHandler) compute(r *http.Request, chart string) (interface{}, error) {
	view, err := h.service.Compute(r.Context(), chart, h.bind(r))
	if errors.Is(err, services.ErrUnknownChart) {
		return nil, apierrors.NotFoundError(fmt.Sprintf("chart %q", chart))
	}
	return view, err
}

func (h *DashboardHandler) page(r *http.Request, page string) (*api.PageBundle, error) {
	var req api.PageRequest
	if err := h.bind(r)(&req); err != nil {
		return nil, err
	}
	bundle, err := h.service.Page(r.Context(), page, req)
	if errors.Is(err, services.ErrUnknownPage) {
		return nil, apierrors.NotFoundError(fmt.Sprintf("page %q", page))
	}
	return bundle, err
}

func (h *DashboardHandler) bind(r *http.Request) services.Binder {
	return func(dst interface{}) error {
		if err := BindQuery(r.URL.Query(), dst); err != nil {
			return apierrors.InvalidRequestWithError(err)
		}
		return h.validator.ValidateStruct(dst)
	}
}

// bundleViews lists the charts of a page bundle in display order.
func bundleViews(b *api.PageBundle) []interface{} {
	var out []interface{}
	if b.Totals != nil {
		out = append(out, b.Totals)
	}
	if b.Age != nil {
		out = append(out, b.Age)
	}
	if b.Ethnicity != nil {
		out = append(out, b.Ethnicity)
	}
	if b.TimeSeries != nil {
		out = append(out, b.TimeSeries)
	}
	if b.Comparison != nil {
		out = append(out, b.Comparison)
	}
	return out
}

func attachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
}
