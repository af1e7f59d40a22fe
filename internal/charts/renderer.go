// Package charts renders dashboard views as SVG images.
package charts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/infrastructure"
	api "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/api/v1"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

// ErrUnsupportedView is returned for a value Render cannot draw.
var ErrUnsupportedView = errors.New("charts: unsupported view")

const (
	DefaultWidth  = 800
	DefaultHeight = 500
)

// Renderer draws api views at a fixed size.
type Renderer struct {
	width, height int
	metrics       *infrastructure.BusinessMetrics
	logger        *slog.Logger
}

// NewRenderer creates a renderer. metrics may be nil.
func NewRenderer(width, height int, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		width:   width,
		height:  height,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "charts")),
	}
}

// Render writes view as an SVG document.
func (r *Renderer) Render(ctx context.Context, w io.Writer, view interface{}) error {
	var (
		kind string
		err  error
	)
	switch v := view.(type) {
	case *api.TotalsView:
		kind = api.ChartTotals
		err = Pie(w, TotalsTitle(v), v.Totals, r.width, r.height)
	case *api.AgeView:
		kind = api.ChartAge
		err = Pie(w, AgeTitle(v), v.Values, r.width, r.height)
	case *api.EthnicityView:
		kind = api.ChartEthnicity
		err = Bar(w, EthnicityTitle(v), "Ethnicity", "Percentage", v.Values, r.width, r.height)
	case *api.TimeSeriesView:
		kind = api.ChartTimeSeries
		err = Lines(w, TimeSeriesTitle(v), "Academic Year", fmt.Sprintf("Total Number of %ss", v.Level), seriesOf(v), r.width, r.height)
	case *api.ComparisonView:
		kind = api.ChartComparison
		err = Lines(w, ComparisonTitle(v), "Academic Year", v.MetricLabel, v.Series, r.width, r.height)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedView, view)
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "chart rendering failed",
			slog.String("chart", kind),
			slog.String("error", err.Error()))
		return fmt.Errorf("render %s chart: %w", kind, err)
	}

	if r.metrics != nil {
		r.metrics.ChartsRenderedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("chart", kind)))
	}
	r.logger.DebugContext(ctx, "chart rendered", slog.String("chart", kind))
	return nil
}

// TotalsTitle is the title of the course level pie.
func TotalsTitle(v *api.TotalsView) string {
	return fmt.Sprintf("Distribution of Awarded QTS Among Course Levels (%s)", v.PeriodLabel)
}

// AgeTitle is the title of the age group pie.
func AgeTitle(v *api.AgeView) string {
	return fmt.Sprintf("Percentage Distribution of Age Groups Awarded QTS (%s)", v.PeriodLabel)
}

// EthnicityTitle is the title of the ethnicity bar chart.
func EthnicityTitle(v *api.EthnicityView) string {
	return fmt.Sprintf("Percentage of %ss Awarded QTS by Ethnicity (%s)", v.Level, v.PeriodLabel)
}

// TimeSeriesTitle is the title of a level's time series.
func TimeSeriesTitle(v *api.TimeSeriesView) string {
	return fmt.Sprintf("Total Number of %ss Over Time (%s)", v.Level, v.Feature)
}

// ComparisonTitle is the title of the course level comparison.
func ComparisonTitle(v *api.ComparisonView) string {
	return fmt.Sprintf("Comparison of %s by Course Level Over Time", v.MetricLabel)
}

// seriesOf gives the single line its level's colour.
func seriesOf(v *api.TimeSeriesView) []domain.Series {
	s := v.Series
	s.Name = string(v.Level)
	return []domain.Series{s}
}
