package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/infrastructure"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Exporter writes dashboard views as downloads and records export metrics.
type Exporter struct {
	options WriteOptions
	metrics *infrastructure.BusinessMetrics
	logger  *slog.Logger
}

// New creates an exporter. metrics may be nil.
func New(options WriteOptions, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		options: options,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "exporter")),
	}
}

// CSV writes view as CSV and returns the suggested file name.
func (e *Exporter) CSV(ctx context.Context, w io.Writer, view interface{}) (string, error) {
	t, err := TableOf(view)
	if err != nil {
		return "", err
	}
	if err := WriteCSV(w, t, e.options); err != nil {
		return "", fmt.Errorf("export %s: %w", t.Name, err)
	}

	e.record(ctx, FormatCSV, t.Name, len(t.Rows))
	return Filename(t.Name, FormatCSV), nil
}

// Workbook writes views as one XLSX workbook, a sheet and chart per view.
func (e *Exporter) Workbook(ctx context.Context, w io.Writer, views ...interface{}) error {
	tables := make([]Table, 0, len(views))
	rows := 0
	for _, v := range views {
		t, err := TableOf(v)
		if err != nil {
			return err
		}
		tables = append(tables, t)
		rows += len(t.Rows)
	}
	if err := WriteWorkbook(w, tables); err != nil {
		return fmt.Errorf("export workbook: %w", err)
	}

	e.record(ctx, FormatXLSX, "workbook", rows)
	return nil
}

func (e *Exporter) record(ctx context.Context, format, name string, rows int) {
	if e.metrics != nil {
		e.metrics.ExportsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("format", format),
			attribute.String("chart", name),
		))
	}
	e.logger.InfoContext(ctx, "export written",
		slog.String("format", format),
		slog.String("name", name),
		slog.Int("rows", rows))
}

// Filename is the download name for an export.
func Filename(name, format string) string {
	return fmt.Sprintf("teacher_outcomes_%s.%s", name, format)
}
