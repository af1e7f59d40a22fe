package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

// suppressionMarkers are the cell values published statistics use in place
// of a number. They load as NaN.
var suppressionMarkers = map[string]bool{
	"":    true,
	"c":   true,
	"x":   true,
	"z":   true,
	"u":   true,
	"low": true,
	":":   true,
}

// requiredColumns must all be present in the header.
var requiredColumns = func() []string {
	cols := []string{
		domain.ColPeriod,
		domain.ColLevel,
		domain.ColQTS,
		domain.ColEmployment,
		domain.ColNTotal,
	}
	for _, c := range domain.PercentColumns {
		cols = append(cols, c.Name)
	}
	return cols
}()

// Load reads the dataset at path. The format is chosen by extension.
func Load(ctx context.Context, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	var ds *Dataset
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		ds, err = ReadCSV(ctx, f)
	case ".xlsx":
		ds, err = ReadXLSX(ctx, f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	ds.source = path

	slog.InfoContext(ctx, "Dataset loaded",
		slog.String("path", path),
		slog.Int("rows", ds.Len()),
		slog.Int("periods", len(ds.periods)))
	return ds, nil
}

// ReadCSV parses a comma-delimited outcomes file with a header row.
func ReadCSV(ctx context.Context, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return FromRecords(ctx, records)
}

// ReadXLSX parses the first worksheet of a workbook whose first row carries
// the required header.
func ReadXLSX(ctx context.Context, r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var lastErr error = ErrNoData
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		if _, err := mapHeader(rows[0]); err != nil {
			lastErr = err
			continue
		}
		slog.DebugContext(ctx, "Found outcomes sheet", slog.String("sheet_name", sheet))
		return FromRecords(ctx, rows)
	}
	return nil, lastErr
}

// FromRecords builds a Dataset from a header record followed by data
// records. Blank records are skipped.
func FromRecords(ctx context.Context, records [][]string) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	columns, err := mapHeader(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ObservationRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if isBlank(rec) {
			continue
		}
		// Header is row 1.
		row, err := parseRow(i+2, rec, columns)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return New(rows), nil
}

// mapHeader resolves the index of every required column. course_level_recoded
// is accepted in place of course_level.
func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	if _, ok := columns[domain.ColLevel]; !ok {
		if idx, ok := columns[domain.ColLevelAlias]; ok {
			columns[domain.ColLevel] = idx
		}
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := columns[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return columns, nil
}

func parseRow(rowNum int, rec []string, columns map[string]int) (domain.ObservationRow, error) {
	cell := func(col string) string {
		if idx := columns[col]; idx < len(rec) {
			return strings.TrimSpace(rec[idx])
		}
		return ""
	}
	rowErr := func(col string, err error) error {
		return &RowError{Row: rowNum, Column: col, Value: cell(col), Err: err}
	}

	var (
		row domain.ObservationRow
		err error
	)
	if row.Period, err = domain.ParsePeriod(normalizePeriod(cell(domain.ColPeriod))); err != nil {
		return row, rowErr(domain.ColPeriod, err)
	}
	if row.CourseLevel, err = domain.ParseCourseLevel(cell(domain.ColLevel)); err != nil {
		return row, rowErr(domain.ColLevel, err)
	}
	if row.QTSStatus, err = domain.ParseQTSStatus(cell(domain.ColQTS)); err != nil {
		return row, rowErr(domain.ColQTS, err)
	}
	if row.EmploymentStatus, err = domain.ParseEmploymentStatus(cell(domain.ColEmployment)); err != nil {
		return row, rowErr(domain.ColEmployment, err)
	}

	if row.NTotal, err = parseNumber(cell(domain.ColNTotal)); err != nil {
		return row, rowErr(domain.ColNTotal, err)
	}
	if row.NTotal < 0 {
		return row, rowErr(domain.ColNTotal, ErrInvalidValue)
	}

	for _, c := range domain.PercentColumns {
		v, err := parseNumber(cell(c.Name))
		if err != nil {
			return row, rowErr(c.Name, err)
		}
		if !math.IsNaN(v) && (v < 0 || v > 100) {
			return row, rowErr(c.Name, ErrOutOfRange)
		}
		*c.Ptr(&row) = v
	}
	return row, nil
}

// normalizePeriod drops the ".0" a numeric export leaves on period codes.
func normalizePeriod(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// parseNumber reads a numeric cell. Suppressed and empty cells are NaN.
func parseNumber(s string) (float64, error) {
	if suppressionMarkers[strings.ToLower(s)] {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrInvalidValue
	}
	return v, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
