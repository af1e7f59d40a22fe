package exporter

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ErrEmptyWorkbook is returned when a workbook is requested with no tables.
var ErrEmptyWorkbook = errors.New("exporter: workbook has no tables")

const defaultSheet = "Sheet1"

// WriteWorkbook writes one worksheet per table, each with its native chart
// anchored to the right of the data.
func WriteWorkbook(w io.Writer, tables []Table) error {
	if len(tables) == 0 {
		return ErrEmptyWorkbook
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, t.Name); err != nil {
				return fmt.Errorf("rename sheet %q: %w", t.Name, err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("create sheet %q: %w", t.Name, err)
		}
		if err := writeSheet(f, t); err != nil {
			return fmt.Errorf("sheet %q: %w", t.Name, err)
		}
	}
	f.SetActiveSheet(0)

	return f.Write(w)
}

func writeSheet(f *excelize.File, t Table) error {
	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return err
	}

	for r, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = sheetCell(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Name, cell, &cells); err != nil {
			return err
		}
	}

	if len(t.Rows) == 0 || len(t.ValueCols) == 0 {
		return nil
	}
	chart, err := chartOf(t)
	if err != nil {
		return err
	}
	anchor, err := excelize.CoordinatesToCellName(len(t.Headers)+2, 2)
	if err != nil {
		return err
	}
	return f.AddChart(t.Name, anchor, chart)
}

// chartOf builds the chart definition with ranges over t's data rows.
func chartOf(t Table) (*excelize.Chart, error) {
	last := len(t.Rows) + 1
	categories, err := columnRange(t.Name, t.CategoryCol, last)
	if err != nil {
		return nil, err
	}

	chart := &excelize.Chart{
		Type:   t.Chart,
		Title:  []excelize.RichTextRun{{Text: t.Title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
	for _, col := range t.ValueCols {
		values, err := columnRange(t.Name, col, last)
		if err != nil {
			return nil, err
		}
		name, err := excelize.CoordinatesToCellName(col+1, 1, true)
		if err != nil {
			return nil, err
		}
		chart.Series = append(chart.Series, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!%s", t.Name, name),
			Categories: categories,
			Values:     values,
		})
	}
	return chart, nil
}

// columnRange is the absolute reference to rows 2..last of zero-based col.
func columnRange(sheet string, col, last int) (string, error) {
	from, err := excelize.CoordinatesToCellName(col+1, 2, true)
	if err != nil {
		return "", err
	}
	to, err := excelize.CoordinatesToCellName(col+1, last, true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("'%s'!%s:%s", sheet, from, to), nil
}
