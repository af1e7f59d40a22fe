package exporter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	api "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/api/v1"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

// ErrUnsupportedView is returned for a value that has no tabular form.
var ErrUnsupportedView = errors.New("exporter: unsupported view")

// Table is a chart's data laid out for export. Cells hold strings or
// domain.Measure values.
type Table struct {
	Name    string
	Title   string
	Headers []string
	Rows    [][]interface{}

	// Chart describes the native chart drawn next to the table in a
	// workbook. Each value column becomes one chart series.
	Chart       excelize.ChartType
	CategoryCol int
	ValueCols   []int
}

// TableOf lays out one api view.
func TableOf(view interface{}) (Table, error) {
	switch v := view.(type) {
	case *api.TotalsView:
		t := Table{
			Name:        api.ChartTotals,
			Title:       fmt.Sprintf("Awarded QTS by Course Level (%s)", v.PeriodLabel),
			Headers:     []string{domain.ColPeriod, domain.ColLevel, domain.ColNTotal},
			Chart:       excelize.Pie,
			CategoryCol: 1,
			ValueCols:   []int{2},
		}
		for _, lv := range v.Totals {
			t.Rows = append(t.Rows, []interface{}{string(v.Period), lv.Label, lv.Value})
		}
		return t, nil

	case *api.AgeView:
		t := Table{
			Name:        api.ChartAge,
			Title:       fmt.Sprintf("Age Groups Awarded QTS (%s)", v.PeriodLabel),
			Headers:     []string{domain.ColPeriod, "age_group", "percentage"},
			Chart:       excelize.Pie,
			CategoryCol: 1,
			ValueCols:   []int{2},
		}
		for _, lv := range v.Values {
			t.Rows = append(t.Rows, []interface{}{string(v.Period), lv.Label, lv.Value})
		}
		return t, nil

	case *api.EthnicityView:
		t := Table{
			Name:        api.ChartEthnicity + "_" + strings.ToLower(string(v.Level)),
			Title:       fmt.Sprintf("%ss Awarded QTS by Ethnicity (%s)", v.Level, v.PeriodLabel),
			Headers:     []string{domain.ColPeriod, domain.ColLevel, "ethnicity", "percentage"},
			Chart:       excelize.Col,
			CategoryCol: 2,
			ValueCols:   []int{3},
		}
		for _, lv := range v.Values {
			t.Rows = append(t.Rows, []interface{}{string(v.Period), string(v.Level), lv.Label, lv.Value})
		}
		return t, nil

	case *api.TimeSeriesView:
		t := Table{
			Name:        api.ChartTimeSeries + "_" + strings.ToLower(string(v.Level)),
			Title:       fmt.Sprintf("%ss Over Time (%s)", v.Level, v.Feature),
			Headers:     []string{domain.ColPeriod, "academic_year", domain.ColLevel, "feature", domain.ColNTotal},
			Chart:       excelize.Line,
			CategoryCol: 1,
			ValueCols:   []int{4},
		}
		for _, p := range v.Series.Points {
			t.Rows = append(t.Rows, []interface{}{string(p.Period), p.Label, string(v.Level), v.Feature, p.Value})
		}
		return t, nil

	case *api.ComparisonView:
		return comparisonTable(v), nil
	}
	return Table{}, fmt.Errorf("%w: %T", ErrUnsupportedView, view)
}

// comparisonTable has one row per period and one column per series.
// Periods a series has no point for are left without data.
func comparisonTable(v *api.ComparisonView) Table {
	t := Table{
		Name:        api.ChartComparison,
		Title:       fmt.Sprintf("%s by Course Level Over Time", v.MetricLabel),
		Headers:     []string{domain.ColPeriod, "academic_year"},
		Chart:       excelize.Line,
		CategoryCol: 1,
	}

	byPeriod := make([]map[domain.Period]domain.Measure, len(v.Series))
	for i, s := range v.Series {
		t.Headers = append(t.Headers, s.Name)
		t.ValueCols = append(t.ValueCols, i+2)
		byPeriod[i] = make(map[domain.Period]domain.Measure, len(s.Points))
		for _, p := range s.Points {
			byPeriod[i][p.Period] = p.Value
		}
	}

	for _, p := range v.Periods {
		row := []interface{}{string(p), p.Label()}
		for i := range v.Series {
			m, ok := byPeriod[i][p]
			if !ok {
				m = domain.NoData()
			}
			row = append(row, m)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
