// Package api contains the HTTP and websocket request and response
// contracts of the dashboard. Version v1 represents the current stable API
// version.
package api

// Chart kinds. Each names one series endpoint, one SVG chart and one
// export.
const (
	ChartTotals     = "totals"
	ChartAge        = "age"
	ChartEthnicity  = "ethnicity"
	ChartTimeSeries = "timeseries"
	ChartComparison = "comparison"
)

// Charts lists every chart kind.
var Charts = []string{ChartTotals, ChartAge, ChartEthnicity, ChartTimeSeries, ChartComparison}

// Dashboard pages.
const (
	PageHome          = "home"
	PageUndergraduate = "undergraduate"
	PagePostgraduate  = "postgraduate"
	PageAnalysis      = "analysis"
)

// Pages lists the dashboard pages in navigation order.
var Pages = []string{PageHome, PageUndergraduate, PagePostgraduate, PageAnalysis}

// Query parameters carry the names of the query tags. List parameters accept
// repeated keys or comma separated values.

// TotalsRequest selects the period of the course level totals pie.
type TotalsRequest struct {
	Period string `json:"period" query:"period" validate:"required,period"`
}

// AgeRequest selects the period and course levels of the age split pie.
// Levels left out of the query mean every level; an empty levels value
// means none.
type AgeRequest struct {
	Period string   `json:"period" query:"period" validate:"required,period"`
	Levels []string `json:"levels" query:"levels" validate:"omitempty,max=2,dive,level"`
}

// EthnicityRequest selects the course level and period of the ethnicity bar
// chart.
type EthnicityRequest struct {
	Level  string `json:"level" query:"level" validate:"required,level"`
	Period string `json:"period" query:"period" validate:"required,period"`
}

// TimeSeriesRequest selects the course level and feature of the time
// series. Without periods every known period is plotted.
type TimeSeriesRequest struct {
	Level   string   `json:"level" query:"level" validate:"required,level"`
	Feature string   `json:"feature" query:"feature" validate:"required,feature"`
	Periods []string `json:"periods" query:"periods" validate:"omitempty,dive,period"`
}

// ComparisonRequest selects the metric, QTS status and periods of the
// course level comparison. Periods may be listed or given as an inclusive
// From..To range; with neither every known period is used.
type ComparisonRequest struct {
	Metric  string   `json:"metric" query:"metric" validate:"required,metric"`
	QTS     string   `json:"qts" query:"qts" validate:"omitempty,qts"`
	Periods []string `json:"periods" query:"periods" validate:"omitempty,excluded_with=From To,dive,period"`
	From    string   `json:"from" query:"from" validate:"omitempty,period"`
	To      string   `json:"to" query:"to" validate:"omitempty,period"`
}

// PageRequest carries the controls of a dashboard page. Every field is
// optional: the period defaults to the earliest known one, the home page
// levels to Undergraduate, the feature to Awarded QTS and the metric to the
// first comparable metric.
type PageRequest struct {
	Period  string   `json:"period" query:"period" validate:"omitempty,period"`
	Levels  []string `json:"levels" query:"levels" validate:"omitempty,max=2,dive,level"`
	Feature string   `json:"feature" query:"feature" validate:"omitempty,feature"`
	Metric  string   `json:"metric" query:"metric" validate:"omitempty,metric"`
	QTS     string   `json:"qts" query:"qts" validate:"omitempty,qts"`
	From    string   `json:"from" query:"from" validate:"omitempty,period"`
	To      string   `json:"to" query:"to" validate:"omitempty,period"`
}
