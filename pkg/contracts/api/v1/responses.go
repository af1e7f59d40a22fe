package api

import (
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

// Response is the success envelope of every JSON endpoint.
type Response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// Success wraps data in the success envelope.
func Success(data interface{}) Response {
	return Response{Status: "success", Data: data}
}

// PeriodOption is a dropdown or slider entry.
type PeriodOption struct {
	Value domain.Period `json:"value"`
	Label string        `json:"label"`
}

// NewPeriodOptions labels ps for display.
func NewPeriodOptions(ps []domain.Period) []PeriodOption {
	out := make([]PeriodOption, len(ps))
	for i, p := range ps {
		out[i] = PeriodOption{Value: p, Label: p.Label()}
	}
	return out
}

// Options lists every value a dashboard control can take.
type Options struct {
	Periods     []PeriodOption         `json:"periods"`
	Levels      []domain.CourseLevel   `json:"levels"`
	Features    []domain.FeatureOption `json:"features"`
	Metrics     []domain.LabeledMetric `json:"metrics"`
	QTSStatuses []domain.QTSStatus     `json:"qts_statuses"`
	Charts      []string               `json:"charts"`
	Pages       []string               `json:"pages"`
}

// TotalsView is the course level totals pie of one period.
type TotalsView struct {
	Period      domain.Period         `json:"time_period"`
	PeriodLabel string                `json:"period_label"`
	Totals      []domain.LabeledValue `json:"totals"`
}

// AgeView is the age split pie of one period and set of levels.
type AgeView struct {
	Period      domain.Period         `json:"time_period"`
	PeriodLabel string                `json:"period_label"`
	Levels      []domain.CourseLevel  `json:"levels"`
	Split       domain.AgeSplit       `json:"split"`
	Values      []domain.LabeledValue `json:"values"`
}

// EthnicityView is the ethnicity bar chart of one level and period.
type EthnicityView struct {
	Level       domain.CourseLevel    `json:"level"`
	Period      domain.Period         `json:"time_period"`
	PeriodLabel string                `json:"period_label"`
	Values      []domain.LabeledValue `json:"values"`
}

// TimeSeriesView is the n_total line of one level and feature.
type TimeSeriesView struct {
	Level   domain.CourseLevel `json:"level"`
	Feature string             `json:"feature"`
	Series  domain.Series      `json:"series"`
}

// ComparisonView holds one line per course level for a metric.
type ComparisonView struct {
	Metric      domain.Metric    `json:"metric"`
	MetricLabel string           `json:"metric_label"`
	QTS         domain.QTSStatus `json:"qts_status"`
	Periods     []domain.Period  `json:"periods"`
	Series      []domain.Series  `json:"series"`
}

// PageBundle holds every chart of a dashboard page for one set of
// controls. Charts a page does not show are left out.
type PageBundle struct {
	Page       string          `json:"page"`
	Totals     *TotalsView     `json:"totals,omitempty"`
	Age        *AgeView        `json:"age,omitempty"`
	Ethnicity  *EthnicityView  `json:"ethnicity,omitempty"`
	TimeSeries *TimeSeriesView `json:"timeseries,omitempty"`
	Comparison *ComparisonView `json:"comparison,omitempty"`
}
