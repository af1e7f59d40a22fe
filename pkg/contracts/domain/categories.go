package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownQTSStatus        = errors.New("unknown qts status")
	ErrUnknownCourseLevel      = errors.New("unknown course level")
	ErrUnknownEmploymentStatus = errors.New("unknown employment status")
	ErrUnknownFeature          = errors.New("unknown feature")
	ErrUnknownMetric           = errors.New("unknown metric")
)

// QTSStatus is the Qualified Teacher Status outcome of a cohort row.
type QTSStatus string

const (
	QTSAwarded    QTSStatus = "Awarded QTS"
	QTSNotAwarded QTSStatus = "Not awarded QTS"
	QTSTotal      QTSStatus = "Total"
)

// ParseQTSStatus maps s onto a known QTS status.
func ParseQTSStatus(s string) (QTSStatus, error) {
	switch q := QTSStatus(s); q {
	case QTSAwarded, QTSNotAwarded, QTSTotal:
		return q, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownQTSStatus, s)
}

// CourseLevel is the level of the training course. CourseTotal is an
// aggregate row and never takes part in per-level comparisons.
type CourseLevel string

const (
	CourseUndergraduate CourseLevel = "Undergraduate"
	CoursePostgraduate  CourseLevel = "Postgraduate"
	CourseTotal         CourseLevel = "Total"
)

// CourseLevels lists the non-aggregate levels in display order.
var CourseLevels = []CourseLevel{CourseUndergraduate, CoursePostgraduate}

// ParseCourseLevel maps s onto a known course level.
func ParseCourseLevel(s string) (CourseLevel, error) {
	switch l := CourseLevel(s); l {
	case CourseUndergraduate, CoursePostgraduate, CourseTotal:
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCourseLevel, s)
}

// IsAggregate reports whether l is the "Total" roll-up level.
func (l CourseLevel) IsAggregate() bool { return l == CourseTotal }

// EmploymentStatus is the post-training employment outcome of a cohort row.
type EmploymentStatus string

const (
	EmploymentTeaching    EmploymentStatus = "Teaching in a state-funded school"
	EmploymentNotTeaching EmploymentStatus = "Not teaching in a state-funded school"
	EmploymentUnknown     EmploymentStatus = "Unknown"
	EmploymentTotal       EmploymentStatus = "Total"
)

// ParseEmploymentStatus maps s onto a known employment status.
func ParseEmploymentStatus(s string) (EmploymentStatus, error) {
	switch e := EmploymentStatus(s); e {
	case EmploymentTeaching, EmploymentNotTeaching, EmploymentUnknown, EmploymentTotal:
		return e, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEmploymentStatus, s)
}

// FeatureKind tells which column a Feature filters on.
type FeatureKind int

const (
	FeatureQTS FeatureKind = iota + 1
	FeatureEmployment
)

// Feature selects the rows plotted by a time series: either a QTS status or
// an employment status.
type Feature struct {
	Kind  FeatureKind
	Value string
}

// QTSFeature selects rows by QTS status.
func QTSFeature(q QTSStatus) Feature { return Feature{Kind: FeatureQTS, Value: string(q)} }

// EmploymentFeature selects rows by employment status.
func EmploymentFeature(e EmploymentStatus) Feature {
	return Feature{Kind: FeatureEmployment, Value: string(e)}
}

// ParseFeature resolves s to a QTS feature when it names one of the two QTS
// outcomes and to an employment feature otherwise, so "Total" selects the
// employment total.
func ParseFeature(s string) (Feature, error) {
	switch q := QTSStatus(s); q {
	case QTSAwarded, QTSNotAwarded:
		return QTSFeature(q), nil
	}
	if e, err := ParseEmploymentStatus(s); err == nil {
		return EmploymentFeature(e), nil
	}
	return Feature{}, fmt.Errorf("%w: %q", ErrUnknownFeature, s)
}

func (f Feature) String() string { return f.Value }

// Metric is a percentage column that can be compared across course levels.
type Metric string

const (
	MetricAgeUnder25   Metric = "pct_total_age_u25"
	MetricAge25AndOver Metric = "pct_total_age_25andover"
	MetricSexMale      Metric = "pct_total_sex_m"
	MetricSexFemale    Metric = "pct_total_sex_f"
)

// Metrics lists the comparable metrics with their display labels.
var Metrics = []LabeledMetric{
	{MetricAgeUnder25, "Age Under 25"},
	{MetricAge25AndOver, "Age 25 and Over"},
	{MetricSexMale, "Male"},
	{MetricSexFemale, "Female"},
}

// LabeledMetric pairs a metric with its dropdown label.
type LabeledMetric struct {
	Metric Metric `json:"value"`
	Label  string `json:"label"`
}

// ParseMetric maps s onto a known metric.
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics {
		if string(m.Metric) == s {
			return m.Metric, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// Label is the display label of m, or m itself when unknown.
func (m Metric) Label() string {
	for _, lm := range Metrics {
		if lm.Metric == m {
			return lm.Label
		}
	}
	return string(m)
}
