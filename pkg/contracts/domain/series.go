package domain

import (
	"encoding/json"
	"math"
	"strconv"
)

// Measure is an aggregated value. NaN means "no data" and is kept distinct
// from zero all the way to the wire, where it becomes null.
type Measure float64

// NoData is the Measure reported for aggregates over zero rows.
func NoData() Measure { return Measure(math.NaN()) }

// Valid reports whether m carries a value.
func (m Measure) Valid() bool {
	f := float64(m)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MarshalJSON encodes NaN as null.
func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(m), 'f', -1, 64), nil
}

// UnmarshalJSON decodes null as NaN.
func (m *Measure) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = NoData()
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*m = Measure(f)
	return nil
}

// LabeledValue is one slice of a pie or one bar.
type LabeledValue struct {
	Label string  `json:"label"`
	Value Measure `json:"value"`
}

// LevelTotals maps a course level to its summed n_total.
type LevelTotals map[CourseLevel]Measure

// Values returns the totals as labeled values, known levels first in display
// order and any other level after them.
func (t LevelTotals) Values() []LabeledValue {
	out := make([]LabeledValue, 0, len(t))
	seen := make(map[CourseLevel]bool, len(t))
	for _, l := range CourseLevels {
		if v, ok := t[l]; ok {
			out = append(out, LabeledValue{Label: string(l), Value: v})
			seen[l] = true
		}
	}
	for l, v := range t {
		if !seen[l] {
			out = append(out, LabeledValue{Label: string(l), Value: v})
		}
	}
	return out
}

// Age group labels.
const (
	LabelAgeUnder25   = "Percentage age under 25"
	LabelAge25AndOver = "Percentage age 25 and Over"
)

// AgeSplit holds the mean under-25 and 25-and-over percentages.
type AgeSplit struct {
	Under25   Measure `json:"under_25"`
	AndOver25 Measure `json:"25_and_over"`
}

// Values returns the split as two labeled values, under-25 first.
func (a AgeSplit) Values() []LabeledValue {
	return []LabeledValue{
		{Label: LabelAgeUnder25, Value: a.Under25},
		{Label: LabelAge25AndOver, Value: a.AndOver25},
	}
}

// Point is one period of a series.
type Point struct {
	Period Period  `json:"time_period"`
	Label  string  `json:"label"`
	Value  Measure `json:"value"`
}

// Series is a named, period-ordered sequence of points.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// FeatureOption is a dropdown entry for the time series feature selector.
type FeatureOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FeatureOptions are the features offered on the level pages.
var FeatureOptions = []FeatureOption{
	{Label: "Awarded QTS", Value: string(QTSAwarded)},
	{Label: "Not Awarded QTS", Value: string(QTSNotAwarded)},
	{Label: "Employed", Value: string(EmploymentTeaching)},
}
