package series

import (
	"fmt"
	"math"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/dataset"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

// ethnicityPrefix is stripped from ethnicity column names to form labels.
const ethnicityPrefix = "pct_total_"

// Builder turns a Dataset into chart-ready series. Every call derives its
// own filtered view of the dataset table, so a Builder is safe for
// concurrent use.
type Builder struct {
	ds *dataset.Dataset
}

// NewBuilder returns a Builder over ds.
func NewBuilder(ds *dataset.Dataset) *Builder {
	return &Builder{ds: ds}
}

// Periods returns the known periods in canonical order.
func (b *Builder) Periods() []domain.Period {
	return b.ds.Periods()
}

// TotalsByLevel sums n_total of the Awarded QTS rows of period per course
// level. The aggregate Total level is never included. A period with no rows
// yields an empty result.
func (b *Builder) TotalsByLevel(period domain.Period) domain.LevelTotals {
	g := b.awarded(period)
	g = table.Filter(g, func(level string) bool {
		return !domain.CourseLevel(level).IsAggregate()
	}, domain.ColLevel)

	totals := make(domain.LevelTotals)
	byLevel := table.GroupBy(g, domain.ColLevel)
	for _, gid := range byLevel.Tables() {
		level := domain.CourseLevel(gid.Label().(string))
		totals[level] = sum(floats(byLevel.Table(gid), domain.ColNTotal))
	}
	return totals
}

// AgeSplit averages the two age percentages over the Awarded QTS rows of
// period whose course level is in levels. The mean is unweighted. An empty
// levels set, or no matching rows, yields NoData for both values.
func (b *Builder) AgeSplit(period domain.Period, levels []domain.CourseLevel) domain.AgeSplit {
	want := make(map[string]bool, len(levels))
	for _, l := range levels {
		want[string(l)] = true
	}
	g := table.Filter(b.awarded(period), func(level string) bool {
		return want[level]
	}, domain.ColLevel)

	return domain.AgeSplit{
		Under25:   mean(floats(g, domain.ColAgeUnder25)),
		AndOver25: mean(floats(g, domain.ColAge25AndOver)),
	}
}

// EthnicityBreakdown averages the six ethnicity percentages over the Awarded
// QTS rows of level in period. The result always has six entries in column
// declaration order.
func (b *Builder) EthnicityBreakdown(level domain.CourseLevel, period domain.Period) ([]domain.LabeledValue, error) {
	if err := checkLevel(level); err != nil {
		return nil, err
	}
	g := table.FilterEq(b.awarded(period), domain.ColLevel, string(level))

	out := make([]domain.LabeledValue, 0, len(domain.EthnicityColumns))
	for _, col := range domain.EthnicityColumns {
		out = append(out, domain.LabeledValue{
			Label: strings.TrimPrefix(col, ethnicityPrefix),
			Value: mean(floats(g, col)),
		})
	}
	return out, nil
}

// TimeSeries sums n_total per period over the rows of level matching
// feature. Without explicit periods every known period is considered.
// Points come out in canonical period order whatever order periods are
// given in; periods with no matching rows are left out.
func (b *Builder) TimeSeries(level domain.CourseLevel, feature domain.Feature, periods ...domain.Period) (domain.Series, error) {
	if err := checkLevel(level); err != nil {
		return domain.Series{}, err
	}
	col, err := featureColumn(feature)
	if err != nil {
		return domain.Series{}, err
	}
	g, err := b.inPeriods(periods)
	if err != nil {
		return domain.Series{}, err
	}
	g = table.FilterEq(g, col, feature.Value)
	g = table.FilterEq(g, domain.ColLevel, string(level))

	byPeriod := table.GroupBy(g, domain.ColPeriod)
	values := make(map[domain.Period]domain.Measure)
	for _, gid := range byPeriod.Tables() {
		p := domain.Period(gid.Label().(string))
		values[p] = sum(floats(byPeriod.Table(gid), domain.ColNTotal))
	}

	return domain.Series{
		Name:   feature.Value,
		Points: b.points(values),
	}, nil
}

// Comparison returns one series per non-aggregate course level holding the
// unweighted mean of metric per period over the rows with the given QTS
// status. An empty periods list means every known period.
func (b *Builder) Comparison(metric domain.Metric, periods []domain.Period, qts domain.QTSStatus) ([]domain.Series, error) {
	if _, err := domain.ParseMetric(string(metric)); err != nil {
		return nil, err
	}
	g, err := b.inPeriods(periods)
	if err != nil {
		return nil, err
	}
	g = table.FilterEq(g, domain.ColQTS, string(qts))

	out := make([]domain.Series, 0, len(domain.CourseLevels))
	for _, level := range domain.CourseLevels {
		lg := table.GroupBy(table.FilterEq(g, domain.ColLevel, string(level)), domain.ColPeriod)
		values := make(map[domain.Period]domain.Measure)
		for _, gid := range lg.Tables() {
			p := domain.Period(gid.Label().(string))
			values[p] = mean(floats(lg.Table(gid), string(metric)))
		}
		out = append(out, domain.Series{
			Name:   string(level),
			Points: b.points(values),
		})
	}
	return out, nil
}

// awarded is the Awarded QTS rows of period.
func (b *Builder) awarded(period domain.Period) table.Grouping {
	g := table.FilterEq(b.ds.Table(), domain.ColQTS, string(domain.QTSAwarded))
	return table.FilterEq(g, domain.ColPeriod, string(period))
}

// inPeriods restricts the table to periods, or returns it whole when
// periods is empty. Every period must be known.
func (b *Builder) inPeriods(periods []domain.Period) (table.Grouping, error) {
	if len(periods) == 0 {
		return b.ds.Table(), nil
	}
	want := make(map[string]bool, len(periods))
	for _, p := range periods {
		if !b.ds.HasPeriod(p) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPeriod, p)
		}
		want[string(p)] = true
	}
	return table.Filter(b.ds.Table(), func(p string) bool {
		return want[p]
	}, domain.ColPeriod), nil
}

// points lays values out in canonical period order.
func (b *Builder) points(values map[domain.Period]domain.Measure) []domain.Point {
	out := make([]domain.Point, 0, len(values))
	for _, p := range b.ds.Periods() {
		if v, ok := values[p]; ok {
			out = append(out, domain.Point{Period: p, Label: p.Label(), Value: v})
		}
	}
	return out
}

func checkLevel(level domain.CourseLevel) error {
	for _, l := range domain.CourseLevels {
		if l == level {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidLevel, level)
}

func featureColumn(f domain.Feature) (string, error) {
	switch f.Kind {
	case domain.FeatureQTS:
		return domain.ColQTS, nil
	case domain.FeatureEmployment:
		return domain.ColEmployment, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFeature, f.Value)
}

// floats gathers col across every group of g.
func floats(g table.Grouping, col string) []float64 {
	var out []float64
	for _, gid := range g.Tables() {
		var xs []float64
		slice.Convert(&xs, g.Table(gid).MustColumn(col))
		out = append(out, xs...)
	}
	return out
}

// Suppressed cells are NaN and take no part in aggregates.
func present(xs []float64) []float64 {
	out := xs[:0:0]
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

func mean(xs []float64) domain.Measure {
	xs = present(xs)
	if len(xs) == 0 {
		return domain.NoData()
	}
	return domain.Measure(stats.Mean(xs))
}

// sum is NoData when every cell is suppressed.
func sum(xs []float64) domain.Measure {
	xs = present(xs)
	if len(xs) == 0 {
		return domain.NoData()
	}
	return domain.Measure(stats.Sample{Xs: xs}.Sum())
}
