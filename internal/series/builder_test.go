package series

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/dataset"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

func row(p domain.Period, level domain.CourseLevel, qts domain.QTSStatus, emp domain.EmploymentStatus, n float64) domain.ObservationRow {
	return domain.ObservationRow{
		Period:           p,
		CourseLevel:      level,
		QTSStatus:        qts,
		EmploymentStatus: emp,
		NTotal:           n,
		PctAgeUnder25:    50,
		PctAge25AndOver:  50,
		PctSexMale:       30,
		PctSexFemale:     70,
		PctEthnicAsian:   10,
		PctEthnicBlack:   5,
		PctEthnicMixed:   4,
		PctEthnicOther:   1,
		PctEthnicWhite:   75,
		PctEthnicUnknown: 5,
	}
}

// fixture spans three periods, deliberately stored out of order.
func fixture() *Builder {
	ug, pg, total := domain.CourseUndergraduate, domain.CoursePostgraduate, domain.CourseTotal
	aw, na := domain.QTSAwarded, domain.QTSNotAwarded
	teach, all := domain.EmploymentTeaching, domain.EmploymentTotal

	rows := []domain.ObservationRow{
		row("201920", ug, aw, all, 120),
		row("201718", ug, aw, all, 100),
		row("201718", pg, aw, all, 50),
		row("201718", total, aw, all, 150),
		row("201718", ug, na, all, 7),
		row("201718", ug, aw, teach, 60),
		row("201819", pg, aw, all, 40),
		row("201819", ug, aw, teach, 65),
		row("201920", ug, aw, teach, 70),
	}

	// Age split and ethnicity rows with distinct values.
	rows[1].PctAgeUnder25, rows[1].PctAge25AndOver = 80, 20
	rows[2].PctAgeUnder25, rows[2].PctAge25AndOver = 20, 80
	rows[5].PctAgeUnder25, rows[5].PctAge25AndOver = 90, math.NaN()
	rows[1].PctEthnicAsian = 20
	rows[5].PctEthnicAsian = math.NaN()
	rows[1].PctSexFemale, rows[0].PctSexFemale = 60, 80

	return NewBuilder(dataset.New(rows))
}

func TestTotalsByLevel(t *testing.T) {
	b := fixture()

	got := b.TotalsByLevel("201718")
	assert.Equal(t, domain.LevelTotals{
		domain.CourseUndergraduate: 160,
		domain.CoursePostgraduate:  50,
	}, got)
	assert.NotContains(t, got, domain.CourseTotal)
}

func TestTotalsByLevel_ConcreteScenario(t *testing.T) {
	b := NewBuilder(dataset.New([]domain.ObservationRow{
		row("201718", domain.CourseUndergraduate, domain.QTSAwarded, domain.EmploymentTotal, 100),
		row("201718", domain.CoursePostgraduate, domain.QTSAwarded, domain.EmploymentTotal, 50),
	}))
	assert.Equal(t, domain.LevelTotals{
		domain.CourseUndergraduate: 100,
		domain.CoursePostgraduate:  50,
	}, b.TotalsByLevel("201718"))
}

func TestTotalsByLevel_UnknownPeriodIsEmpty(t *testing.T) {
	got := fixture().TotalsByLevel("999999")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTotalsByLevel_NeverContainsTotal(t *testing.T) {
	b := fixture()
	for _, p := range b.Periods() {
		assert.NotContains(t, b.TotalsByLevel(p), domain.CourseTotal, "period %s", p)
	}
}

func TestTotalsByLevel_SuppressedCountsAreNoData(t *testing.T) {
	suppressed := row("201718", domain.CoursePostgraduate, domain.QTSAwarded, domain.EmploymentTotal, math.NaN())
	b := NewBuilder(dataset.New([]domain.ObservationRow{
		row("201718", domain.CourseUndergraduate, domain.QTSAwarded, domain.EmploymentTotal, 100),
		row("201718", domain.CourseUndergraduate, domain.QTSAwarded, domain.EmploymentTeaching, math.NaN()),
		suppressed,
	}))

	got := b.TotalsByLevel("201718")
	assert.Equal(t, domain.Measure(100), got[domain.CourseUndergraduate])
	require.Contains(t, got, domain.CoursePostgraduate)
	assert.False(t, got[domain.CoursePostgraduate].Valid())
}

func TestAgeSplit(t *testing.T) {
	b := fixture()

	tests := []struct {
		name       string
		levels     []domain.CourseLevel
		wantUnder  float64
		wantOver   float64
		overIsNaN  bool
		underIsNaN bool
	}{
		{
			name:   "both levels",
			levels: []domain.CourseLevel{domain.CourseUndergraduate, domain.CoursePostgraduate},
			// Unweighted over three UG/PG rows; the NaN cell is skipped.
			wantUnder: (80 + 20 + 90) / 3.0,
			wantOver:  (20 + 80) / 2.0,
		},
		{
			name:      "postgraduate only",
			levels:    []domain.CourseLevel{domain.CoursePostgraduate},
			wantUnder: 20,
			wantOver:  80,
		},
		{
			name:       "empty selection",
			levels:     nil,
			underIsNaN: true,
			overIsNaN:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.AgeSplit("201718", tt.levels)
			if tt.underIsNaN {
				assert.True(t, math.IsNaN(float64(got.Under25)))
			} else {
				assert.InDelta(t, tt.wantUnder, float64(got.Under25), 1e-9)
			}
			if tt.overIsNaN {
				assert.True(t, math.IsNaN(float64(got.AndOver25)))
			} else {
				assert.InDelta(t, tt.wantOver, float64(got.AndOver25), 1e-9)
			}
		})
	}
}

func TestAgeSplit_WithinPercentRange(t *testing.T) {
	b := fixture()
	levels := []domain.CourseLevel{domain.CourseUndergraduate, domain.CoursePostgraduate}
	for _, p := range b.Periods() {
		got := b.AgeSplit(p, levels)
		for _, v := range got.Values() {
			if v.Value.Valid() {
				assert.GreaterOrEqual(t, float64(v.Value), 0.0)
				assert.LessOrEqual(t, float64(v.Value), 100.0)
			}
		}
	}
}

func TestAgeSplit_UnknownPeriodIsNoData(t *testing.T) {
	got := fixture().AgeSplit("999999", domain.CourseLevels)
	assert.False(t, got.Under25.Valid())
	assert.False(t, got.AndOver25.Valid())
}

func TestEthnicityBreakdown(t *testing.T) {
	b := fixture()

	got, err := b.EthnicityBreakdown(domain.CourseUndergraduate, "201718")
	require.NoError(t, err)
	require.Len(t, got, 6)

	labels := make([]string, len(got))
	for i, v := range got {
		labels[i] = v.Label
	}
	assert.Equal(t, []string{
		"ethnic_asian", "ethnic_black", "ethnic_mixed_ethnicity",
		"ethnic_other", "ethnic_white", "ethnic_unknown",
	}, labels)

	// Asian: 20 and NaN, so the mean is 20.
	assert.InDelta(t, 20.0, float64(got[0].Value), 1e-9)
	assert.InDelta(t, 75.0, float64(got[4].Value), 1e-9)
}

func TestEthnicityBreakdown_NoRows(t *testing.T) {
	got, err := fixture().EthnicityBreakdown(domain.CoursePostgraduate, "201920")
	require.NoError(t, err)
	require.Len(t, got, 6)
	for _, v := range got {
		assert.False(t, v.Value.Valid())
	}
}

func TestEthnicityBreakdown_InvalidLevel(t *testing.T) {
	_, err := fixture().EthnicityBreakdown(domain.CourseTotal, "201718")
	assert.ErrorIs(t, err, ErrInvalidLevel)
	assert.True(t, IsUnknownParameter(err))
}

func TestTimeSeries(t *testing.T) {
	b := fixture()

	t.Run("qts feature", func(t *testing.T) {
		got, err := b.TimeSeries(domain.CourseUndergraduate, domain.QTSFeature(domain.QTSAwarded))
		require.NoError(t, err)
		assert.Equal(t, string(domain.QTSAwarded), got.Name)
		assert.Equal(t, []domain.Point{
			{Period: "201718", Label: "2017/18", Value: 160},
			{Period: "201819", Label: "2018/19", Value: 65},
			{Period: "201920", Label: "2019/20", Value: 190},
		}, got.Points)
	})

	t.Run("employment feature", func(t *testing.T) {
		got, err := b.TimeSeries(domain.CourseUndergraduate, domain.EmploymentFeature(domain.EmploymentTeaching))
		require.NoError(t, err)
		require.Len(t, got.Points, 3)
		assert.Equal(t, domain.Measure(60), got.Points[0].Value)
		assert.Equal(t, domain.Measure(65), got.Points[1].Value)
		assert.Equal(t, domain.Measure(70), got.Points[2].Value)
	})

	t.Run("postgraduate", func(t *testing.T) {
		got, err := b.TimeSeries(domain.CoursePostgraduate, domain.QTSFeature(domain.QTSAwarded))
		require.NoError(t, err)
		assert.Equal(t, []domain.Point{
			{Period: "201718", Label: "2017/18", Value: 50},
			{Period: "201819", Label: "2018/19", Value: 40},
		}, got.Points)
	})
}

func TestTimeSeries_TotalIsEmploymentTotal(t *testing.T) {
	ug := domain.CourseUndergraduate
	b := NewBuilder(dataset.New([]domain.ObservationRow{
		row("201718", ug, domain.QTSAwarded, domain.EmploymentTotal, 100),
		row("201718", ug, domain.QTSTotal, domain.EmploymentTeaching, 5),
	}))

	feature, err := domain.ParseFeature("Total")
	require.NoError(t, err)

	got, err := b.TimeSeries(ug, feature)
	require.NoError(t, err)
	assert.Equal(t, []domain.Point{
		{Period: "201718", Label: "2017/18", Value: 100},
	}, got.Points)
}

func TestTimeSeries_CanonicalOrderForAnyInputOrder(t *testing.T) {
	b := fixture()
	f := domain.QTSFeature(domain.QTSAwarded)

	forward, err := b.TimeSeries(domain.CourseUndergraduate, f, "201718", "201920")
	require.NoError(t, err)
	backward, err := b.TimeSeries(domain.CourseUndergraduate, f, "201920", "201718")
	require.NoError(t, err)

	assert.Equal(t, forward, backward)
	require.Len(t, forward.Points, 2)
	assert.Equal(t, domain.Period("201718"), forward.Points[0].Period)
	assert.Equal(t, domain.Period("201920"), forward.Points[1].Period)
}

func TestTimeSeries_Errors(t *testing.T) {
	b := fixture()

	_, err := b.TimeSeries(domain.CourseUndergraduate, domain.QTSFeature(domain.QTSAwarded), "999999")
	assert.ErrorIs(t, err, ErrUnknownPeriod)

	_, err = b.TimeSeries(domain.CourseTotal, domain.QTSFeature(domain.QTSAwarded))
	assert.ErrorIs(t, err, ErrInvalidLevel)

	_, err = b.TimeSeries(domain.CourseUndergraduate, domain.Feature{Value: "Retired"})
	assert.ErrorIs(t, err, ErrUnknownFeature)
}

func TestComparison(t *testing.T) {
	b := fixture()

	got, err := b.Comparison(domain.MetricSexFemale, nil, domain.QTSAwarded)
	require.NoError(t, err)
	require.Len(t, got, 2)

	ug := got[0]
	assert.Equal(t, "Undergraduate", ug.Name)
	require.Len(t, ug.Points, 3)
	// 201718 UG awarded: 60 and 70.
	assert.InDelta(t, 65.0, float64(ug.Points[0].Value), 1e-9)
	// 201920 UG awarded: 80 and 70.
	assert.InDelta(t, 75.0, float64(ug.Points[2].Value), 1e-9)

	pg := got[1]
	assert.Equal(t, "Postgraduate", pg.Name)
	assert.Len(t, pg.Points, 2)

	for _, s := range got {
		assert.NotEqual(t, string(domain.CourseTotal), s.Name)
	}
}

func TestComparison_RestrictedPeriods(t *testing.T) {
	b := fixture()

	got, err := b.Comparison(domain.MetricAgeUnder25, []domain.Period{"201819"}, domain.QTSAwarded)
	require.NoError(t, err)
	for _, s := range got {
		for _, p := range s.Points {
			assert.Equal(t, domain.Period("201819"), p.Period)
		}
	}

	_, err = b.Comparison(domain.MetricAgeUnder25, []domain.Period{"209900"}, domain.QTSAwarded)
	assert.ErrorIs(t, err, ErrUnknownPeriod)

	_, err = b.Comparison(domain.Metric("n_total"), nil, domain.QTSAwarded)
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestBuilder_Idempotent(t *testing.T) {
	b := fixture()
	levels := []domain.CourseLevel{domain.CourseUndergraduate}

	assert.Equal(t, b.TotalsByLevel("201718"), b.TotalsByLevel("201718"))
	assert.Equal(t, b.AgeSplit("201718", levels), b.AgeSplit("201718", levels))

	e1, _ := b.EthnicityBreakdown(domain.CourseUndergraduate, "201718")
	e2, _ := b.EthnicityBreakdown(domain.CourseUndergraduate, "201718")
	assert.Equal(t, e1, e2)

	s1, _ := b.TimeSeries(domain.CourseUndergraduate, domain.QTSFeature(domain.QTSAwarded))
	s2, _ := b.TimeSeries(domain.CourseUndergraduate, domain.QTSFeature(domain.QTSAwarded))
	assert.Equal(t, s1, s2)
}

func TestBuilder_ConcurrentUse(t *testing.T) {
	b := fixture()
	want := b.TotalsByLevel("201718")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, b.TotalsByLevel("201718"))
		}()
	}
	wg.Wait()
}

func TestPeriods(t *testing.T) {
	assert.Equal(t, []domain.Period{"201718", "201819", "201920"}, fixture().Periods())
}
