package services

import (
	"github.com/stretchr/testify/mock"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

// MockSeriesSource is a mock for the SeriesSource interface
type MockSeriesSource struct {
	mock.Mock
}

func (m *MockSeriesSource) Periods() []domain.Period {
	args := m.Called()
	ps, _ := args.Get(0).([]domain.Period)
	return ps
}

func (m *MockSeriesSource) TotalsByLevel(period domain.Period) domain.LevelTotals {
	args := m.Called(period)
	t, _ := args.Get(0).(domain.LevelTotals)
	return t
}

func (m *MockSeriesSource) AgeSplit(period domain.Period, levels []domain.CourseLevel) domain.AgeSplit {
	args := m.Called(period, levels)
	return args.Get(0).(domain.AgeSplit)
}

func (m *MockSeriesSource) EthnicityBreakdown(level domain.CourseLevel, period domain.Period) ([]domain.LabeledValue, error) {
	args := m.Called(level, period)
	vs, _ := args.Get(0).([]domain.LabeledValue)
	return vs, args.Error(1)
}

func (m *MockSeriesSource) TimeSeries(level domain.CourseLevel, feature domain.Feature, periods ...domain.Period) (domain.Series, error) {
	args := m.Called(level, feature, periods)
	return args.Get(0).(domain.Series), args.Error(1)
}

func (m *MockSeriesSource) Comparison(metric domain.Metric, periods []domain.Period, qts domain.QTSStatus) ([]domain.Series, error) {
	args := m.Called(metric, periods, qts)
	ss, _ := args.Get(0).([]domain.Series)
	return ss, args.Error(1)
}
