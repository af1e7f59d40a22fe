package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/infrastructure"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/series"
	api "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/api/v1"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

// SeriesSource computes series over one dataset. *series.Builder is the
// production implementation.
type SeriesSource interface {
	Periods() []domain.Period
	TotalsByLevel(period domain.Period) domain.LevelTotals
	AgeSplit(period domain.Period, levels []domain.CourseLevel) domain.AgeSplit
	EthnicityBreakdown(level domain.CourseLevel, period domain.Period) ([]domain.LabeledValue, error)
	TimeSeries(level domain.CourseLevel, feature domain.Feature, periods ...domain.Period) (domain.Series, error)
	Comparison(metric domain.Metric, periods []domain.Period, qts domain.QTSStatus) ([]domain.Series, error)
}

var _ SeriesSource = (*series.Builder)(nil)

// Binder decodes and validates the parameters of one request into dst.
type Binder func(dst interface{}) error

// DashboardService answers series and page requests
type DashboardService struct {
	source  SeriesSource
	metrics *infrastructure.BusinessMetrics
	tracer  trace.Tracer
	logger  *slog.Logger
}

// NewDashboardService creates a dashboard service over source. A nil source
// makes every computation fail with ErrDatasetNotLoaded; metrics may be nil.
func NewDashboardService(source SeriesSource, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		source:  source,
		metrics: metrics,
		tracer:  otel.Tracer(infrastructure.InstrumentationName),
		logger:  logger.With(slog.String("component", "dashboard_service")),
	}
}

// Periods returns the known periods in canonical order.
func (s *DashboardService) Periods(ctx context.Context) ([]domain.Period, error) {
	if s.source == nil {
		return nil, ErrDatasetNotLoaded
	}
	return s.source.Periods(), nil
}

// Options lists the values every dashboard control can take.
func (s *DashboardService) Options(ctx context.Context) (*api.Options, error) {
	periods, err := s.Periods(ctx)
	if err != nil {
		return nil, err
	}
	return &api.Options{
		Periods:     api.NewPeriodOptions(periods),
		Levels:      domain.CourseLevels,
		Features:    domain.FeatureOptions,
		Metrics:     domain.Metrics,
		QTSStatuses: []domain.QTSStatus{domain.QTSAwarded, domain.QTSNotAwarded, domain.QTSTotal},
		Charts:      api.Charts,
		Pages:       api.Pages,
	}, nil
}

// Totals computes the course level totals of the Awarded QTS rows of a
// period.
func (s *DashboardService) Totals(ctx context.Context, req api.TotalsRequest) (view *api.TotalsView, err error) {
	ctx, done := s.begin(ctx, api.ChartTotals, attribute.String("period", req.Period))
	defer func() { done(err) }()

	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	period, err := s.knownPeriod(req.Period)
	if err != nil {
		return nil, err
	}

	return &api.TotalsView{
		Period:      period,
		PeriodLabel: period.Label(),
		Totals:      s.source.TotalsByLevel(period).Values(),
	}, nil
}

// Age computes the mean age split of a period over the requested levels.
// A nil Levels means every level.
func (s *DashboardService) Age(ctx context.Context, req api.AgeRequest) (view *api.AgeView, err error) {
	ctx, done := s.begin(ctx, api.ChartAge, attribute.String("period", req.Period))
	defer func() { done(err) }()

	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	period, err := s.knownPeriod(req.Period)
	if err != nil {
		return nil, err
	}
	levels := domain.CourseLevels
	if req.Levels != nil {
		if levels, err = parseLevels(req.Levels); err != nil {
			return nil, err
		}
	}

	split := s.source.AgeSplit(period, levels)
	return &api.AgeView{
		Period:      period,
		PeriodLabel: period.Label(),
		Levels:      levels,
		Split:       split,
		Values:      split.Values(),
	}, nil
}

// Ethnicity computes the ethnicity breakdown of a level in a period.
func (s *DashboardService) Ethnicity(ctx context.Context, req api.EthnicityRequest) (view *api.EthnicityView, err error) {
	ctx, done := s.begin(ctx, api.ChartEthnicity,
		attribute.String("period", req.Period),
		attribute.String("level", req.Level))
	defer func() { done(err) }()

	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	period, err := s.knownPeriod(req.Period)
	if err != nil {
		return nil, err
	}
	level, err := parseLevel(req.Level)
	if err != nil {
		return nil, err
	}

	values, err := s.source.EthnicityBreakdown(level, period)
	if err != nil {
		return nil, err
	}
	return &api.EthnicityView{
		Level:       level,
		Period:      period,
		PeriodLabel: period.Label(),
		Values:      values,
	}, nil
}

// TimeSeries computes n_total over time for a level and feature.
func (s *DashboardService) TimeSeries(ctx context.Context, req api.TimeSeriesRequest) (view *api.TimeSeriesView, err error) {
	ctx, done := s.begin(ctx, api.ChartTimeSeries,
		attribute.String("level", req.Level),
		attribute.String("feature", req.Feature))
	defer func() { done(err) }()

	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	level, err := parseLevel(req.Level)
	if err != nil {
		return nil, err
	}
	feature, err := domain.ParseFeature(req.Feature)
	if err != nil {
		return nil, err
	}
	periods, err := s.knownPeriods(req.Periods)
	if err != nil {
		return nil, err
	}

	ts, err := s.source.TimeSeries(level, feature, periods...)
	if err != nil {
		return nil, err
	}
	return &api.TimeSeriesView{
		Level:   level,
		Feature: feature.Value,
		Series:  ts,
	}, nil
}

// Comparison computes one line per course level of a metric over time.
func (s *DashboardService) Comparison(ctx context.Context, req api.ComparisonRequest) (view *api.ComparisonView, err error) {
	ctx, done := s.begin(ctx, api.ChartComparison,
		attribute.String("metric", req.Metric),
		attribute.String("qts", req.QTS))
	defer func() { done(err) }()

	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	metric, err := domain.ParseMetric(req.Metric)
	if err != nil {
		return nil, err
	}
	qts := domain.QTSAwarded
	if req.QTS != "" {
		if qts, err = domain.ParseQTSStatus(req.QTS); err != nil {
			return nil, err
		}
	}

	var periods []domain.Period
	if req.From != "" || req.To != "" {
		periods, err = s.periodRange(req.From, req.To)
	} else {
		periods, err = s.knownPeriods(req.Periods)
	}
	if err != nil {
		return nil, err
	}

	lines, err := s.source.Comparison(metric, periods, qts)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		periods = s.source.Periods()
	}
	domain.SortPeriods(periods)
	return &api.ComparisonView{
		Metric:      metric,
		MetricLabel: metric.Label(),
		QTS:         qts,
		Periods:     periods,
		Series:      lines,
	}, nil
}

// Compute answers a request for one chart kind, binding its parameters
// with bind. The result is one of the api view types.
func (s *DashboardService) Compute(ctx context.Context, chart string, bind Binder) (interface{}, error) {
	switch chart {
	case api.ChartTotals:
		var req api.TotalsRequest
		if err := bind(&req); err != nil {
			return nil, err
		}
		return s.Totals(ctx, req)
	case api.ChartAge:
		var req api.AgeRequest
		if err := bind(&req); err != nil {
			return nil, err
		}
		return s.Age(ctx, req)
	case api.ChartEthnicity:
		var req api.EthnicityRequest
		if err := bind(&req); err != nil {
			return nil, err
		}
		return s.Ethnicity(ctx, req)
	case api.ChartTimeSeries:
		var req api.TimeSeriesRequest
		if err := bind(&req); err != nil {
			return nil, err
		}
		return s.TimeSeries(ctx, req)
	case api.ChartComparison:
		var req api.ComparisonRequest
		if err := bind(&req); err != nil {
			return nil, err
		}
		return s.Comparison(ctx, req)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownChart, chart)
}

// Page assembles every chart of a dashboard page. Independent charts are
// computed concurrently; the first failure cancels the rest.
func (s *DashboardService) Page(ctx context.Context, page string, req api.PageRequest) (*api.PageBundle, error) {
	var level domain.CourseLevel
	switch page {
	case api.PageHome, api.PageAnalysis:
	case api.PageUndergraduate:
		level = domain.CourseUndergraduate
	case api.PagePostgraduate:
		level = domain.CoursePostgraduate
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}

	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	req = s.pageDefaults(page, req)
	bundle := &api.PageBundle{Page: page}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	switch page {
	case api.PageHome:
		g.Go(func() (err error) {
			bundle.Totals, err = s.Totals(gctx, api.TotalsRequest{Period: req.Period})
			return err
		})
		g.Go(func() (err error) {
			bundle.Age, err = s.Age(gctx, api.AgeRequest{Period: req.Period, Levels: req.Levels})
			return err
		})
	case api.PageUndergraduate, api.PagePostgraduate:
		g.Go(func() (err error) {
			bundle.Ethnicity, err = s.Ethnicity(gctx, api.EthnicityRequest{Level: string(level), Period: req.Period})
			return err
		})
		g.Go(func() (err error) {
			bundle.TimeSeries, err = s.TimeSeries(gctx, api.TimeSeriesRequest{Level: string(level), Feature: req.Feature})
			return err
		})
	case api.PageAnalysis:
		g.Go(func() (err error) {
			bundle.Comparison, err = s.Comparison(gctx, api.ComparisonRequest{
				Metric: req.Metric, QTS: req.QTS, From: req.From, To: req.To,
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "page assembled",
		slog.String("page", page),
		slog.String("period", req.Period),
		slog.Duration("duration", time.Since(start)))
	return bundle, nil
}

// pageDefaults fills the controls a page request left empty. The home page
// starts on undergraduates only.
func (s *DashboardService) pageDefaults(page string, req api.PageRequest) api.PageRequest {
	if req.Period == "" {
		if periods := s.source.Periods(); len(periods) > 0 {
			req.Period = string(periods[0])
		}
	}
	if page == api.PageHome && req.Levels == nil {
		req.Levels = []string{string(domain.CourseUndergraduate)}
	}
	if req.Feature == "" {
		req.Feature = string(domain.QTSAwarded)
	}
	if req.Metric == "" {
		req.Metric = string(domain.Metrics[0].Metric)
	}
	return req
}

// begin opens a span for one computation and returns the function that
// closes it and records metrics.
func (s *DashboardService) begin(ctx context.Context, chart string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "series."+chart, trace.WithAttributes(attrs...))

	return ctx, func(err error) {
		duration := time.Since(start)
		infrastructure.RecordSeriesMetrics(ctx, s.metrics, chart, duration, err)
		if err != nil {
			infrastructure.RecordError(ctx, err)
			s.logger.WarnContext(ctx, "series request rejected",
				slog.String("chart", chart),
				slog.String("error", err.Error()))
		} else {
			s.logger.DebugContext(ctx, "series computed",
				slog.String("chart", chart),
				slog.Duration("duration", duration))
		}
		span.End()
	}
}

func (s *DashboardService) ready(ctx context.Context) error {
	if s.source == nil {
		return ErrDatasetNotLoaded
	}
	return ctx.Err()
}

// knownPeriod parses raw and checks the dataset has rows for it.
func (s *DashboardService) knownPeriod(raw string) (domain.Period, error) {
	p, err := domain.ParsePeriod(raw)
	if err != nil {
		return "", err
	}
	for _, known := range s.source.Periods() {
		if known == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", series.ErrUnknownPeriod, raw)
}

func (s *DashboardService) knownPeriods(raw []string) ([]domain.Period, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]domain.Period, 0, len(raw))
	for _, r := range raw {
		p, err := s.knownPeriod(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// periodRange returns the known periods from..to inclusive. An empty bound
// is open. Reversed bounds are swapped.
func (s *DashboardService) periodRange(from, to string) ([]domain.Period, error) {
	known := s.source.Periods()
	if len(known) == 0 {
		return nil, nil
	}
	lo, hi := known[0], known[len(known)-1]
	var err error
	if from != "" {
		if lo, err = s.knownPeriod(from); err != nil {
			return nil, err
		}
	}
	if to != "" {
		if hi, err = s.knownPeriod(to); err != nil {
			return nil, err
		}
	}
	if hi.Before(lo) {
		lo, hi = hi, lo
	}

	var out []domain.Period
	for _, p := range known {
		if !p.Before(lo) && !hi.Before(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func parseLevel(raw string) (domain.CourseLevel, error) {
	level, err := domain.ParseCourseLevel(raw)
	if err != nil {
		return "", err
	}
	if level.IsAggregate() {
		return "", fmt.Errorf("%w: %q", series.ErrInvalidLevel, raw)
	}
	return level, nil
}

func parseLevels(raw []string) ([]domain.CourseLevel, error) {
	out := make([]domain.CourseLevel, 0, len(raw))
	for _, r := range raw {
		l, err := parseLevel(r)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
