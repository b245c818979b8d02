package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/domain/models"
	domrepo "MarketPulse/internal/domain/repository"
	"MarketPulse/internal/services/scoring"
)

type fakeProvider struct {
	name  models.IndicatorName
	value float64
	err   error
}

func (p *fakeProvider) Name() models.IndicatorName { return p.name }

func (p *fakeProvider) Fetch(context.Context) (models.IndicatorReading, error) {
	if p.err != nil {
		return models.IndicatorReading{}, p.err
	}
	return models.IndicatorReading{
		Name:       p.name,
		Value:      p.value,
		Source:     "fake",
		ObservedAt: time.Now(),
		Series:     []models.SeriesPoint{{Date: time.Now(), Value: p.value}},
	}, nil
}

type fakeTrend struct {
	score float64
	err   error
}

func (t *fakeTrend) TrendScore(context.Context) (float64, error) { return t.score, t.err }

type fakePrices struct {
	series models.PriceSeries
	err    error
}

func (p *fakePrices) FetchSeries(_ context.Context, symbol string, _ domrepo.Period) (models.PriceSeries, error) {
	if p.err != nil {
		return models.PriceSeries{}, p.err
	}
	out := p.series
	out.Symbol = symbol
	return out, nil
}

type noopMetrics struct{}

func (noopMetrics) RecordFetch(string)                   {}
func (noopMetrics) RecordError(string)                   {}
func (noopMetrics) RecordIndicatorValue(string, float64) {}
func (noopMetrics) RecordLatency(string, float64)        {}

func greenProviders() []domrepo.MetricProvider {
	// values chosen to classify green for every indicator
	return []domrepo.MetricProvider{
		&fakeProvider{name: models.IndicatorCAPE, value: 15},
		&fakeProvider{name: models.IndicatorPERatio, value: 14},
		&fakeProvider{name: models.IndicatorBuffett, value: 100},
		&fakeProvider{name: models.IndicatorMarginDebt, value: -2},
		&fakeProvider{name: models.IndicatorConcentration, value: 20},
		&fakeProvider{name: models.IndicatorSentiment, value: 20},
	}
}

func newUC(providers []domrepo.MetricProvider, trend domrepo.TrendSource, prices domrepo.PriceSource) *DashboardUseCase {
	if trend == nil {
		trend = &fakeTrend{score: 60}
	}
	if prices == nil {
		prices = &fakePrices{}
	}
	return NewDashboardUseCase(providers, trend, prices, nil, noopMetrics{}, zerolog.Nop())
}

func TestOverviewAllGreen(t *testing.T) {
	uc := newUC(greenProviders(), &fakeTrend{score: 60}, nil)
	ov, err := uc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, ov.Indicators, 6)
	assert.Nil(t, ov.Errors)
	assert.InDelta(t, 25.0, ov.Composite.ValuationScore, 1e-9)
	assert.Equal(t, models.ActionAccumulate, ov.Composite.Action)

	// display order is the canonical indicator order
	for i, name := range models.IndicatorNames {
		assert.Equal(t, name, ov.Indicators[i].Reading.Name)
	}
}

func TestOverviewPartialFailure(t *testing.T) {
	providers := greenProviders()
	providers[2] = &fakeProvider{name: models.IndicatorBuffett, err: errors.New("feed down")}

	uc := newUC(providers, nil, nil)
	ov, err := uc.Overview(context.Background())
	require.NoError(t, err, "one failed tile must not fail the page")
	assert.Len(t, ov.Indicators, 5)
	require.Contains(t, ov.Errors, "buffett")
	assert.InDelta(t, 25.0, ov.Composite.ValuationScore, 1e-9, "score uses surviving indicators only")
}

func TestOverviewAllFailed(t *testing.T) {
	providers := []domrepo.MetricProvider{
		&fakeProvider{name: models.IndicatorCAPE, err: errors.New("down")},
		&fakeProvider{name: models.IndicatorSentiment, err: errors.New("down")},
	}
	uc := newUC(providers, nil, nil)
	ov, err := uc.Overview(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ov.Indicators)
	assert.InDelta(t, 50.0, ov.Composite.ValuationScore, 1e-9, "no data means neutral score")
	assert.Len(t, ov.Errors, 2)
}

func TestOverviewTrendSourceFailure(t *testing.T) {
	uc := newUC(greenProviders(), &fakeTrend{err: errors.New("no trend")}, nil)
	ov, err := uc.Overview(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 50.0, ov.Composite.TrendScore, 1e-9)
	assert.Contains(t, ov.Errors, "trend")
}

func TestMetric(t *testing.T) {
	uc := newUC(greenProviders(), nil, nil)

	ci, err := uc.Metric(context.Background(), models.IndicatorCAPE, false)
	require.NoError(t, err)
	assert.Equal(t, models.StateGreen, ci.State)
	assert.Nil(t, ci.Reading.Series, "series omitted unless history requested")

	ci, err = uc.Metric(context.Background(), models.IndicatorCAPE, true)
	require.NoError(t, err)
	assert.NotEmpty(t, ci.Reading.Series)
}

func TestMetricUnknown(t *testing.T) {
	uc := newUC(greenProviders(), nil, nil)
	_, err := uc.Metric(context.Background(), "shoe_size", false)
	assert.ErrorIs(t, err, scoring.ErrUnknownIndicator)
}

func TestMetricProviderError(t *testing.T) {
	providers := []domrepo.MetricProvider{
		&fakeProvider{name: models.IndicatorCAPE, err: errors.New("down")},
	}
	uc := newUC(providers, nil, nil)
	_, err := uc.Metric(context.Background(), models.IndicatorCAPE, false)
	assert.Error(t, err)
}

func TestCompositeTrendOverride(t *testing.T) {
	uc := newUC(greenProviders(), &fakeTrend{score: 20}, nil)

	cs, err := uc.Composite(context.Background(), models.Float64Ptr(80))
	require.NoError(t, err)
	assert.InDelta(t, 80.0, cs.TrendScore, 1e-9, "override wins over the source")

	cs, err = uc.Composite(context.Background(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, cs.TrendScore, 1e-9)
}

func TestTechnical(t *testing.T) {
	bars := make([]models.Bar, 60)
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = models.Bar{Date: day.AddDate(0, 0, i), Close: 100 + float64(i)}
	}
	uc := newUC(greenProviders(), nil, &fakePrices{series: models.PriceSeries{Bars: bars}})

	sum, err := uc.Technical(context.Background(), "^GSPC", domrepo.Period1Y)
	require.NoError(t, err)
	assert.Equal(t, "^GSPC", sum.Symbol)
	assert.Equal(t, 60, sum.BarsConsidered)
	assert.True(t, sum.SMA50.Available)
	assert.False(t, sum.SMA100.Available)
}

func TestTechnicalEmptySymbol(t *testing.T) {
	uc := newUC(greenProviders(), nil, nil)
	_, err := uc.Technical(context.Background(), "", domrepo.Period1Y)
	assert.Error(t, err)
}

func TestTechnicalSourceError(t *testing.T) {
	uc := newUC(greenProviders(), nil, &fakePrices{err: errors.New("down")})
	_, err := uc.Technical(context.Background(), "^GSPC", domrepo.Period1Y)
	assert.Error(t, err)
}
