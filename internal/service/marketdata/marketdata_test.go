package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/domain/repository"
	"MarketPulse/internal/service/cache"
)

type stubSource struct {
	series models.PriceSeries
	err    error
	calls  int
}

func (s *stubSource) FetchSeries(_ context.Context, symbol string, _ repository.Period) (models.PriceSeries, error) {
	s.calls++
	if s.err != nil {
		return models.PriceSeries{}, s.err
	}
	out := s.series
	out.Symbol = symbol
	return out, nil
}

func fixedSeries(n int) models.PriceSeries {
	bars := make([]models.Bar, n)
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = models.Bar{Date: day.AddDate(0, 0, i), Close: 100 + float64(i)}
	}
	return models.PriceSeries{Source: "stub", Bars: bars}
}

func TestDemoSeriesDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	a := DemoSeries("SPY", repository.Period1Y, now)
	b := DemoSeries("SPY", repository.Period1Y, now)
	require.Equal(t, a.Len(), b.Len())
	assert.Equal(t, a.Bars, b.Bars, "same seed must reproduce the same series")

	assert.Equal(t, repository.Period1Y.Days(), a.Len())
	assert.InDelta(t, 400.0, a.Bars[0].Close, 1e-9, "SPY starts at its base price")

	other := DemoSeries("GLD", repository.Period1Y, now)
	assert.InDelta(t, 100.0, other.Bars[0].Close, 1e-9)
}

func TestDemoSeriesBarShape(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s := DemoSeries("SPY", repository.Period3M, now)
	for i, bar := range s.Bars {
		assert.GreaterOrEqual(t, bar.High, bar.Low, "bar %d", i)
		assert.GreaterOrEqual(t, bar.Open, bar.Low, "bar %d", i)
		assert.LessOrEqual(t, bar.Open, bar.High, "bar %d", i)
		assert.Positive(t, bar.Volume, "bar %d", i)
		if i > 0 {
			assert.True(t, bar.Date.After(s.Bars[i-1].Date), "dates strictly increasing")
		}
	}
}

func TestDemoCAPESeriesBounds(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	series := DemoCAPESeries(now)
	require.NotEmpty(t, series)
	for _, pt := range series {
		assert.GreaterOrEqual(t, pt.Value, 10.0)
		assert.LessOrEqual(t, pt.Value, 40.0)
	}
	assert.Equal(t, 1990, series[0].Date.Year())
}

func TestPercentile(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 3.0, percentile(vals, 50), 1e-9)
	assert.InDelta(t, 4.0, percentile(vals, 75), 1e-9)
	assert.InDelta(t, 1.0, percentile(vals, 0), 1e-9)
	assert.InDelta(t, 5.0, percentile(vals, 100), 1e-9)
	assert.InDelta(t, 0.0, percentile(nil, 50), 1e-9)
	assert.InDelta(t, 7.0, percentile([]float64{7}, 50), 1e-9)
}

func TestSentimentScore(t *testing.T) {
	// vixP75=100 drives the score to exactly 68.5: 50+0+6+12.5.
	assert.InDelta(t, 68.5, SentimentScore(100, 0.8, 350), 1e-9)
	// Extreme fear clips at zero.
	assert.InDelta(t, 0.0, SentimentScore(400, 0.3, 800), 1e-9)
	// Extreme greed clips at one hundred.
	assert.InDelta(t, 100.0, SentimentScore(0, 2.0, 0), 1e-9)
}

func TestSentimentProvider(t *testing.T) {
	src := &stubSource{series: fixedSeries(252)}
	p := NewSentimentProvider(src)
	require.Equal(t, models.IndicatorSentiment, p.Name())

	r, err := p.Fetch(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r.Value, 0.0)
	assert.LessOrEqual(t, r.Value, 100.0)
	require.NotNil(t, r.VIX)
	assert.InDelta(t, 351.0, *r.VIX, 1e-9, "last close of the stub series")
	require.NotNil(t, r.PutCallRatio)
	require.NotNil(t, r.HYSpread)
}

func TestSentimentProviderSourceError(t *testing.T) {
	p := NewSentimentProvider(&stubSource{err: errors.New("down")})
	_, err := p.Fetch(context.Background())
	assert.Error(t, err)
}

func TestCAPEProvider(t *testing.T) {
	p := NewCAPEProvider()
	require.Equal(t, models.IndicatorCAPE, p.Name())

	r, err := p.Fetch(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, r.Series)
	assert.InDelta(t, r.Series[len(r.Series)-1].Value, r.Value, 1e-9)
	require.NotNil(t, r.Percentile)
	assert.GreaterOrEqual(t, *r.Percentile, 10.0)
	assert.LessOrEqual(t, *r.Percentile, 40.0)
}

func TestPEProvider(t *testing.T) {
	src := &stubSource{series: fixedSeries(10)}
	p := NewPEProvider(src)
	r, err := p.Fetch(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 22.5, r.Value, 1e-9)
	require.NotNil(t, r.IndexPrice)
	assert.InDelta(t, 109.0, *r.IndexPrice, 1e-9)
}

func TestBuffettProvider(t *testing.T) {
	r, err := NewBuffettProvider().Fetch(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 180.0, r.Value, 1e-9, "45000/25000 as a percent")
	require.NotNil(t, r.MarketCap)
	require.NotNil(t, r.GDP)
}

func TestProvidersCoverAllIndicators(t *testing.T) {
	ps := Providers(&stubSource{series: fixedSeries(30)})
	require.Len(t, ps, len(models.IndicatorNames))
	seen := map[models.IndicatorName]bool{}
	for _, p := range ps {
		seen[p.Name()] = true
	}
	for _, name := range models.IndicatorNames {
		assert.True(t, seen[name], "missing provider for %s", name)
	}
}

func TestRoutedSourceFallback(t *testing.T) {
	equities := &stubSource{err: errors.New("stooq down")}
	crypto := &stubSource{series: fixedSeries(5)}
	fallback := &stubSource{series: fixedSeries(5)}
	r := NewRoutedSource(equities, crypto, fallback, zerolog.Nop())

	s, err := r.FetchSeries(context.Background(), "^GSPC", repository.Period1Y)
	require.NoError(t, err)
	assert.Equal(t, 1, equities.calls)
	assert.Equal(t, 1, fallback.calls)
	assert.Equal(t, 0, crypto.calls)
	assert.Equal(t, "^GSPC", s.Symbol)

	_, err = r.FetchSeries(context.Background(), "BTC-USD", repository.Period1Y)
	require.NoError(t, err)
	assert.Equal(t, 1, crypto.calls, "crypto symbols route to the crypto source")
}

func TestRoutedSourceContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	equities := &stubSource{err: errors.New("down")}
	r := NewRoutedSource(equities, &stubSource{}, &stubSource{}, zerolog.Nop())
	_, err := r.FetchSeries(ctx, "^GSPC", repository.Period1Y)
	assert.ErrorIs(t, err, context.Canceled, "cancellation is not masked by fallback")
}

func TestCachedProvider(t *testing.T) {
	inner := &countingProvider{name: models.IndicatorMarginDebt}
	p := NewCachedProvider(inner, cache.NewTTLCache())

	first, err := p.Fetch(context.Background())
	require.NoError(t, err)
	second, err := p.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls, "second fetch must hit the cache")
	assert.Equal(t, first, second)
	assert.Equal(t, models.IndicatorMarginDebt, p.Name())
}

func TestCachedProviderErrorNotCached(t *testing.T) {
	inner := &countingProvider{name: models.IndicatorCAPE, err: errors.New("flaky")}
	p := NewCachedProvider(inner, cache.NewTTLCache())

	_, err := p.Fetch(context.Background())
	require.Error(t, err)
	inner.err = nil
	_, err = p.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedPriceSource(t *testing.T) {
	inner := &stubSource{series: fixedSeries(5)}
	s := NewCachedPriceSource(inner, cache.NewTTLCache())

	_, err := s.FetchSeries(context.Background(), "^GSPC", repository.Period1Y)
	require.NoError(t, err)
	_, err = s.FetchSeries(context.Background(), "^GSPC", repository.Period1Y)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	// Different period is a different cache entry.
	_, err = s.FetchSeries(context.Background(), "^GSPC", repository.Period3M)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestTTLTiers(t *testing.T) {
	assert.Equal(t, TTLMonthly, TTLFor(models.IndicatorCAPE))
	assert.Equal(t, TTLQuarterly, TTLFor(models.IndicatorBuffett))
	assert.Equal(t, TTLQuarterly, TTLFor(models.IndicatorMarginDebt))
	assert.Equal(t, TTLDaily, TTLFor(models.IndicatorSentiment))
}

func TestCatalog(t *testing.T) {
	groups := Catalog()
	require.NotEmpty(t, groups)
	assert.True(t, KnownSymbol("^GSPC"))
	assert.True(t, KnownSymbol("BTC-USD"))
	assert.False(t, KnownSymbol("NOPE"))
}

func TestStaticTrendSource(t *testing.T) {
	v, err := NewStaticTrendSource(60).TrendScore(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 60.0, v, 1e-9)
}

type countingProvider struct {
	name  models.IndicatorName
	err   error
	calls int
}

func (p *countingProvider) Name() models.IndicatorName { return p.name }

func (p *countingProvider) Fetch(context.Context) (models.IndicatorReading, error) {
	p.calls++
	if p.err != nil {
		return models.IndicatorReading{}, p.err
	}
	return models.IndicatorReading{Name: p.name, Value: 1, ObservedAt: time.Now()}, nil
}
