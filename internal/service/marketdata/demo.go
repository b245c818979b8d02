package marketdata

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"time"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/domain/repository"
	"MarketPulse/pkg/util"
)

// demoSeed keeps all synthetic data reproducible across restarts.
const demoSeed = 42

// DemoSource serves fully synthetic price history. It backs the demo
// mode and doubles as the fallback when an upstream source fails.
type DemoSource struct {
	now func() time.Time
}

func NewDemoSource() *DemoSource {
	return &DemoSource{now: time.Now}
}

// FetchSeries never fails and never blocks on the network.
func (d *DemoSource) FetchSeries(_ context.Context, symbol string, period repository.Period) (models.PriceSeries, error) {
	return DemoSeries(symbol, period, d.now()), nil
}

// DemoSeries builds a deterministic daily OHLCV series ending today.
// Returns are a mild positive drift plus quarterly cycles plus gaussian
// noise, so moving averages, RSI and drawdown all have something to see.
func DemoSeries(symbol string, period repository.Period, now time.Time) models.PriceSeries {
	n := period.Days()
	rng := rand.New(rand.NewSource(demoSeed))

	base := 100.0
	if symbol == "SPY" || symbol == "^GSPC" {
		base = 400
	}

	closes := make([]float64, n)
	closes[0] = base
	for i := 1; i < n; i++ {
		ret := rng.NormFloat64()*0.015 + 0.0005
		ret += (0.1 / 252) * float64(i) / float64(n)
		ret += 0.02 * math.Sin(2*math.Pi*float64(i)/63)
		closes[i] = closes[i-1] * (1 + ret)
	}

	start := now.AddDate(0, 0, -(n - 1))
	bars := make([]models.Bar, n)
	for i, c := range closes {
		high := c * (1 + rng.Float64()*0.01)
		low := c * (1 - rng.Float64()*0.01)
		open := low + rng.Float64()*(high-low)
		bars[i] = models.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  c,
			Volume: float64(1_000_000 + rng.Intn(9_000_000)),
		}
	}
	return models.PriceSeries{Symbol: symbol, Source: "demo", Bars: bars}
}

// DemoCAPESeries builds the synthetic monthly CAPE history from 1990.
// A slow upward trend plus a ten year cycle plus noise, clipped to the
// historically plausible 10..40 band.
func DemoCAPESeries(now time.Time) []models.SeriesPoint {
	start := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	months := monthsBetween(start, now)
	if months < 1 {
		months = 1
	}
	rng := rand.New(rand.NewSource(demoSeed))

	out := make([]models.SeriesPoint, months)
	for i := 0; i < months; i++ {
		v := 20.0
		if months > 1 {
			v += 5 * float64(i) / float64(months-1)
		}
		v += 5 * math.Sin(2*math.Pi*float64(i)/120)
		v += rng.NormFloat64() * 2
		out[i] = models.SeriesPoint{Date: start.AddDate(0, i, 0), Value: util.Clamp(v, 10, 40)}
	}
	return out
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// percentile computes the p-th percentile with linear interpolation
// between ranks, matching the usual numeric-library convention.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
