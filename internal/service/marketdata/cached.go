package marketdata

import (
	"context"
	"fmt"
	"time"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/domain/repository"
	"MarketPulse/internal/service/cache"
)

// Refresh cadence tiers. Each indicator caches at the cadence its
// underlying data actually changes at.
const (
	TTLPrice     = 5 * time.Minute
	TTLDaily     = time.Hour
	TTLMonthly   = 24 * time.Hour
	TTLQuarterly = 7 * 24 * time.Hour
)

// TTLFor returns the cache tier of one indicator.
func TTLFor(name models.IndicatorName) time.Duration {
	switch name {
	case models.IndicatorCAPE:
		return TTLMonthly
	case models.IndicatorBuffett, models.IndicatorMarginDebt:
		return TTLQuarterly
	default:
		return TTLDaily
	}
}

// CachedProvider memoizes a MetricProvider's reading for its TTL tier.
type CachedProvider struct {
	next  repository.MetricProvider
	cache *cache.TTLCache
	ttl   time.Duration
}

func NewCachedProvider(next repository.MetricProvider, c *cache.TTLCache) *CachedProvider {
	return &CachedProvider{next: next, cache: c, ttl: TTLFor(next.Name())}
}

func (p *CachedProvider) Name() models.IndicatorName { return p.next.Name() }

func (p *CachedProvider) Fetch(ctx context.Context) (models.IndicatorReading, error) {
	key := "indicator:" + string(p.next.Name())
	if v, ok := p.cache.Get(key); ok {
		if reading, ok := v.(models.IndicatorReading); ok {
			return reading, nil
		}
	}

	reading, err := p.next.Fetch(ctx)
	if err != nil {
		return models.IndicatorReading{}, err
	}
	p.cache.Set(key, reading, p.ttl)
	return reading, nil
}

// CachedPriceSource memoizes series fetches at the price tier.
type CachedPriceSource struct {
	next  repository.PriceSource
	cache *cache.TTLCache
	ttl   time.Duration
}

func NewCachedPriceSource(next repository.PriceSource, c *cache.TTLCache) *CachedPriceSource {
	return &CachedPriceSource{next: next, cache: c, ttl: TTLPrice}
}

func (s *CachedPriceSource) FetchSeries(ctx context.Context, symbol string, period repository.Period) (models.PriceSeries, error) {
	key := fmt.Sprintf("series:%s:%s", symbol, period)
	if v, ok := s.cache.Get(key); ok {
		if series, ok := v.(models.PriceSeries); ok {
			return series, nil
		}
	}

	series, err := s.next.FetchSeries(ctx, symbol, period)
	if err != nil {
		return models.PriceSeries{}, err
	}
	s.cache.Set(key, series, s.ttl)
	return series, nil
}
