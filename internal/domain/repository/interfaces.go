package repository

import (
	"context"

	"MarketPulse/internal/domain/models"
)

// MetricProvider produces the current reading for one indicator.
// Implementations must return a usable reading or an error the caller
// substitutes with fallback data; they never block past ctx.
type MetricProvider interface {
	Name() models.IndicatorName
	Fetch(ctx context.Context) (models.IndicatorReading, error)
}

// PriceSource serves historical OHLCV series for an asset symbol.
type PriceSource interface {
	FetchSeries(ctx context.Context, symbol string, period Period) (models.PriceSeries, error)
}

// TrendSource supplies the externally computed trend score in [0,100].
// The core never derives trend from the valuation indicators.
type TrendSource interface {
	TrendScore(ctx context.Context) (float64, error)
}

type Metrics interface {
	RecordFetch(indicator string)
	RecordError(kind string)
	RecordIndicatorValue(indicator string, value float64)
	RecordLatency(op string, seconds float64)
}
