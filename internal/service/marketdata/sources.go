package marketdata

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/domain/repository"
)

// ErrInsufficientData marks a series too short or empty for the
// requested computation.
var ErrInsufficientData = errors.New("marketdata: insufficient data")

// RoutedSource picks the upstream by symbol class and falls back to
// synthetic data when the upstream fails. Partial upstream outages must
// never blank the dashboard, so the fallback is unconditional.
type RoutedSource struct {
	equities repository.PriceSource
	crypto   repository.PriceSource
	fallback repository.PriceSource
	log      zerolog.Logger
}

func NewRoutedSource(equities, crypto, fallback repository.PriceSource, log zerolog.Logger) *RoutedSource {
	return &RoutedSource{
		equities: equities,
		crypto:   crypto,
		fallback: fallback,
		log:      log.With().Str("component", "price_router").Logger(),
	}
}

func (r *RoutedSource) FetchSeries(ctx context.Context, symbol string, period repository.Period) (models.PriceSeries, error) {
	primary := r.equities
	if IsCryptoSymbol(symbol) {
		primary = r.crypto
	}

	series, err := primary.FetchSeries(ctx, symbol, period)
	if err == nil {
		return series, nil
	}
	if ctx.Err() != nil {
		return models.PriceSeries{}, ctx.Err()
	}

	r.log.Warn().Err(err).Str("symbol", symbol).Msg("upstream failed, serving synthetic series")
	return r.fallback.FetchSeries(ctx, symbol, period)
}
