package marketdata

import (
	"context"
	"fmt"
	"time"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/domain/repository"
	"MarketPulse/pkg/util"
)

// Demo constants for the observables without a free public feed. Each
// carries its real upstream in the source label so the UI can show
// what the number stands in for.
const (
	demoPERatio       = 22.5
	demoMarketCapBln  = 45000.0
	demoGDPBln        = 25000.0
	demoMarginDebtYoY = 8.5
	demoConcentration = 32.5
	demoPutCallRatio  = 0.8
	demoHYSpreadBps   = 350.0
)

// CAPEProvider serves the Shiller CAPE ratio from the synthetic
// monthly history. The reading value is the latest month; the 85th
// percentile of the full history rides along for the gauge.
type CAPEProvider struct {
	now func() time.Time
}

func NewCAPEProvider() *CAPEProvider {
	return &CAPEProvider{now: time.Now}
}

func (p *CAPEProvider) Name() models.IndicatorName { return models.IndicatorCAPE }

func (p *CAPEProvider) Fetch(_ context.Context) (models.IndicatorReading, error) {
	now := p.now()
	series := DemoCAPESeries(now)
	values := make([]float64, len(series))
	for i, pt := range series {
		values[i] = pt.Value
	}
	return models.IndicatorReading{
		Name:       models.IndicatorCAPE,
		Value:      values[len(values)-1],
		Source:     "Yale/Shiller (synthetic)",
		ObservedAt: now,
		Series:     series,
		Percentile: models.Float64Ptr(percentile(values, 85)),
	}, nil
}

// PEProvider serves the S&P 500 trailing P/E. The index level comes
// from the price source; the earnings denominator has no free feed, so
// the ratio itself is a demo constant.
type PEProvider struct {
	prices repository.PriceSource
	now    func() time.Time
}

func NewPEProvider(prices repository.PriceSource) *PEProvider {
	return &PEProvider{prices: prices, now: time.Now}
}

func (p *PEProvider) Name() models.IndicatorName { return models.IndicatorPERatio }

func (p *PEProvider) Fetch(ctx context.Context) (models.IndicatorReading, error) {
	series, err := p.prices.FetchSeries(ctx, "^GSPC", repository.Period1Y)
	if err != nil {
		return models.IndicatorReading{}, fmt.Errorf("pe_ratio: index price: %w", err)
	}
	closes := series.Closes()
	if len(closes) == 0 {
		return models.IndicatorReading{}, fmt.Errorf("pe_ratio: index series: %w", ErrInsufficientData)
	}
	return models.IndicatorReading{
		Name:       models.IndicatorPERatio,
		Value:      demoPERatio,
		Source:     "index price + earnings (synthetic)",
		ObservedAt: p.now(),
		IndexPrice: models.Float64Ptr(closes[len(closes)-1]),
	}, nil
}

// BuffettProvider serves total market cap over GDP as a percent.
type BuffettProvider struct {
	now func() time.Time
}

func NewBuffettProvider() *BuffettProvider {
	return &BuffettProvider{now: time.Now}
}

func (p *BuffettProvider) Name() models.IndicatorName { return models.IndicatorBuffett }

func (p *BuffettProvider) Fetch(_ context.Context) (models.IndicatorReading, error) {
	ratio := demoMarketCapBln / demoGDPBln * 100
	return models.IndicatorReading{
		Name:       models.IndicatorBuffett,
		Value:      ratio,
		Source:     "FRED + market data (synthetic)",
		ObservedAt: p.now(),
		MarketCap:  models.Float64Ptr(demoMarketCapBln),
		GDP:        models.Float64Ptr(demoGDPBln),
	}, nil
}

// MarginDebtProvider serves the year over year margin debt change.
type MarginDebtProvider struct {
	now func() time.Time
}

func NewMarginDebtProvider() *MarginDebtProvider {
	return &MarginDebtProvider{now: time.Now}
}

func (p *MarginDebtProvider) Name() models.IndicatorName { return models.IndicatorMarginDebt }

func (p *MarginDebtProvider) Fetch(_ context.Context) (models.IndicatorReading, error) {
	return models.IndicatorReading{
		Name:       models.IndicatorMarginDebt,
		Value:      demoMarginDebtYoY,
		Source:     "FINRA (synthetic)",
		ObservedAt: p.now(),
	}, nil
}

// ConcentrationProvider serves the top-10 weight of the S&P 500.
type ConcentrationProvider struct {
	now func() time.Time
}

func NewConcentrationProvider() *ConcentrationProvider {
	return &ConcentrationProvider{now: time.Now}
}

func (p *ConcentrationProvider) Name() models.IndicatorName { return models.IndicatorConcentration }

func (p *ConcentrationProvider) Fetch(_ context.Context) (models.IndicatorReading, error) {
	return models.IndicatorReading{
		Name:       models.IndicatorConcentration,
		Value:      demoConcentration,
		Source:     "SPY holdings (synthetic)",
		ObservedAt: p.now(),
	}, nil
}

// SentimentProvider composes a 0..100 fear/greed proxy from the VIX
// percentile plus put/call and high-yield spread components. Higher
// means more greed.
type SentimentProvider struct {
	prices repository.PriceSource
	now    func() time.Time
}

func NewSentimentProvider(prices repository.PriceSource) *SentimentProvider {
	return &SentimentProvider{prices: prices, now: time.Now}
}

func (p *SentimentProvider) Name() models.IndicatorName { return models.IndicatorSentiment }

func (p *SentimentProvider) Fetch(ctx context.Context) (models.IndicatorReading, error) {
	series, err := p.prices.FetchSeries(ctx, "^VIX", repository.Period1Y)
	if err != nil {
		return models.IndicatorReading{}, fmt.Errorf("sentiment: vix series: %w", err)
	}
	closes := series.Closes()
	if len(closes) == 0 {
		return models.IndicatorReading{}, fmt.Errorf("sentiment: vix series: %w", ErrInsufficientData)
	}

	vixP75 := percentile(closes, 75)
	score := SentimentScore(vixP75, demoPutCallRatio, demoHYSpreadBps)

	return models.IndicatorReading{
		Name:         models.IndicatorSentiment,
		Value:        score,
		Source:       "CBOE + FRED (synthetic)",
		ObservedAt:   p.now(),
		VIX:          models.Float64Ptr(closes[len(closes)-1]),
		PutCallRatio: models.Float64Ptr(demoPutCallRatio),
		HYSpread:     models.Float64Ptr(demoHYSpreadBps),
	}, nil
}

// SentimentScore blends the three sentiment components and clips the
// result to [0,100]. A high VIX percentile pulls toward fear, a high
// put/call ratio and a tight credit spread push toward greed.
func SentimentScore(vixP75, putCallRatio, hySpreadBps float64) float64 {
	score := 50 + (25 - vixP75/4) + (putCallRatio-0.5)*20 + (400-hySpreadBps)/4
	return util.Clamp(score, 0, 100)
}

// Providers assembles the full provider set over one price source.
func Providers(prices repository.PriceSource) []repository.MetricProvider {
	return []repository.MetricProvider{
		NewCAPEProvider(),
		NewPEProvider(prices),
		NewBuffettProvider(),
		NewMarginDebtProvider(),
		NewConcentrationProvider(),
		NewSentimentProvider(prices),
	}
}
