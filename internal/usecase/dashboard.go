package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"MarketPulse/internal/domain/models"
	domrepo "MarketPulse/internal/domain/repository"
	"MarketPulse/internal/services/scoring"
	"MarketPulse/internal/services/technical"
)

// DashboardUseCase drives the valuation dashboard: it fans out to the
// indicator providers, classifies readings, and composes the guidance
// score. Provider failures degrade single tiles, never the whole page.
type DashboardUseCase struct {
	providers []domrepo.MetricProvider
	trend     domrepo.TrendSource
	prices    domrepo.PriceSource
	catalog   []models.AssetGroup
	metrics   domrepo.Metrics
	log       zerolog.Logger
	timeout   time.Duration
}

func NewDashboardUseCase(
	providers []domrepo.MetricProvider,
	trend domrepo.TrendSource,
	prices domrepo.PriceSource,
	catalog []models.AssetGroup,
	metrics domrepo.Metrics,
	log zerolog.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		providers: providers,
		trend:     trend,
		prices:    prices,
		catalog:   catalog,
		metrics:   metrics,
		log:       log.With().Str("component", "dashboard").Logger(),
		timeout:   10 * time.Second,
	}
}

// Overview fetches and classifies every indicator concurrently and
// composes the guidance score from whatever succeeded.
func (uc *DashboardUseCase) Overview(ctx context.Context) (*models.Overview, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	started := time.Now()
	classified, errs := uc.fetchAll(ctx)

	trendScore := uc.trendScore(ctx, nil, errs)
	composite := scoring.Compose(classified, trendScore, time.Now())

	uc.metrics.RecordLatency("overview", time.Since(started).Seconds())

	out := &models.Overview{
		Timestamp:  time.Now(),
		Indicators: classified,
		Composite:  composite,
	}
	if len(errs) > 0 {
		out.Errors = errs
	}
	return out, nil
}

// Metric fetches and classifies one indicator. The historical series
// is stripped unless explicitly requested.
func (uc *DashboardUseCase) Metric(ctx context.Context, name models.IndicatorName, history bool) (*models.ClassifiedIndicator, error) {
	provider := uc.provider(name)
	if provider == nil {
		return nil, fmt.Errorf("%w: %q", scoring.ErrUnknownIndicator, name)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	reading, err := provider.Fetch(ctx)
	if err != nil {
		uc.metrics.RecordError(string(name))
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	uc.metrics.RecordFetch(string(name))
	uc.metrics.RecordIndicatorValue(string(name), reading.Value)

	if !history {
		reading.Series = nil
	}

	ci, err := scoring.ClassifyReading(reading)
	if err != nil {
		return nil, err
	}
	return &ci, nil
}

// Composite recomputes the guidance score. A caller-supplied trend
// overrides the configured trend source.
func (uc *DashboardUseCase) Composite(ctx context.Context, trendOverride *float64) (*models.CompositeScore, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	classified, errs := uc.fetchAll(ctx)
	trendScore := uc.trendScore(ctx, trendOverride, errs)

	composite := scoring.Compose(classified, trendScore, time.Now())
	return &composite, nil
}

// Technical fetches an asset's history and computes its analytics.
func (uc *DashboardUseCase) Technical(ctx context.Context, symbol string, period domrepo.Period) (*models.TechnicalSummary, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	started := time.Now()
	series, err := uc.prices.FetchSeries(ctx, symbol, period)
	if err != nil {
		uc.metrics.RecordError("series_fetch")
		return nil, fmt.Errorf("fetch series %s: %w", symbol, err)
	}
	uc.metrics.RecordLatency("technical", time.Since(started).Seconds())

	summary := technical.Summarize(series, time.Now())
	return &summary, nil
}

// fetchAll runs every provider concurrently. A failed or unclassifiable
// indicator lands in the error map and is excluded from scoring.
func (uc *DashboardUseCase) fetchAll(ctx context.Context) ([]models.ClassifiedIndicator, map[string]string) {
	type item struct {
		name models.IndicatorName
		ci   models.ClassifiedIndicator
		err  error
	}

	ch := make(chan item, len(uc.providers))
	var wg sync.WaitGroup
	for _, p := range uc.providers {
		wg.Add(1)
		go func(p domrepo.MetricProvider) {
			defer wg.Done()
			reading, err := p.Fetch(ctx)
			if err != nil {
				ch <- item{name: p.Name(), err: err}
				return
			}
			ci, err := scoring.ClassifyReading(reading)
			ch <- item{name: p.Name(), ci: ci, err: err}
		}(p)
	}
	go func() { wg.Wait(); close(ch) }()

	errs := map[string]string{}
	byName := map[models.IndicatorName]models.ClassifiedIndicator{}
	for it := range ch {
		if it.err != nil {
			uc.metrics.RecordError(string(it.name))
			uc.log.Warn().Err(it.err).Str("indicator", string(it.name)).Msg("indicator skipped")
			errs[string(it.name)] = it.err.Error()
			continue
		}
		uc.metrics.RecordFetch(string(it.name))
		uc.metrics.RecordIndicatorValue(string(it.name), it.ci.Reading.Value)
		byName[it.name] = it.ci
	}

	// stable display order regardless of completion order
	classified := make([]models.ClassifiedIndicator, 0, len(byName))
	for _, name := range models.IndicatorNames {
		if ci, ok := byName[name]; ok {
			classified = append(classified, ci)
		}
	}
	return classified, errs
}

// trendScore resolves the trend input, falling back to neutral when
// the source fails so the composite stays displayable.
func (uc *DashboardUseCase) trendScore(ctx context.Context, override *float64, errs map[string]string) float64 {
	if override != nil {
		return *override
	}
	score, err := uc.trend.TrendScore(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("trend source failed, using neutral")
		errs["trend"] = err.Error()
		return 50
	}
	return score
}

func (uc *DashboardUseCase) provider(name models.IndicatorName) domrepo.MetricProvider {
	for _, p := range uc.providers {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// Assets returns the static browsing catalog.
func (uc *DashboardUseCase) Assets() []models.AssetGroup {
	return uc.catalog
}
