package di

import (
	"fmt"

	"MarketPulse/internal/domain/repository"
	"MarketPulse/internal/handler/api"
	mid "MarketPulse/internal/middleware"
	"MarketPulse/internal/service/cache"
	"MarketPulse/internal/service/marketdata"
	"MarketPulse/internal/usecase"
	"MarketPulse/pkg/config"
	phttp "MarketPulse/pkg/http"
	"MarketPulse/pkg/logger"
	"MarketPulse/pkg/metrics"
	"MarketPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return log, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideHTTPClient creates the shared HTTP client for upstream providers.
func ProvideHTTPClient(cfg *config.Config) *phttp.Client {
	return phttp.NewClient(phttp.WithTimeout(cfg.Providers.RequestTimeout))
}

// ProvideTTLCache creates the in-process cache shared by providers and
// the price source.
func ProvideTTLCache() *cache.TTLCache {
	return cache.NewTTLCache()
}

// ProvideBytesCache picks the response-body cache backend. Redis when
// configured, otherwise the in-process cache doubles as byte storage.
func ProvideBytesCache(cfg *config.Config, ttl *cache.TTLCache) cache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return ttl
}

// ProvidePriceSource assembles the price-series pipeline: routed live
// sources with a synthetic fallback, behind a TTL cache. Demo mode
// skips upstreams entirely.
func ProvidePriceSource(cfg *config.Config, client *phttp.Client, log *logger.Logger, ttl *cache.TTLCache) repository.PriceSource {
	demo := marketdata.NewDemoSource()
	if cfg.Providers.DemoMode {
		return demo
	}
	routed := marketdata.NewRoutedSource(
		marketdata.NewStooqClient(client, cfg.Providers.StooqBaseURL, log.Zerolog()),
		marketdata.NewCoinGeckoClient(client, cfg.Providers.CoinGeckoBaseURL, cfg.Providers.CoinGeckoAPIKey, log.Zerolog()),
		demo,
		log.Zerolog(),
	)
	return marketdata.NewCachedPriceSource(routed, ttl)
}

// ProvideMetricProviders builds every indicator provider, each behind
// its per-indicator TTL cache.
func ProvideMetricProviders(prices repository.PriceSource, ttl *cache.TTLCache) []repository.MetricProvider {
	raw := marketdata.Providers(prices)
	wrapped := make([]repository.MetricProvider, 0, len(raw))
	for _, p := range raw {
		wrapped = append(wrapped, marketdata.NewCachedProvider(p, ttl))
	}
	return wrapped
}

// ProvideTrendSource creates the configured trend score source.
func ProvideTrendSource(cfg *config.Config) repository.TrendSource {
	return marketdata.NewStaticTrendSource(cfg.Trend.Score)
}

// ProvideDashboardUseCase creates the dashboard use case.
func ProvideDashboardUseCase(
	providers []repository.MetricProvider,
	trend repository.TrendSource,
	prices repository.PriceSource,
	m repository.Metrics,
	log *logger.Logger,
) *usecase.DashboardUseCase {
	return usecase.NewDashboardUseCase(providers, trend, prices, marketdata.Catalog(), m, log.Zerolog())
}

// ProvideBroadcaster creates the overview fan-out for WebSocket clients.
func ProvideBroadcaster(uc *usecase.DashboardUseCase, m repository.Metrics, cfg *config.Config) *mid.OverviewBroadcaster {
	return mid.NewOverviewBroadcaster(uc, m,
		mid.WithInterval(cfg.Stream.Interval),
		mid.WithClientBuffer(cfg.Stream.ClientBuffer),
	)
}

// ProvideDashboardHandler creates the REST handler with response caching.
func ProvideDashboardHandler(log *logger.Logger, uc *usecase.DashboardUseCase, bodies cache.BytesCache) *api.DashboardHandler {
	h := api.NewDashboardHandler(log, uc)
	h.SetCache(bodies)
	return h
}

// ProvideStreamHandler creates the WebSocket handler.
func ProvideStreamHandler(log *logger.Logger, b *mid.OverviewBroadcaster) *api.StreamHandler {
	return api.NewStreamHandler(log, b)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	b *mid.OverviewBroadcaster,
	dashboard *api.DashboardHandler,
	stream *api.StreamHandler,
) *server.App {
	return server.New(cfg, log, b, dashboard, stream)
}
