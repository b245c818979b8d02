//go:build wireinject
// +build wireinject

package di

import (
	"MarketPulse/pkg/config"
	"MarketPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideHTTPClient,
		ProvideTTLCache,
		ProvideBytesCache,

		// Market data
		ProvidePriceSource,
		ProvideMetricProviders,
		ProvideTrendSource,

		// Use cases
		ProvideDashboardUseCase,
		ProvideBroadcaster,

		// Handlers
		ProvideDashboardHandler,
		ProvideStreamHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
