package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"MarketPulse/internal/handler/api"
	"MarketPulse/internal/middleware"
	"MarketPulse/pkg/config"
	xhttp "MarketPulse/pkg/http"
	applogger "MarketPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle: HTTP server plus
// the background overview broadcaster.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	broadcaster *middleware.OverviewBroadcaster
	dashboard   *api.DashboardHandler
	stream      *api.StreamHandler
	httpServer  *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	broadcaster *middleware.OverviewBroadcaster,
	dashboard *api.DashboardHandler,
	stream *api.StreamHandler,
) *App {
	return &App{
		cfg:         cfg,
		logger:      logger,
		broadcaster: broadcaster,
		dashboard:   dashboard,
		stream:      stream,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.dashboard,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	a.stream.RegisterRoutes(a.httpServer.Echo())

	a.broadcaster.Start(ctx)
	a.logger.Info("overview broadcaster started",
		applogger.Duration("interval_ms", a.cfg.Stream.Interval))

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("dashboard listening", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	a.broadcaster.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		return err
	}

	a.logger.Info("shutdown complete")
	return nil
}
