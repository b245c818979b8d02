package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"MarketPulse/internal/domain/models"
	domrepo "MarketPulse/internal/domain/repository"
	icache "MarketPulse/internal/service/cache"
	"MarketPulse/internal/service/metrics"
	"MarketPulse/internal/service/ratelimit"
	"MarketPulse/internal/services/scoring"
	"MarketPulse/internal/usecase"
	xhttp "MarketPulse/pkg/http"
	xlogger "MarketPulse/pkg/logger"
)

// overviewCacheTTL keeps repeated page loads off the providers between
// refresh ticks.
const overviewCacheTTL = 30 * time.Second

// DashboardHandler implements the Echo HTTP surface of the dashboard.
type DashboardHandler struct {
	logger *xlogger.Logger
	uc     *usecase.DashboardUseCase
	cache  icache.BytesCache
	rl     *ratelimit.Limiter
}

func NewDashboardHandler(logger *xlogger.Logger, uc *usecase.DashboardUseCase) *DashboardHandler {
	metrics.Register()
	return &DashboardHandler{logger: logger, uc: uc, rl: ratelimit.New()}
}

// SetCache injects a byte cache for whole-response memoization.
func (h *DashboardHandler) SetCache(c icache.BytesCache) { h.cache = c }

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/overview", h.Overview)
	g.GET("/metric", h.Metric)
	g.GET("/composite", h.Composite)
	g.GET("/technical", h.Technical)
	g.GET("/assets", h.Assets)
	e.GET("/healthz", h.Health)
}

// Overview serves the full dashboard snapshot. The response bytes are
// cached briefly so page reloads within a refresh tick are free.
func (h *DashboardHandler) Overview(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.EndpointLatency.WithLabelValues("overview").Observe(time.Since(start).Seconds()) }()

	if !h.rl.Allow(c.RealIP()+":overview", 5, 2) {
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
	}
	if b, ok := h.cachedBody("overview"); ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	ov, err := h.uc.Overview(c.Request().Context())
	if err != nil {
		metrics.EndpointErrors.WithLabelValues("overview").Inc()
		h.logger.Error("overview usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return h.respondCached(c, "overview", overviewCacheTTL, ov)
}

// Metric serves one classified indicator, optionally with history.
func (h *DashboardHandler) Metric(c echo.Context) error {
	req := &models.MetricRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ci, err := h.uc.Metric(c.Request().Context(), models.IndicatorName(req.Name), req.History)
	if err != nil {
		if errors.Is(err, scoring.ErrUnknownIndicator) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("unknown metric %q", req.Name))
		}
		h.logger.Error("metric usecase error", xlogger.Error(err), xlogger.String("name", req.Name))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, ci)
}

// Composite recomputes the guidance score, honoring a trend override.
func (h *DashboardHandler) Composite(c echo.Context) error {
	req := &models.CompositeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	cs, err := h.uc.Composite(c.Request().Context(), req.Trend)
	if err != nil {
		h.logger.Error("composite usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, cs)
}

// Technical serves the derived analytics for one asset.
func (h *DashboardHandler) Technical(c echo.Context) error {
	req := &models.TechnicalRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":technical", 10, 5) {
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
	}
	period := domrepo.NormalizePeriod(req.Period)

	sum, err := h.uc.Technical(c.Request().Context(), req.Symbol, period)
	if err != nil {
		metrics.EndpointErrors.WithLabelValues("technical").Inc()
		h.logger.Error("technical usecase error", xlogger.Error(err), xlogger.String("symbol", req.Symbol))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, sum)
}

// Assets serves the static browsing catalog.
func (h *DashboardHandler) Assets(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.uc.Assets())
}

// Health reports liveness.
func (h *DashboardHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DashboardHandler) cachedBody(key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		h.logger.Warn("cache get error", xlogger.Error(err))
		return nil, false
	}
	return b, ok
}

func (h *DashboardHandler) respondCached(c echo.Context, key string, ttl time.Duration, data interface{}) error {
	body := xhttp.APIResponse{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    data,
	}
	b, err := json.Marshal(body)
	if err != nil {
		h.logger.Error("response marshal error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	if h.cache != nil {
		if err := h.cache.SetBytes(key, b, ttl); err != nil {
			h.logger.Warn("cache set error", xlogger.Error(err))
		}
	}
	return c.JSONBlob(http.StatusOK, b)
}
