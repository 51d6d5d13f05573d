package di

import (
	"fmt"

	"AXRadar/internal/domain/repository"
	"AXRadar/internal/handler/api"
	"AXRadar/internal/handler/ws"
	"AXRadar/internal/service/fetch"
	"AXRadar/internal/service/ratelimit"
	"AXRadar/internal/usecase"
	"AXRadar/pkg/cache"
	"AXRadar/pkg/config"
	xhttp "AXRadar/pkg/http"
	applogger "AXRadar/pkg/logger"
	"AXRadar/pkg/metrics"
	"AXRadar/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New(nil)
}

// ProvideCache creates the last-good-payload store. The redis backend keeps
// an in-process copy in front of Redis.
func ProvideCache(cfg *config.Config, l *applogger.Logger) (cache.Service, error) {
	if cfg.Cache.Backend != "redis" {
		return cache.NewMemoryCache(), nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		cache.WithRedisPool(cfg.Cache.Redis.PoolSize, cfg.Cache.Redis.MinIdle, cfg.Upstream.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	l.Info("redis cache connected",
		applogger.String("host", cfg.Cache.Redis.Host),
		applogger.Int("port", cfg.Cache.Redis.Port),
	)
	return cache.NewLayeredCache(rc), nil
}

// ProvideFetchClient creates the upstream fetch client.
func ProvideFetchClient(cfg *config.Config, store cache.Service, m repository.Metrics, l *applogger.Logger) *fetch.Client {
	return fetch.NewClient(
		cfg.Upstream.BaseURL,
		xhttp.NewClient(xhttp.WithTimeout(cfg.Upstream.Timeout)),
		store,
		fetch.WithRetries(cfg.RetryCount()),
		fetch.WithRetryDelay(cfg.Upstream.RetryDelay),
		fetch.WithMetrics(m),
		fetch.WithLogger(l),
	)
}

// ProvideBoard creates the view board holding every feed.
func ProvideBoard(m repository.Metrics) *usecase.Board {
	return usecase.NewBoard(m, usecase.FeedNames()...)
}

// ProvideDashboard wires the feed adapters to the board and toggle state.
func ProvideDashboard(fc *fetch.Client, board *usecase.Board, toggles *usecase.ToggleState, l *applogger.Logger) *usecase.Dashboard {
	return usecase.NewDashboard(usecase.FeedDeps{
		Fetcher:   fc,
		Publisher: board,
		Logger:    l,
	}, toggles)
}

// ProvideOrchestrator creates the refresh scheduler for the polled feeds.
func ProvideOrchestrator(
	cfg *config.Config,
	dash *usecase.Dashboard,
	board *usecase.Board,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.Orchestrator {
	return usecase.NewOrchestrator(dash.Feeds(), cfg.RefreshInterval(),
		usecase.WithOrchestratorPublisher(board),
		usecase.WithOrchestratorLogger(l),
		usecase.WithOrchestratorMetrics(m),
	)
}

// ProvideDashboardHandler creates the REST handler.
func ProvideDashboardHandler(
	cfg *config.Config,
	l *applogger.Logger,
	board *usecase.Board,
	dash *usecase.Dashboard,
	orch *usecase.Orchestrator,
	rl *ratelimit.Limiter,
) *api.DashboardHandler {
	return api.NewDashboardHandler(l, board, dash, orch, rl, api.DetailLimit{
		Burst:        cfg.StockDetail.Burst,
		RefillPerSec: cfg.StockDetail.RefillPerSec,
	})
}

// ProvideHub creates the WebSocket hub relaying board updates.
func ProvideHub(l *applogger.Logger, board *usecase.Board) *ws.Hub {
	return ws.NewHub(l, board)
}

// ProvideHTTPServer creates the Echo server with every handler registered.
func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, h *api.DashboardHandler, hub *ws.Hub) *xhttp.Server {
	return xhttp.NewServer([]xhttp.Handler{h, hub},
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(cfg.Metrics.Path),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	l *applogger.Logger,
	orch *usecase.Orchestrator,
	srv *xhttp.Server,
	hub *ws.Hub,
	store cache.Service,
) *server.App {
	return server.New(l, orch, srv, hub, store)
}
