package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"AXRadar/internal/handler/ws"
	"AXRadar/internal/usecase"
	"AXRadar/pkg/cache"
	xhttp "AXRadar/pkg/http"
	applogger "AXRadar/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	logger       *applogger.Logger
	orchestrator *usecase.Orchestrator
	httpServer   *xhttp.Server
	hub          *ws.Hub
	store        cache.Service
}

// New creates a new App instance with all dependencies.
func New(
	logger *applogger.Logger,
	orchestrator *usecase.Orchestrator,
	httpServer *xhttp.Server,
	hub *ws.Hub,
	store cache.Service,
) *App {
	if logger == nil {
		logger = applogger.Nop()
	}
	return &App{
		logger:       logger,
		orchestrator: orchestrator,
		httpServer:   httpServer,
		hub:          hub,
		store:        store,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts polling and serving, and shuts down when ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	pollCtx, cancelPoll := context.WithCancel(ctx)
	defer cancelPoll()

	polling := make(chan struct{})
	go func() {
		defer close(polling)
		a.orchestrator.Run(pollCtx)
	}()

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("shutdown signal received")

	cancelPoll()
	<-polling
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.logger.Info("shutting down")

	if a.hub != nil {
		a.hub.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()
	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	a.orchestrator.Wait()

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
