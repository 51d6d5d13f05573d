//go:build wireinject
// +build wireinject

package di

import (
	"AXRadar/internal/service/ratelimit"
	"AXRadar/internal/usecase"
	"AXRadar/pkg/config"
	"AXRadar/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideCache,
		ProvideFetchClient,

		// Use cases
		usecase.NewToggleState,
		ProvideBoard,
		ProvideDashboard,
		ProvideOrchestrator,

		// Transport
		ratelimit.New,
		ProvideDashboardHandler,
		ProvideHub,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
