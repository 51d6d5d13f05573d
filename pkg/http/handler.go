package http

import "github.com/labstack/echo/v4"

// Handler registers one group of routes on the server. The dashboard API and
// the WebSocket hub are both Handlers.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}

// RouteFunc adapts a plain function to Handler.
type RouteFunc func(e *echo.Echo)

func (f RouteFunc) RegisterRoutes(e *echo.Echo) { f(e) }
