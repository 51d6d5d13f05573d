package api

import (
	"errors"

	"AXRadar/internal/domain/models"
	"AXRadar/internal/service/ratelimit"
	"AXRadar/internal/usecase"
	xhttp "AXRadar/pkg/http"
	xlogger "AXRadar/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Readiness reports whether the bootstrap pass has settled.
type Readiness interface {
	IsReady() bool
}

// DetailLimit is the per-client token bucket for opening stock details.
type DetailLimit struct {
	Burst        float64
	RefillPerSec float64
}

// DashboardHandler serves the latest views and the toggle operations.
type DashboardHandler struct {
	logger *xlogger.Logger
	board  *usecase.Board
	dash   *usecase.Dashboard
	ready  Readiness
	rl     *ratelimit.Limiter
	limit  DetailLimit
}

func NewDashboardHandler(
	logger *xlogger.Logger,
	board *usecase.Board,
	dash *usecase.Dashboard,
	ready Readiness,
	rl *ratelimit.Limiter,
	limit DetailLimit,
) *DashboardHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	if rl == nil {
		rl = ratelimit.New()
	}
	return &DashboardHandler{logger: logger, board: board, dash: dash, ready: ready, rl: rl, limit: limit}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/views", h.Views)
	g.GET("/views/:feed", h.View)
	g.GET("/toggles", h.Toggles)
	g.PUT("/toggles/sector-tab", h.SetSectorTab)
	g.POST("/toggles/program-expansion", h.ToggleProgramExpansion)
	g.POST("/toggles/sell-popup", h.OpenSellPopup)
	g.DELETE("/toggles/sell-popup", h.CloseSellPopup)
	g.POST("/stocks/:code/detail", h.OpenStockDetail)
	g.DELETE("/stocks/detail", h.CloseStockDetail)
}

func (h *DashboardHandler) Health(c echo.Context) error {
	if h.ready != nil && !h.ready.IsReady() {
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("bootstrap in progress"))
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ready"})
}

func (h *DashboardHandler) Views(c echo.Context) error {
	views := h.board.Snapshot()
	return xhttp.ListResponse(c, views, int64(len(views)))
}

func (h *DashboardHandler) View(c echo.Context) error {
	req := &models.FeedRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	v, ok := h.board.Get(req.Feed)
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("unknown feed %q", req.Feed))
	}
	return xhttp.SuccessResponse(c, usecase.Update{Feed: req.Feed, View: v})
}

func (h *DashboardHandler) Toggles(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.dash.Toggles())
}

func (h *DashboardHandler) SetSectorTab(c echo.Context) error {
	req := &models.SectorTabRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err := h.dash.SetSectorTab(req.Mode); err != nil {
		return h.toggleError(c, err)
	}
	return xhttp.SuccessResponse(c, h.dash.Toggles())
}

func (h *DashboardHandler) ToggleProgramExpansion(c echo.Context) error {
	h.dash.ToggleProgramExpansion()
	return xhttp.SuccessResponse(c, h.dash.Toggles())
}

func (h *DashboardHandler) OpenSellPopup(c echo.Context) error {
	req := &models.SellPopupRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err := h.dash.OpenSellPopup(req.Key); err != nil {
		return h.toggleError(c, err)
	}
	return xhttp.SuccessResponse(c, h.dash.Toggles())
}

func (h *DashboardHandler) CloseSellPopup(c echo.Context) error {
	h.dash.CloseSellPopup()
	return xhttp.SuccessResponse(c, h.dash.Toggles())
}

func (h *DashboardHandler) OpenStockDetail(c echo.Context) error {
	req := &models.StockDetailRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":detail", h.limit.Burst, h.limit.RefillPerSec) {
		h.logger.Warn("stock detail rate limited", xlogger.String("remote", c.RealIP()))
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many detail requests"))
	}

	v, err := h.dash.OpenStockDetail(c.Request().Context(), req.Code)
	switch {
	case errors.Is(err, usecase.ErrDetailSuperseded):
		return xhttp.AppErrorResponse(c, xhttp.ConflictError("detail was closed before it loaded").WithError(err))
	case err != nil:
		return h.toggleError(c, err)
	}
	return xhttp.SuccessResponse(c, usecase.Update{Feed: models.FeedStockDetail, View: v})
}

func (h *DashboardHandler) CloseStockDetail(c echo.Context) error {
	h.dash.CloseStockDetail()
	return xhttp.SuccessResponse(c, h.dash.Toggles())
}

func (h *DashboardHandler) toggleError(c echo.Context, err error) error {
	if errors.Is(err, usecase.ErrInvalidToggle) {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()).WithError(err))
	}
	h.logger.Error("toggle failed", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}
