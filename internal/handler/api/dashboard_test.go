package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"AXRadar/internal/service/fetch"
	"AXRadar/internal/usecase"

	"github.com/labstack/echo/v4"
)

type staticFetcher map[string]string

func (f staticFetcher) Get(_ context.Context, key string) (fetch.Result, error) {
	if s, ok := f[key]; ok {
		return fetch.Result{Data: json.RawMessage(s)}, nil
	}
	return fetch.Result{}, &fetch.FetchError{Key: key, Attempts: 1, Cause: errors.New("missing")}
}

type readyFlag bool

func (r readyFlag) IsReady() bool { return bool(r) }

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, ready bool, limit DetailLimit) (*echo.Echo, *usecase.Dashboard) {
	t.Helper()
	f := staticFetcher{
		"program-top":  `[{"rank":1,"stk_cd":"A"},{"rank":2},{"rank":3},{"rank":4},{"rank":5},{"rank":6}]`,
		"stock/005930": `{"name":"삼성전자","curPrc":71500,"signal":"2"}`,
	}
	board := usecase.NewBoard(nil, usecase.FeedNames()...)
	dash := usecase.NewDashboard(usecase.FeedDeps{Fetcher: f, Publisher: board}, nil)
	for _, feed := range dash.Feeds() {
		feed.Refresh(context.Background())
	}

	e := echo.New()
	NewDashboardHandler(nil, board, dash, readyFlag(ready), nil, limit).RegisterRoutes(e)
	return e, dash
}

func do(t *testing.T, e *echo.Echo, method, path, body string) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, env
}

func TestHealthReflectsReadiness(t *testing.T) {
	e, _ := newTestServer(t, false, DetailLimit{})
	if code, _ := do(t, e, http.MethodGet, "/healthz", ""); code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before ready, got %d", code)
	}
	e, _ = newTestServer(t, true, DetailLimit{})
	if code, _ := do(t, e, http.MethodGet, "/healthz", ""); code != http.StatusOK {
		t.Fatalf("expected 200 when ready, got %d", code)
	}
}

func TestViewsEndpoints(t *testing.T) {
	e, _ := newTestServer(t, true, DetailLimit{})

	code, env := do(t, e, http.MethodGet, "/api/views", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var list struct {
		Rows  []json.RawMessage `json:"rows"`
		Total int               `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Total != len(usecase.FeedNames()) || len(list.Rows) != list.Total {
		t.Fatalf("expected every feed, got %d", list.Total)
	}

	code, env = do(t, e, http.MethodGet, "/api/views/program-top", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var one struct {
		Feed string `json:"feed"`
		View struct {
			State string `json:"state"`
			Data  struct {
				Rows []json.RawMessage `json:"rows"`
			} `json:"data"`
		} `json:"view"`
	}
	if err := json.Unmarshal(env.Data, &one); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if one.Feed != "program-top" || one.View.State != "ready" || len(one.View.Data.Rows) != 5 {
		t.Fatalf("unexpected program-top view %+v", one)
	}

	if code, _ := do(t, e, http.MethodGet, "/api/views/weather", ""); code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown feed, got %d", code)
	}
}

func TestToggleEndpoints(t *testing.T) {
	e, dash := newTestServer(t, true, DetailLimit{})

	if code, _ := do(t, e, http.MethodPut, "/api/toggles/sector-tab", `{"mode":"institution"}`); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if dash.Toggles().SectorTab != "institution" {
		t.Fatal("sector tab not switched")
	}
	if code, _ := do(t, e, http.MethodPut, "/api/toggles/sector-tab", `{"mode":"retail"}`); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown tab, got %d", code)
	}
	if code, _ := do(t, e, http.MethodPut, "/api/toggles/sector-tab", `{}`); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing mode, got %d", code)
	}

	if code, _ := do(t, e, http.MethodPost, "/api/toggles/program-expansion", ""); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if dash.Toggles().ProgramExpansion != usecase.ExpansionAll {
		t.Fatal("expansion not toggled")
	}

	if code, _ := do(t, e, http.MethodPost, "/api/toggles/sell-popup", `{"key":"gs"}`); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if dash.Toggles().SellPopup != "GS" {
		t.Fatal("sell popup not opened")
	}
	if code, _ := do(t, e, http.MethodDelete, "/api/toggles/sell-popup", ""); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if dash.Toggles().SellPopup != "" {
		t.Fatal("sell popup not closed")
	}

	code, env := do(t, e, http.MethodGet, "/api/toggles", "")
	if code != http.StatusOK || !strings.Contains(string(env.Data), `"programExpansion":"all"`) {
		t.Fatalf("unexpected toggles %d %s", code, env.Data)
	}
}

func TestStockDetailEndpoints(t *testing.T) {
	e, dash := newTestServer(t, true, DetailLimit{Burst: 2, RefillPerSec: 0})

	code, env := do(t, e, http.MethodPost, "/api/stocks/005930/detail", "")
	if code != http.StatusOK || !strings.Contains(string(env.Data), "71,500원") {
		t.Fatalf("unexpected detail response %d %s", code, env.Data)
	}
	if dash.Toggles().StockDetail != "005930" {
		t.Fatal("detail flag not set")
	}

	if code, _ := do(t, e, http.MethodPost, "/api/stocks/undefined/detail", ""); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid code, got %d", code)
	}
	if code, _ := do(t, e, http.MethodPost, "/api/stocks/005930/detail", ""); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once the bucket is empty, got %d", code)
	}

	if code, _ := do(t, e, http.MethodDelete, "/api/stocks/detail", ""); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if dash.Toggles().StockDetail != "" {
		t.Fatal("detail flag not cleared")
	}
}
