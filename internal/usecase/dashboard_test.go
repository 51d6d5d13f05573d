package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"AXRadar/internal/domain/models"
)

const sectorFixture = `[
	{"sector":"반도체","foreignAmt":4200,"instAmt":-120},
	{"sector":"자동차","foreignAmt":-9100,"instAmt":330},
	{"sector":"은행","foreignAmt":0,"instAmt":75}
]`

func TestSectorTabRoundTripReproducesView(t *testing.T) {
	f := newFakeFetcher()
	f.set("foreign-sector", sectorFixture)
	b := newTestBoard()
	d := NewDashboard(testDeps(f, b), nil)

	d.sectorFlow.Refresh(context.Background())
	first := viewOf[models.SectorFlowView](b, models.FeedSectorFlow)
	if !first.IsReady() || first.Value().Tab != models.SectorTabForeign {
		t.Fatalf("unexpected initial view %+v", first)
	}

	if err := d.SetSectorTab("institution"); err != nil {
		t.Fatalf("SetSectorTab: %v", err)
	}
	inst := viewOf[models.SectorFlowView](b, models.FeedSectorFlow)
	if inst.Value().Tab != models.SectorTabInstitution || inst.Value().Rows[0].Sector != "자동차" {
		t.Fatalf("unexpected institution view %+v", inst.Value())
	}

	if err := d.SetSectorTab("foreign"); err != nil {
		t.Fatalf("SetSectorTab: %v", err)
	}
	again := viewOf[models.SectorFlowView](b, models.FeedSectorFlow)
	if !reflect.DeepEqual(first, again) {
		t.Fatalf("round trip changed the view:\n%+v\n%+v", first.Value(), again.Value())
	}
	if n := f.count("foreign-sector"); n != 1 {
		t.Fatalf("tab switches must not refetch, got %d fetches", n)
	}
}

func TestSetSectorTabInvalidKeepsView(t *testing.T) {
	f := newFakeFetcher()
	f.set("foreign-sector", sectorFixture)
	b := newTestBoard()
	d := NewDashboard(testDeps(f, b), nil)
	d.sectorFlow.Refresh(context.Background())

	if err := d.SetSectorTab("whale"); !errors.Is(err, ErrInvalidToggle) {
		t.Fatalf("expected ErrInvalidToggle, got %v", err)
	}
	if d.Toggles().SectorTab != models.SectorTabForeign {
		t.Fatal("invalid tab changed state")
	}
}

func TestProgramExpansionScenario(t *testing.T) {
	f := newFakeFetcher()
	f.set("program-top", programRows(7))
	b := newTestBoard()
	d := NewDashboard(testDeps(f, b), nil)

	d.programTop.Refresh(context.Background())
	v := viewOf[models.ProgramTopView](b, models.FeedProgramTop).Value()
	if len(v.Rows) != 5 || !v.Expansion.Available || v.Expansion.Count != 7 {
		t.Fatalf("expected 5 rows with marker count 7, got %d rows %+v", len(v.Rows), v.Expansion)
	}

	if mode := d.ToggleProgramExpansion(); mode != ExpansionAll {
		t.Fatalf("expected all, got %s", mode)
	}
	v = viewOf[models.ProgramTopView](b, models.FeedProgramTop).Value()
	if len(v.Rows) != 7 {
		t.Fatalf("expected 7 rows after toggle, got %d", len(v.Rows))
	}
	if f.count("program-top") != 1 {
		t.Fatal("expansion must not refetch")
	}

	d.programTop.Refresh(context.Background())
	if v := viewOf[models.ProgramTopView](b, models.FeedProgramTop).Value(); len(v.Rows) != 7 {
		t.Fatalf("refresh should keep the expanded mode, got %d rows", len(v.Rows))
	}
}

func TestToggleBeforeFirstLoadPublishesNothing(t *testing.T) {
	b := newTestBoard()
	d := NewDashboard(testDeps(newFakeFetcher(), b), nil)

	d.ToggleProgramExpansion()
	if v, _ := b.Get(models.FeedProgramTop); v.Status() != models.StateEmpty {
		t.Fatalf("expected untouched placeholder, got %s", v.Status())
	}
}

func TestFailedFeedPublishesErrorView(t *testing.T) {
	f := newFakeFetcher()
	f.fail("foreign-top")
	f.set("indices", `{"KOSPI":{"value":2500,"change":1,"changePct":0.1}}`)
	b := newTestBoard()
	d := NewDashboard(testDeps(f, b), nil)

	d.foreignTop.Refresh(context.Background())
	d.indices.Refresh(context.Background())

	ft := viewOf[models.ForeignTopView](b, models.FeedForeignTop)
	if ft.State != models.StateError || ft.Message != models.FailedMessage {
		t.Fatalf("expected error view, got %+v", ft)
	}
	if idx := viewOf[models.IndicesView](b, models.FeedIndices); !idx.IsReady() {
		t.Fatalf("sibling feed should be unaffected, got %s", idx.State)
	}
	if !ft.UpdatedAt.Equal(testNow) {
		t.Fatalf("views should be stamped, got %v", ft.UpdatedAt)
	}
}

func TestMalformedPayloadIsErrorView(t *testing.T) {
	f := newFakeFetcher()
	f.set("accumulation", `{"not":"a list"}`)
	b := newTestBoard()
	d := NewDashboard(testDeps(f, b), nil)

	d.accumulation.Refresh(context.Background())
	if v := viewOf[models.AccumulationView](b, models.FeedAccumulation); v.State != models.StateError {
		t.Fatalf("expected error view, got %s", v.State)
	}
}

func TestEmptyAndNullPayloadsAreEmptyViews(t *testing.T) {
	f := newFakeFetcher()
	f.set("consecutive-buy", `[]`)
	f.set("accumulation", `null`)
	b := newTestBoard()
	d := NewDashboard(testDeps(f, b), nil)

	d.consecutiveBuy.Refresh(context.Background())
	d.accumulation.Refresh(context.Background())
	if v := viewOf[models.ConsecutiveBuyView](b, models.FeedConsecutiveBuy); v.State != models.StateEmpty || v.Message != models.EmptyMessage {
		t.Fatalf("expected empty view, got %+v", v)
	}
	if v := viewOf[models.AccumulationView](b, models.FeedAccumulation); v.State != models.StateEmpty {
		t.Fatalf("expected empty view for null data, got %s", v.State)
	}
}

func TestStaleResultMarksView(t *testing.T) {
	f := newFakeFetcher()
	f.set("consecutive-buy", `[{"rank":1,"stk_cd":"A","tot":5}]`)
	f.stale["consecutive-buy"] = true
	b := newTestBoard()
	d := NewDashboard(testDeps(f, b), nil)

	d.consecutiveBuy.Refresh(context.Background())
	if v := viewOf[models.ConsecutiveBuyView](b, models.FeedConsecutiveBuy); !v.Stale {
		t.Fatal("expected stale marker")
	}
}

func TestSellPopupFollowsToggle(t *testing.T) {
	f := newFakeFetcher()
	f.set("institutions", `{"MS":{"buyTop":[{"code":"A","amount":10}],"sellTop":[{"code":"B","amount":30},{"code":"C","amount":15}]}}`)
	b := newTestBoard()
	d := NewDashboard(testDeps(f, b), nil)

	d.institutions.Refresh(context.Background())
	if v := viewOf[models.SellPopupView](b, models.FeedSellPopup); v.State != models.StateEmpty {
		t.Fatalf("closed popup should be empty, got %s", v.State)
	}

	if err := d.OpenSellPopup("MS"); err != nil {
		t.Fatalf("OpenSellPopup: %v", err)
	}
	pop := viewOf[models.SellPopupView](b, models.FeedSellPopup).Value()
	if pop.Key != "MS" || len(pop.Items.Value()) != 2 || pop.Items.Value()[1].BarWidthPct != 50 {
		t.Fatalf("unexpected popup %+v", pop)
	}

	if err := d.OpenSellPopup("XX"); !errors.Is(err, ErrInvalidToggle) {
		t.Fatalf("expected ErrInvalidToggle, got %v", err)
	}
	d.CloseSellPopup()
	if v := viewOf[models.SellPopupView](b, models.FeedSellPopup); v.State != models.StateEmpty {
		t.Fatalf("closed popup should be empty, got %s", v.State)
	}
	if f.count("institutions") != 1 {
		t.Fatal("popup toggles must not refetch")
	}
}

func TestOpenAndCloseStockDetail(t *testing.T) {
	f := newFakeFetcher()
	f.set("stock/005930", `{"name":"삼성전자","curPrc":71500,"signal":"2","change":500}`)
	b := newTestBoard()
	d := NewDashboard(testDeps(f, b), nil)

	v, err := d.OpenStockDetail(context.Background(), "005930")
	if err != nil {
		t.Fatalf("OpenStockDetail: %v", err)
	}
	if v.Value().Name != "삼성전자" || v.Value().Tone != models.ToneUp {
		t.Fatalf("unexpected detail %+v", v.Value())
	}
	if pub := viewOf[models.StockDetailView](b, models.FeedStockDetail); !pub.IsReady() {
		t.Fatalf("detail should be published, got %s", pub.State)
	}

	d.CloseStockDetail()
	if pub := viewOf[models.StockDetailView](b, models.FeedStockDetail); pub.State != models.StateEmpty {
		t.Fatalf("closed detail should be empty, got %s", pub.State)
	}
	if d.Toggles().StockDetail != "" {
		t.Fatal("detail flag should be cleared")
	}
}

func TestOpenStockDetailRejectsInvalidCode(t *testing.T) {
	f := newFakeFetcher()
	d := NewDashboard(testDeps(f, newTestBoard()), nil)

	if _, err := d.OpenStockDetail(context.Background(), "undefined"); !errors.Is(err, ErrInvalidToggle) {
		t.Fatalf("expected ErrInvalidToggle, got %v", err)
	}
	if f.count("stock/undefined") != 0 {
		t.Fatal("invalid code must not be fetched")
	}
}

func TestOpenStockDetailFailureIsErrorView(t *testing.T) {
	f := newFakeFetcher()
	f.fail("stock/000001")
	b := newTestBoard()
	d := NewDashboard(testDeps(f, b), nil)

	v, err := d.OpenStockDetail(context.Background(), "000001")
	if err != nil {
		t.Fatalf("fetch failure should become a view, got %v", err)
	}
	if v.State != models.StateError || v.Message != DetailFailedMessage {
		t.Fatalf("unexpected view %+v", v)
	}
}

func TestStockDetailClosedDuringFetchIsDropped(t *testing.T) {
	f := newFakeFetcher()
	f.set("stock/005930", `{"name":"삼성전자","curPrc":71500}`)
	f.started = make(chan string, 1)
	gate := make(chan struct{})
	f.gate["stock/005930"] = gate
	b := newTestBoard()
	d := NewDashboard(testDeps(f, b), nil)

	done := make(chan error, 1)
	go func() {
		_, err := d.OpenStockDetail(context.Background(), "005930")
		done <- err
	}()

	<-f.started
	d.CloseStockDetail()
	close(gate)

	if err := <-done; !errors.Is(err, ErrDetailSuperseded) {
		t.Fatalf("expected ErrDetailSuperseded, got %v", err)
	}
	if pub := viewOf[models.StockDetailView](b, models.FeedStockDetail); pub.State != models.StateEmpty {
		t.Fatalf("late result must not be published, got %s", pub.State)
	}
}

// closingPublisher runs onReady once, just before a ready stock detail
// reaches the board.
type closingPublisher struct {
	board   *Board
	onReady func()
}

func (p *closingPublisher) Publish(feed string, v models.StateView) {
	if feed == models.FeedStockDetail && v.Status() == models.StateReady && p.onReady != nil {
		fn := p.onReady
		p.onReady = nil
		fn()
	}
	p.board.Publish(feed, v)
}

func TestCloseDuringDetailPublishLeavesDetailClosed(t *testing.T) {
	f := newFakeFetcher()
	f.set("stock/005930", `{"name":"삼성전자","curPrc":71500}`)
	b := newTestBoard()
	pub := &closingPublisher{board: b}
	d := NewDashboard(FeedDeps{Fetcher: f, Publisher: pub, Now: func() time.Time { return testNow }}, nil)

	closed := make(chan struct{})
	pub.onReady = func() {
		go func() {
			d.CloseStockDetail()
			close(closed)
		}()
		time.Sleep(20 * time.Millisecond)
	}

	if _, err := d.OpenStockDetail(context.Background(), "005930"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	<-closed

	if code := d.Toggles().StockDetail; code != "" {
		t.Fatalf("expected no open detail, got %q", code)
	}
	if v := viewOf[models.StockDetailView](b, models.FeedStockDetail); v.State != models.StateEmpty {
		t.Fatalf("closed detail must not stay on the board, got %s", v.State)
	}
}
