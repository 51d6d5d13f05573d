package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"AXRadar/internal/domain/models"
)

// ErrDetailSuperseded reports a detail fetch that finished after its detail
// was closed or another code was opened. Its view is not published.
var ErrDetailSuperseded = errors.New("stock detail closed before load finished")

// Dashboard wires the feed adapters to the toggle state. Toggle operations
// re-derive affected views from the last payload without refetching; only
// opening a stock detail goes upstream.
type Dashboard struct {
	toggles *ToggleState

	// detailMu makes the open-code check and its publish atomic with close.
	detailMu sync.Mutex

	indices        *IndicesFeed
	institutions   *InstitutionsFeed
	foreignTop     *ForeignTopFeed
	sectorFlow     *SectorFlowFeed
	accumulation   *AccumulationFeed
	consecutiveBuy *ConsecutiveBuyFeed
	programTop     *ProgramTopFeed
	detail         *StockDetailFeed
}

func NewDashboard(deps FeedDeps, toggles *ToggleState) *Dashboard {
	if toggles == nil {
		toggles = NewToggleState()
	}
	return &Dashboard{
		toggles:        toggles,
		indices:        NewIndicesFeed(deps),
		institutions:   NewInstitutionsFeed(deps, toggles),
		foreignTop:     NewForeignTopFeed(deps),
		sectorFlow:     NewSectorFlowFeed(deps, toggles),
		accumulation:   NewAccumulationFeed(deps),
		consecutiveBuy: NewConsecutiveBuyFeed(deps),
		programTop:     NewProgramTopFeed(deps, toggles),
		detail:         NewStockDetailFeed(deps),
	}
}

// Feeds returns the seven polled feeds.
func (d *Dashboard) Feeds() []Feed {
	return []Feed{
		d.indices,
		d.foreignTop,
		d.sectorFlow,
		d.institutions,
		d.accumulation,
		d.programTop,
		d.consecutiveBuy,
	}
}

// FeedNames lists every feed the board serves, polled or not.
func FeedNames() []string {
	return []string{
		models.FeedIndices,
		models.FeedForeignTop,
		models.FeedSectorFlow,
		models.FeedInstitutions,
		models.FeedAccumulation,
		models.FeedProgramTop,
		models.FeedConsecutiveBuy,
		models.FeedSellPopup,
		models.FeedStockDetail,
	}
}

func (d *Dashboard) Toggles() ToggleSnapshot { return d.toggles.Snapshot() }

func (d *Dashboard) SetSectorTab(mode string) error {
	if err := d.toggles.SetSectorTab(mode); err != nil {
		return err
	}
	d.sectorFlow.Republish()
	return nil
}

func (d *Dashboard) ToggleProgramExpansion() ProgramExpansion {
	mode := d.toggles.ToggleProgramExpansion()
	d.programTop.Republish()
	return mode
}

func (d *Dashboard) OpenSellPopup(key string) error {
	if err := d.toggles.OpenSellPopup(key); err != nil {
		return err
	}
	d.institutions.RepublishPopup()
	return nil
}

func (d *Dashboard) CloseSellPopup() {
	d.toggles.CloseSellPopup()
	d.institutions.RepublishPopup()
}

// OpenStockDetail opens code, fetches its quote and publishes the result if
// code is still the open detail when the fetch returns.
func (d *Dashboard) OpenStockDetail(ctx context.Context, code string) (models.View[models.StockDetailView], error) {
	code = strings.TrimSpace(code)
	if err := d.toggles.OpenStockDetail(code); err != nil {
		return models.View[models.StockDetailView]{}, err
	}
	v := d.detail.Load(ctx, code)

	d.detailMu.Lock()
	defer d.detailMu.Unlock()
	if d.toggles.Snapshot().StockDetail != code {
		return v, ErrDetailSuperseded
	}
	d.detail.Show(v)
	return v, nil
}

func (d *Dashboard) CloseStockDetail() {
	d.detailMu.Lock()
	defer d.detailMu.Unlock()
	d.toggles.CloseStockDetail()
	d.detail.Clear()
}
