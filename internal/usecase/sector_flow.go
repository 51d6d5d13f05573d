package usecase

import (
	"context"
	"sort"
	"sync"

	"AXRadar/internal/domain/models"
	"AXRadar/internal/service/format"
)

// BuildSectorFlow sorts sectors by the tab's amount, largest net buy first,
// and scales bars against the largest magnitude across all sectors. Zero
// amounts are neutral and get no bar.
func BuildSectorFlow(rows []models.SectorFlow, tab models.SectorTab) models.View[models.SectorFlowView] {
	if len(rows) == 0 {
		return models.Empty[models.SectorFlowView]()
	}
	pick := func(r models.SectorFlow) float64 { return r.ForeignAmt.Float() }
	label := "Foreign"
	if tab == models.SectorTabInstitution {
		pick = func(r models.SectorFlow) float64 { return r.InstAmt.Float() }
		label = "Institution"
	} else {
		tab = models.SectorTabForeign
	}

	sorted := make([]models.SectorFlow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return pick(sorted[i]) > pick(sorted[j]) })

	amounts := make([]float64, len(sorted))
	for i, r := range sorted {
		amounts[i] = pick(r)
	}
	peak := maxAbs(amounts)

	out := make([]models.SectorRow, len(sorted))
	for i, r := range sorted {
		amt := amounts[i]
		row := models.SectorRow{
			Sector:     r.Sector.String(),
			Amount:     amt,
			AmountText: format.SignedEok(amt),
			Side:       side(amt),
		}
		if row.Side != models.SideNeutral {
			row.BarWidthPct = barWidth(amt, peak)
		}
		out[i] = row
	}
	return models.Ready(models.SectorFlowView{Tab: tab, TabLabel: label, Rows: out})
}

// SectorFlowFeed polls sector flows and renders the tab chosen in toggles.
type SectorFlowFeed struct {
	feedBase
	toggles *ToggleState

	mu    sync.RWMutex
	last  []models.SectorFlow
	stale bool
	have  bool
}

func NewSectorFlowFeed(deps FeedDeps, toggles *ToggleState) *SectorFlowFeed {
	return &SectorFlowFeed{feedBase: newFeedBase(models.FeedSectorFlow, deps), toggles: toggles}
}

func (f *SectorFlowFeed) Refresh(ctx context.Context) {
	rows, stale, ok := load[[]models.SectorFlow](ctx, &f.feedBase, "foreign-sector")
	if !ok {
		publish(&f.feedBase, f.name, models.Failed[models.SectorFlowView](""))
		return
	}
	f.mu.Lock()
	f.last, f.stale, f.have = rows, stale, true
	f.mu.Unlock()
	f.Republish()
}

// Republish re-derives the view from the last payload for the current tab.
// It does nothing before the first successful load.
func (f *SectorFlowFeed) Republish() {
	f.mu.RLock()
	rows, stale, have := f.last, f.stale, f.have
	f.mu.RUnlock()
	if !have {
		return
	}
	publish(&f.feedBase, f.name, BuildSectorFlow(rows, f.toggles.Snapshot().SectorTab).WithStale(stale))
}
