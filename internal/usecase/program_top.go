package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"AXRadar/internal/domain/models"
	"AXRadar/internal/service/format"
)

const (
	ProgramCollapsedRows = 5
	ProgramExpandedRows  = 50
)

// BuildProgramTop slices the ranking to five rows, or fifty when expanded.
// The expansion marker is available whenever the feed has more than five rows.
func BuildProgramTop(rows []models.ProgramTrade, expanded bool) models.View[models.ProgramTopView] {
	limit := ProgramCollapsedRows
	if expanded {
		limit = ProgramExpandedRows
	}
	list := head(rows, limit)
	if len(list) == 0 {
		return models.Empty[models.ProgramTopView]()
	}

	out := make([]models.ProgramRow, len(list))
	for i, r := range list {
		net, pct, price := r.NetAmount.Float(), r.ChangePct.Float(), r.Price.Float()
		netText := format.ProgramNet(net)
		if net == 0 {
			netText = "0"
		}
		out[i] = models.ProgramRow{
			Rank:          r.Rank.Int(),
			Code:          r.Code.String(),
			Name:          r.Name.String(),
			Market:        r.Market.String(),
			MarketClass:   strings.ToLower(r.Market.String()),
			Price:         price,
			PriceText:     format.Grouped(price),
			ChangePct:     pct,
			ChangePctText: format.Percent(pct, 2),
			ChangeTone:    tone(pct),
			NetAmount:     net,
			NetAmountText: netText,
			Side:          side(net),
		}
	}

	marker := models.ExpansionMarker{
		Available: len(rows) > ProgramCollapsedRows,
		Expanded:  expanded,
		Count:     len(rows),
	}
	if marker.Available {
		marker.Label = fmt.Sprintf("더보기 %s (%d종목)", format.ArrowDown, len(rows))
		if expanded {
			marker.Label = "접기 " + format.ArrowUp
		}
	}
	return models.Ready(models.ProgramTopView{Rows: out, Total: len(rows), Expansion: marker})
}

// ProgramTopFeed polls the program trading ranking.
type ProgramTopFeed struct {
	feedBase
	toggles *ToggleState

	mu    sync.RWMutex
	last  []models.ProgramTrade
	stale bool
	have  bool
}

func NewProgramTopFeed(deps FeedDeps, toggles *ToggleState) *ProgramTopFeed {
	return &ProgramTopFeed{feedBase: newFeedBase(models.FeedProgramTop, deps), toggles: toggles}
}

func (f *ProgramTopFeed) Refresh(ctx context.Context) {
	rows, stale, ok := load[[]models.ProgramTrade](ctx, &f.feedBase, "program-top")
	if !ok {
		publish(&f.feedBase, f.name, models.Failed[models.ProgramTopView](""))
		return
	}
	f.mu.Lock()
	f.last, f.stale, f.have = rows, stale, true
	f.mu.Unlock()
	f.Republish()
}

// Republish re-derives the view from the last payload for the current expansion.
func (f *ProgramTopFeed) Republish() {
	f.mu.RLock()
	rows, stale, have := f.last, f.stale, f.have
	f.mu.RUnlock()
	if !have {
		return
	}
	expanded := f.toggles.Snapshot().ProgramExpansion == ExpansionAll
	publish(&f.feedBase, f.name, BuildProgramTop(rows, expanded).WithStale(stale))
}
