package usecase

import (
	"context"
	"fmt"
	"math"
	"sync"

	"AXRadar/internal/domain/models"
	"AXRadar/internal/service/format"
)

const InstitutionTopSize = 5

// Institution is a foreign broker column on the dashboard.
type Institution struct {
	Key   string
	Name  string
	Class string
}

// Institutions are the tracked brokers, in column order.
var Institutions = []Institution{
	{Key: "MS", Name: "Morgan Stanley", Class: "ms"},
	{Key: "JP", Name: "JP Morgan", Class: "jp"},
	{Key: "GS", Name: "Goldman Sachs", Class: "gs"},
}

func lookupInstitution(key string) (Institution, bool) {
	for _, in := range Institutions {
		if in.Key == key {
			return in, true
		}
	}
	return Institution{}, false
}

// BuildInstitutions renders the top five net buys of each broker. A broker
// with neither buys nor sells shows an empty column. Sells stay behind the
// popup; the column only carries their count.
func BuildInstitutions(p models.InstitutionsPayload) models.View[models.InstitutionsView] {
	cols := make([]models.InstitutionColumn, 0, len(Institutions))
	for _, in := range Institutions {
		col := models.InstitutionColumn{Key: in.Key, Name: in.Name, Class: in.Class}
		flow, ok := p[in.Key]
		if !ok || (len(flow.BuyTop) == 0 && len(flow.SellTop) == 0) {
			col.Buy = models.Empty[[]models.InstitutionItem]()
			cols = append(cols, col)
			continue
		}
		col.Buy = listView(rankInstitution(head(flow.BuyTop, InstitutionTopSize), false))
		col.SellCount = len(flow.SellTop)
		col.SellAvailable = col.SellCount > 0
		if col.SellAvailable {
			col.SellLabel = fmt.Sprintf("NET SELL TOP %d 보기", col.SellCount)
		}
		cols = append(cols, col)
	}
	return models.Ready(models.InstitutionsView{Columns: cols})
}

// BuildSellPopup renders the full net sell list of one broker.
func BuildSellPopup(p models.InstitutionsPayload, key string) models.View[models.SellPopupView] {
	in, ok := lookupInstitution(key)
	if !ok {
		in = Institution{Key: key, Name: key}
	}
	sells := p[key].SellTop
	v := models.SellPopupView{
		Key:   in.Key,
		Name:  in.Name,
		Class: in.Class,
		Items: listView(rankInstitution(sells, true)),
	}
	if len(sells) > 0 {
		v.Title = fmt.Sprintf("Net Sell TOP %d", len(sells))
	}
	return models.Ready(v)
}

func rankInstitution(stocks []models.FlowStock, sell bool) []models.InstitutionItem {
	amounts := make([]float64, len(stocks))
	for i, st := range stocks {
		amounts[i] = st.Amount.Float()
	}
	peak := maxAbs(amounts)

	items := make([]models.InstitutionItem, len(stocks))
	for i, st := range stocks {
		amt, pct := amounts[i], st.ChangePct.Float()
		it := models.InstitutionItem{
			Rank:          i + 1,
			Code:          st.Code.String(),
			Name:          st.Name.String(),
			Clickable:     st.Code != "",
			Amount:        amt,
			AmountText:    format.SignedAmount(amt),
			AmountTone:    tone(pct),
			ChangePct:     pct,
			ChangePctText: format.Percent(pct, 1),
			ChangeTone:    tone(pct),
			BarWidthPct:   barWidth(amt, peak),
			BarTone:       tone(pct),
		}
		if sell {
			it.AmountText = format.SignedAmount(-math.Abs(amt))
			it.AmountTone = models.ToneDown
			it.BarTone = models.ToneDown
		}
		items[i] = it
	}
	return items
}

// InstitutionsFeed polls broker flows and also serves the sell popup.
type InstitutionsFeed struct {
	feedBase
	toggles *ToggleState

	mu    sync.RWMutex
	last  models.InstitutionsPayload
	stale bool
	have  bool
}

func NewInstitutionsFeed(deps FeedDeps, toggles *ToggleState) *InstitutionsFeed {
	return &InstitutionsFeed{feedBase: newFeedBase(models.FeedInstitutions, deps), toggles: toggles}
}

func (f *InstitutionsFeed) Refresh(ctx context.Context) {
	p, stale, ok := load[models.InstitutionsPayload](ctx, &f.feedBase, "institutions")
	if !ok || p == nil {
		publish(&f.feedBase, f.name, models.Failed[models.InstitutionsView](""))
		return
	}
	f.mu.Lock()
	f.last, f.stale, f.have = p, stale, true
	f.mu.Unlock()

	publish(&f.feedBase, f.name, BuildInstitutions(p).WithStale(stale))
	f.RepublishPopup()
}

// RepublishPopup renders the sell popup for the broker open in toggles, or
// an empty popup when none is open.
func (f *InstitutionsFeed) RepublishPopup() {
	key := f.toggles.Snapshot().SellPopup
	if key == "" {
		publish(&f.feedBase, models.FeedSellPopup, models.Empty[models.SellPopupView]())
		return
	}
	f.mu.RLock()
	p, stale, have := f.last, f.stale, f.have
	f.mu.RUnlock()
	if !have {
		in, _ := lookupInstitution(key)
		publish(&f.feedBase, models.FeedSellPopup, models.Ready(models.SellPopupView{
			Key: in.Key, Name: in.Name, Class: in.Class,
			Items: models.Empty[[]models.InstitutionItem](),
		}))
		return
	}
	publish(&f.feedBase, models.FeedSellPopup, BuildSellPopup(p, key).WithStale(stale))
}
