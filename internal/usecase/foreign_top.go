package usecase

import (
	"context"

	"AXRadar/internal/domain/models"
	"AXRadar/internal/service/format"
)

const ForeignTopSize = 5

// BuildForeignTop ranks the first five foreign net buys and sells in feed
// order. Each list scales its bars against its own largest amount.
func BuildForeignTop(p models.ForeignTopPayload) models.View[models.ForeignTopView] {
	buy := rankFlow(head(p.Buy, ForeignTopSize), models.SideBuy)
	sell := rankFlow(head(p.Sell, ForeignTopSize), models.SideSell)
	return models.Ready(models.ForeignTopView{
		Buy:       listView(buy),
		Sell:      listView(sell),
		BuyCount:  len(buy),
		SellCount: len(sell),
	})
}

func rankFlow(stocks []models.FlowStock, s models.Side) []models.RankedItem {
	amounts := make([]float64, len(stocks))
	for i, st := range stocks {
		amounts[i] = st.Amount.Float()
	}
	peak := maxAbs(amounts)

	sign := "+"
	if s == models.SideSell {
		sign = "-"
	}
	items := make([]models.RankedItem, len(stocks))
	for i, st := range stocks {
		amt, pct := amounts[i], st.ChangePct.Float()
		items[i] = models.RankedItem{
			Rank:             i + 1,
			RankClass:        rankClass(i),
			Code:             st.Code.String(),
			Name:             st.Name.String(),
			Amount:           amt,
			AmountText:       format.Eok(amt),
			SignedAmountText: sign + format.Eok(amt),
			Side:             s,
			ChangePct:        pct,
			ChangePctText:    format.Percent(pct, 1),
			ChangeTone:       tone(pct),
			BarWidthPct:      barWidth(amt, peak),
		}
	}
	return items
}

func rankClass(i int) string {
	switch i {
	case 0:
		return "fi-rk-1"
	case 1:
		return "fi-rk-2"
	case 2:
		return "fi-rk-3"
	default:
		return ""
	}
}

func listView[T any](items []T) models.View[[]T] {
	if len(items) == 0 {
		return models.Empty[[]T]()
	}
	return models.Ready(items)
}

// ForeignTopFeed polls the foreign net buy and sell rankings.
type ForeignTopFeed struct {
	feedBase
}

func NewForeignTopFeed(deps FeedDeps) *ForeignTopFeed {
	return &ForeignTopFeed{feedBase: newFeedBase(models.FeedForeignTop, deps)}
}

func (f *ForeignTopFeed) Refresh(ctx context.Context) {
	p, stale, ok := load[models.ForeignTopPayload](ctx, &f.feedBase, "foreign-top")
	if !ok {
		publish(&f.feedBase, f.name, models.Failed[models.ForeignTopView](""))
		return
	}
	publish(&f.feedBase, f.name, BuildForeignTop(p).WithStale(stale))
}
