package usecase

import (
	"context"

	"AXRadar/internal/domain/models"
	"AXRadar/internal/service/format"
)

const ConsecutiveBuyRows = 10

// BuildConsecutiveBuy renders the first ten rows in feed order.
func BuildConsecutiveBuy(rows []models.ConsecutiveBuy) models.View[models.ConsecutiveBuyView] {
	list := head(rows, ConsecutiveBuyRows)
	if len(list) == 0 {
		return models.Empty[models.ConsecutiveBuyView]()
	}
	out := make([]models.ConsecutiveRow, len(list))
	for i, r := range list {
		out[i] = models.ConsecutiveRow{
			Rank:          r.Rank.Int(),
			Code:          r.Code.String(),
			Name:          r.Name.String(),
			PriceText:     format.Grouped(r.Price.Float()),
			D1Text:        format.Quantity(r.D1.Float()),
			D2Text:        format.Quantity(r.D2.Float()),
			D3Text:        format.Quantity(r.D3.Float()),
			TotalText:     format.Quantity(r.Total.Float()),
			TotalPolarity: polarity3(r.Total.Float()),
		}
	}
	return models.Ready(models.ConsecutiveBuyView{Rows: out})
}

// ConsecutiveBuyFeed polls the consecutive net buy ranking.
type ConsecutiveBuyFeed struct {
	feedBase
}

func NewConsecutiveBuyFeed(deps FeedDeps) *ConsecutiveBuyFeed {
	return &ConsecutiveBuyFeed{feedBase: newFeedBase(models.FeedConsecutiveBuy, deps)}
}

func (f *ConsecutiveBuyFeed) Refresh(ctx context.Context) {
	rows, stale, ok := load[[]models.ConsecutiveBuy](ctx, &f.feedBase, "consecutive-buy")
	if !ok {
		publish(&f.feedBase, f.name, models.Failed[models.ConsecutiveBuyView](""))
		return
	}
	publish(&f.feedBase, f.name, BuildConsecutiveBuy(rows).WithStale(stale))
}
