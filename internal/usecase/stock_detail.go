package usecase

import (
	"context"
	"math"

	"AXRadar/internal/domain/models"
	"AXRadar/internal/service/format"
)

const DetailFailedMessage = "Failed to load data"

// BuildStockDetail renders the quote modal for code. Direction comes from
// the exchange signal code rather than the sign of the change.
func BuildStockDetail(code string, d *models.StockDetail) models.View[models.StockDetailView] {
	if d == nil {
		return models.Empty[models.StockDetailView]()
	}
	cls, arrow := format.SignalDirection(d.Signal.String())
	chg, pct := d.Change.Float(), d.ChangePct.Float()

	chgText := format.Grouped(math.Abs(chg))
	if chg > 0 {
		chgText = "+" + chgText
	}
	return models.Ready(models.StockDetailView{
		Code:            code,
		Name:            d.Name.String(),
		Price:           d.Price.Float(),
		PriceText:       format.Grouped(d.Price.Float()) + format.UnitWon,
		Arrow:           arrow,
		Tone:            models.Tone(cls),
		ChangeText:      chgText,
		ChangePctText:   format.Percent(pct, 2),
		OpenText:        format.Grouped(d.Open.Float()),
		HighText:        format.Grouped(d.High.Float()),
		LowText:         format.Grouped(d.Low.Float()),
		VolumeText:      format.Grouped(d.Volume.Float()),
		MarketCapText:   format.MarketCap(d.MarketCap.Float()),
		PERText:         format.Fixed(d.PER.Float(), 2),
		PBRText:         format.Fixed(d.PBR.Float(), 2),
		ForeignRateText: format.Fixed(d.ForeignRate.Float(), 1) + "%",
	})
}

// StockDetailFeed loads single-stock quotes on demand. It is not polled.
type StockDetailFeed struct {
	feedBase
}

func NewStockDetailFeed(deps FeedDeps) *StockDetailFeed {
	return &StockDetailFeed{feedBase: newFeedBase(models.FeedStockDetail, deps)}
}

// Load fetches and derives the detail view for code without publishing it.
func (f *StockDetailFeed) Load(ctx context.Context, code string) models.View[models.StockDetailView] {
	d, stale, ok := load[*models.StockDetail](ctx, &f.feedBase, "stock/"+code)
	if !ok {
		return models.Failed[models.StockDetailView](DetailFailedMessage)
	}
	return BuildStockDetail(code, d).WithStale(stale).Stamped(f.Now())
}

// Show publishes v as the open detail.
func (f *StockDetailFeed) Show(v models.View[models.StockDetailView]) {
	publish(&f.feedBase, f.name, v)
}

// Clear publishes the closed state.
func (f *StockDetailFeed) Clear() {
	publish(&f.feedBase, f.name, models.Empty[models.StockDetailView]())
}
