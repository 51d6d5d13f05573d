package usecase

import (
	"context"

	"AXRadar/internal/domain/models"
	"AXRadar/internal/service/format"
)

// IndexKeys are the headline indices, in display order.
var IndexKeys = []string{"KOSPI", "KOSDAQ", "NASDAQ"}

// BuildIndices renders the headline cards. Missing indices are skipped.
func BuildIndices(p models.IndicesPayload) models.View[models.IndicesView] {
	cards := make([]models.IndexCard, 0, len(IndexKeys))
	for _, k := range IndexKeys {
		q, ok := p[k]
		if !ok {
			continue
		}
		val, chg, pct := q.Value.Float(), q.Change.Float(), q.ChangePct.Float()

		chgText := format.Fixed(chg, 2)
		if chg > 0 {
			chgText = "+" + chgText
		}
		if a := format.Arrow(chg); a != "" {
			chgText = a + " " + chgText
		}
		cards = append(cards, models.IndexCard{
			Key:           k,
			Value:         val,
			ValueText:     format.GroupedFixed(val, 2),
			Change:        chg,
			ChangeText:    chgText,
			ChangePct:     pct,
			ChangePctText: format.Percent(pct, 2),
			Tone:          tone(chg),
			Arrow:         format.Arrow(chg),
		})
	}
	if len(cards) == 0 {
		return models.Empty[models.IndicesView]()
	}
	return models.Ready(models.IndicesView{Cards: cards})
}

// IndicesFeed polls the headline indices.
type IndicesFeed struct {
	feedBase
}

func NewIndicesFeed(deps FeedDeps) *IndicesFeed {
	return &IndicesFeed{feedBase: newFeedBase(models.FeedIndices, deps)}
}

func (f *IndicesFeed) Refresh(ctx context.Context) {
	p, stale, ok := load[models.IndicesPayload](ctx, &f.feedBase, "indices")
	if !ok {
		publish(&f.feedBase, f.name, models.Failed[models.IndicesView](""))
		return
	}
	publish(&f.feedBase, f.name, BuildIndices(p).WithStale(stale))
}
