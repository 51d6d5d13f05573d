package usecase

import (
	"context"
	"sort"
	"strings"

	"AXRadar/internal/domain/models"
	"AXRadar/internal/service/format"
)

const (
	AccumulationCards     = 5
	AccumulationTableRows = 10
)

// BuildAccumulation renders score cards for the first five stocks in feed
// order and a weight table of the ten largest five-day weight gains.
func BuildAccumulation(rows []models.Accumulation) models.View[models.AccumulationView] {
	if len(rows) == 0 {
		return models.Empty[models.AccumulationView]()
	}

	picked := head(rows, AccumulationCards)
	cards := make([]models.AccumulationCard, len(picked))
	for i, r := range picked {
		c5, c20 := r.WeightChange5D.Float(), r.WeightChange20D.Float()
		grade, sig := r.Grade.String(), r.Signal.String()
		cards[i] = models.AccumulationCard{
			Code:           r.Code.String(),
			Name:           r.Name.String(),
			Grade:          grade,
			GradeClass:     "grade-" + strings.ToLower(grade),
			Score:          r.Score.Float(),
			ScoreText:      format.Plain(r.Score.Float()),
			Sparkline:      BuildSparkline(samples(r.Sparkline), models.SparklineFull),
			Change5DText:   format.PercentPoint(c5),
			Change5DClass:  polarity(c5),
			Change20DText:  format.PercentPoint(c20),
			Change20DClass: polarity(c20),
			Signal:         sig,
			SignalClass:    strings.ToLower(sig),
			SignalLabel:    strings.ReplaceAll(sig, "_", " "),
		}
	}

	sorted := make([]models.Accumulation, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WeightChange5D > sorted[j].WeightChange5D
	})
	top := head(sorted, AccumulationTableRows)
	table := make([]models.WeightRow, len(top))
	for i, r := range top {
		c5, c20, exh := r.WeightChange5D.Float(), r.WeightChange20D.Float(), r.ExhaustionChange.Float()
		table[i] = models.WeightRow{
			Rank:            i + 1,
			Code:            r.Code.String(),
			Name:            r.Name.String(),
			WeightNowText:   format.Fixed(r.WeightNow.Float(), 2),
			Change5D:        c5,
			Change5DText:    format.PercentPoint(c5),
			Change5DClass:   polarity(c5),
			Change20DText:   format.PercentPoint(c20),
			Change20DClass:  polarity(c20),
			ExhaustionText:  format.PercentPoint(exh),
			ExhaustionClass: polarity(exh),
			Sparkline:       BuildSparkline(samples(r.Sparkline), models.SparklineMini),
		}
	}
	return models.Ready(models.AccumulationView{Cards: cards, Table: table})
}

// AccumulationFeed polls the stealth accumulation radar.
type AccumulationFeed struct {
	feedBase
}

func NewAccumulationFeed(deps FeedDeps) *AccumulationFeed {
	return &AccumulationFeed{feedBase: newFeedBase(models.FeedAccumulation, deps)}
}

func (f *AccumulationFeed) Refresh(ctx context.Context) {
	rows, stale, ok := load[[]models.Accumulation](ctx, &f.feedBase, "accumulation")
	if !ok {
		publish(&f.feedBase, f.name, models.Failed[models.AccumulationView](""))
		return
	}
	publish(&f.feedBase, f.name, BuildAccumulation(rows).WithStale(stale))
}
