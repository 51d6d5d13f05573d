package usecase

import (
	"math"

	"AXRadar/internal/domain/models"
	"AXRadar/internal/service/format"
)

// barWidth scales |v| against peak to an integer percentage in [0,100].
// A non-positive peak is treated as 1; a non-finite ratio draws no bar.
func barWidth(v, peak float64) int {
	if peak <= 0 {
		peak = 1
	}
	w := format.Round(math.Abs(v) / peak * 100)
	switch {
	case math.IsNaN(w), math.IsInf(w, 0):
		return 0
	case w < 0:
		return 0
	case w > 100:
		return 100
	}
	return int(w)
}

func maxAbs(vs []float64) float64 {
	m := 0.0
	for _, v := range vs {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

func tone(v float64) models.Tone { return models.Tone(format.Direction(v)) }

func side(v float64) models.Side {
	switch {
	case v > 0:
		return models.SideBuy
	case v < 0:
		return models.SideSell
	default:
		return models.SideNeutral
	}
}

// polarity treats zero as positive, the way weight deltas are classed.
func polarity(v float64) models.Polarity {
	if v >= 0 {
		return models.PolarityPos
	}
	return models.PolarityNeg
}

func polarity3(v float64) models.Polarity {
	switch {
	case v > 0:
		return models.PolarityPos
	case v < 0:
		return models.PolarityNeg
	default:
		return models.PolarityZero
	}
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
