package usecase

import (
	"strconv"
	"strings"

	"AXRadar/internal/domain/models"
	"AXRadar/internal/service/format"
)

const (
	MiniSparkWidth  = 80
	MiniSparkHeight = 24
	FullSparkWidth  = 160
	FullSparkHeight = 36
	SparkPadding    = 3
)

// BuildSparkline maps samples onto the variant's viewport: index to x across
// the full width, value to y between the paddings with the maximum on top.
// Fewer than two samples produce no geometry.
func BuildSparkline(samples []float64, variant models.SparklineVariant) *models.Sparkline {
	if len(samples) < 2 {
		return nil
	}
	w, h := float64(FullSparkWidth), float64(FullSparkHeight)
	if variant == models.SparklineMini {
		w, h = MiniSparkWidth, MiniSparkHeight
	} else {
		variant = models.SparklineFull
	}
	pad := float64(SparkPadding)

	lo, hi := samples[0], samples[0]
	for _, v := range samples[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	last := float64(len(samples) - 1)
	points := make([]models.Point, len(samples))
	pairs := make([]string, len(samples))
	for i, v := range samples {
		p := models.Point{
			X: format.Round1(float64(i) / last * w),
			Y: format.Round1(h - pad - (v-lo)/rng*(h-2*pad)),
		}
		points[i] = p
		pairs[i] = format.Plain(p.X) + "," + format.Plain(p.Y)
	}

	outline := strings.Join(pairs, " ")
	iw, ih := strconv.Itoa(int(w)), strconv.Itoa(int(h))
	return &models.Sparkline{
		Variant:  variant,
		Width:    int(w),
		Height:   int(h),
		Points:   points,
		Polyline: outline,
		Polygon:  outline + " " + iw + "," + ih + " 0," + ih,
	}
}

func samples(ns []models.Number) []float64 {
	out := make([]float64, len(ns))
	for i, n := range ns {
		out[i] = n.Float()
	}
	return out
}
