package usecase

import (
	"math"
	"reflect"
	"testing"

	"AXRadar/internal/domain/models"
)

func TestBarWidth(t *testing.T) {
	cases := []struct {
		v, peak float64
		want    int
	}{
		{15000, 15000, 100},
		{-300, 300, 100},
		{100, 300, 33},
		{150, 300, 50},
		{0, 300, 0},
		{5, 0, 100},
		{0, 0, 0},
		{400, 300, 100},
		{math.NaN(), 300, 0},
		{math.Inf(1), 300, 0},
		{5, math.NaN(), 0},
		{5, math.Inf(1), 0},
	}
	for _, c := range cases {
		if got := barWidth(c.v, c.peak); got != c.want {
			t.Fatalf("barWidth(%v, %v): expected %d, got %d", c.v, c.peak, c.want, got)
		}
	}
}

func TestBuildSparklineThreeSamples(t *testing.T) {
	s := BuildSparkline([]float64{10, 20, 15}, models.SparklineFull)
	if s == nil {
		t.Fatal("expected geometry")
	}
	want := []models.Point{{X: 0, Y: 33}, {X: 80, Y: 3}, {X: 160, Y: 18}}
	if !reflect.DeepEqual(s.Points, want) {
		t.Fatalf("unexpected points %+v", s.Points)
	}
	if s.Polyline != "0,33 80,3 160,18" {
		t.Fatalf("unexpected polyline %q", s.Polyline)
	}
	if s.Polygon != "0,33 80,3 160,18 160,36 0,36" {
		t.Fatalf("unexpected polygon %q", s.Polygon)
	}
	if s.Width != 160 || s.Height != 36 {
		t.Fatalf("unexpected viewport %dx%d", s.Width, s.Height)
	}
}

func TestBuildSparklineMiniViewport(t *testing.T) {
	s := BuildSparkline([]float64{1, 2}, models.SparklineMini)
	want := []models.Point{{X: 0, Y: 21}, {X: 80, Y: 3}}
	if s == nil || !reflect.DeepEqual(s.Points, want) {
		t.Fatalf("unexpected mini geometry %+v", s)
	}
}

func TestBuildSparklineFlatSeries(t *testing.T) {
	s := BuildSparkline([]float64{7, 7, 7}, models.SparklineFull)
	for _, p := range s.Points {
		if p.Y != 33 {
			t.Fatalf("flat series should sit on the bottom padding, got %+v", s.Points)
		}
	}
}

func TestBuildSparklineIsIdempotent(t *testing.T) {
	in := []float64{3.2, 8.9, 1.1, 4.4, 4.4}
	a := BuildSparkline(in, models.SparklineMini)
	b := BuildSparkline(in, models.SparklineMini)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same samples produced different geometry")
	}
	for _, p := range a.Points {
		if p.X < 0 || p.X > 80 || p.Y < 3 || p.Y > 21 {
			t.Fatalf("point outside viewport %+v", p)
		}
	}
}

func TestBuildSparklineNeedsTwoSamples(t *testing.T) {
	if BuildSparkline(nil, models.SparklineFull) != nil {
		t.Fatal("expected no geometry for no samples")
	}
	if BuildSparkline([]float64{42}, models.SparklineMini) != nil {
		t.Fatal("expected no geometry for one sample")
	}
}
