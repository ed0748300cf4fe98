package drawstate

import (
	"math"
	"testing"

	"github.com/flowraster/rastercore/internal/pixel"
)

func TestLinearGradientInterpolatesBetweenStops(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0, []GradientStop{
		{Offset: 0, Colour: pixel.Colour{R: 1, A: 1}},
		{Offset: 1, Colour: pixel.Colour{B: 1, A: 1}},
	})

	start := g.SampleAt(0, 0)
	if start.R < 0.9 {
		t.Fatalf("expected the start of the gradient to be near-red, got %+v", start)
	}
	end := g.SampleAt(10, 0)
	if end.B < 0.9 {
		t.Fatalf("expected the end of the gradient to be near-blue, got %+v", end)
	}
	mid := g.SampleAt(5, 0)
	if math.Abs(mid.R-mid.B) > 0.3 {
		t.Fatalf("expected the midpoint to roughly mix red and blue, got %+v", mid)
	}
}

func TestLinearGradientClampsBeyondStops(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0, []GradientStop{
		{Offset: 0.25, Colour: pixel.Colour{R: 1, A: 1}},
		{Offset: 0.75, Colour: pixel.Colour{G: 1, A: 1}},
	})
	before := g.SampleAt(-5, 0)
	if before.R < 0.9 {
		t.Fatalf("expected clamping before the first stop, got %+v", before)
	}
	after := g.SampleAt(15, 0)
	if after.G < 0.9 {
		t.Fatalf("expected clamping after the last stop, got %+v", after)
	}
}

func TestRadialGradientVariesWithDistance(t *testing.T) {
	g := NewRadialGradient(0, 0, 10, []GradientStop{
		{Offset: 0, Colour: pixel.Colour{R: 1, A: 1}},
		{Offset: 1, Colour: pixel.Colour{A: 0}},
	})
	centre := g.SampleAt(0, 0)
	if centre.R < 0.9 {
		t.Fatalf("expected the centre to be near-opaque red, got %+v", centre)
	}
	edge := g.SampleAt(10, 0)
	if edge.A > 0.1 {
		t.Fatalf("expected the radius edge to be near-transparent, got %+v", edge)
	}
}

func TestSortedStopsOrdersByOffset(t *testing.T) {
	stops := sortedStops([]GradientStop{
		{Offset: 0.8},
		{Offset: 0.1},
		{Offset: 0.5},
	})
	for i := 1; i < len(stops); i++ {
		if stops[i].Offset < stops[i-1].Offset {
			t.Fatalf("expected stops sorted ascending, got %+v", stops)
		}
	}
}
