package rastercore

import (
	"testing"

	"github.com/flowraster/rastercore/internal/command"
	"github.com/flowraster/rastercore/internal/pixel"
)

func TestCanvasRenderFilledSquareIsOpaque(t *testing.T) {
	c := NewCanvas(20, 20, WithMultithreading(false))

	err := c.ApplyAll([]command.Draw{
		{Op: command.OpFillColor, Colour: pixel.Colour{R: 1, A: 1}},
		{Op: command.OpNewPath},
		{Op: command.OpMove, X: 5, Y: 5},
		{Op: command.OpLine, X: 15, Y: 5},
		{Op: command.OpLine, X: 15, Y: 15},
		{Op: command.OpLine, X: 5, Y: 15},
		{Op: command.OpClosePath},
		{Op: command.OpFill},
	})
	if err != nil {
		t.Fatalf("ApplyAll: %v", err)
	}

	out := c.Render()
	idx := (10*20 + 10) * 4
	if out[idx] != 255 || out[idx+3] != 255 {
		t.Fatalf("expected an opaque red pixel at the square's centre, got rgba=%v", out[idx:idx+4])
	}

	outsideIdx := (1*20 + 1) * 4
	if out[outsideIdx+3] != 0 {
		t.Fatalf("expected a transparent pixel outside the square, got alpha=%d", out[outsideIdx+3])
	}
}

func TestCanvasRenderConcurrentMatchesSequential(t *testing.T) {
	seq := NewCanvas(30, 30, WithMultithreading(false))
	par := NewCanvas(30, 30, WithMultithreading(true))

	draws := []command.Draw{
		{Op: command.OpFillColor, Colour: pixel.Colour{G: 1, A: 1}},
		{Op: command.OpNewPath},
		{Op: command.OpMove, X: 2, Y: 2},
		{Op: command.OpLine, X: 28, Y: 2},
		{Op: command.OpLine, X: 28, Y: 28},
		{Op: command.OpLine, X: 2, Y: 28},
		{Op: command.OpClosePath},
		{Op: command.OpFill},
	}
	if err := seq.ApplyAll(draws); err != nil {
		t.Fatalf("seq.ApplyAll: %v", err)
	}
	if err := par.ApplyAll(draws); err != nil {
		t.Fatalf("par.ApplyAll: %v", err)
	}

	seqOut, parOut := seq.Render(), par.Render()
	if len(seqOut) != len(parOut) {
		t.Fatalf("buffer length mismatch: %d vs %d", len(seqOut), len(parOut))
	}
	for i := range seqOut {
		if seqOut[i] != parOut[i] {
			t.Fatalf("byte %d differs between sequential and concurrent render: %d vs %d", i, seqOut[i], parOut[i])
		}
	}
}

func TestCanvasRenderCompositesNonRootLayers(t *testing.T) {
	c := NewCanvas(10, 10, WithMultithreading(false))

	square := func(x, y, x2, y2 float64) []command.Draw {
		return []command.Draw{
			{Op: command.OpNewPath},
			{Op: command.OpMove, X: x, Y: y},
			{Op: command.OpLine, X: x2, Y: y},
			{Op: command.OpLine, X: x2, Y: y2},
			{Op: command.OpLine, X: x, Y: y2},
			{Op: command.OpClosePath},
			{Op: command.OpFill},
		}
	}

	draws := []command.Draw{
		{Op: command.OpLayer, Layer: 0},
		{Op: command.OpFillColor, Colour: pixel.Colour{R: 1, A: 1}},
	}
	draws = append(draws, square(0, 0, 10, 10)...)
	draws = append(draws, command.Draw{Op: command.OpLayer, Layer: 3}, command.Draw{Op: command.OpFillColor, Colour: pixel.Colour{G: 1, A: 1}})
	draws = append(draws, square(2, 2, 8, 8)...)

	if err := c.ApplyAll(draws); err != nil {
		t.Fatalf("ApplyAll: %v", err)
	}

	out := c.Render()
	center := (5*10 + 5) * 4
	if out[center] != 0 || out[center+1] != 255 {
		t.Fatalf("expected layer 3's green fill to occlude layer 0's red fill at the centre, got rgba=%v", out[center:center+4])
	}
	corner := (1*10 + 1) * 4
	if out[corner] != 255 || out[corner+1] != 0 {
		t.Fatalf("expected layer 0's red fill to still show outside layer 3's smaller square, got rgba=%v", out[corner:corner+4])
	}
}

func TestCanvasRenderPaintsClearColourAsBackground(t *testing.T) {
	c := NewCanvas(4, 4, WithMultithreading(false))
	if err := c.Apply(command.Draw{Op: command.OpClearCanvas, Colour: pixel.Colour{B: 1, A: 1}}); err != nil {
		t.Fatalf("Apply(OpClearCanvas): %v", err)
	}

	out := c.Render()
	if out[2] != 255 || out[3] != 255 {
		t.Fatalf("expected the cleared background to show through as opaque blue, got rgba=%v", out[0:4])
	}
}
