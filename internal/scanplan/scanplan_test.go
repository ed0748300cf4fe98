package scanplan

import (
	"testing"

	"github.com/flowraster/rastercore/internal/edge"
	"github.com/flowraster/rastercore/internal/edgeplan"
	"github.com/flowraster/rastercore/internal/ids"
)

func rect(shape edge.ShapeID, x0, y0, x1, y1 float64) edge.Descriptor {
	return edge.NewRectangleEdge(shape, x0, y0, x1, y1)
}

func TestPlanScanlinesSingleOpaqueRectangle(t *testing.T) {
	p := edgeplan.New()
	p.AddShape(1, edgeplan.ShapeDescriptor{
		Programs: []ids.PixelProgramDataID{100},
		IsOpaque: true,
		ZIndex:   0,
	}, []edge.Descriptor{rect(1, 2, 0, 8, 10)})
	p.PrepareToRender()

	plans := PlanScanlines(p, []float64{5}, [2]float64{0, 10}, Identity())
	if len(plans) != 1 {
		t.Fatalf("expected 1 plan, got %d", len(plans))
	}
	stacks := plans[0].Stacks
	if len(stacks) != 1 {
		t.Fatalf("expected 1 stack (outside the rectangle yields no stack), got %d: %v", len(stacks), stacks)
	}
	s := stacks[0]
	if s.X0 != 2 || s.X1 != 8 {
		t.Fatalf("expected stack spanning [2,8), got [%v,%v)", s.X0, s.X1)
	}
	if len(s.Entries) != 1 || s.Entries[0].Program != 100 {
		t.Fatalf("expected single program 100, got %v", s.Entries)
	}
}

func TestPlanScanlinesOpaqueOcclusionTruncatesBelow(t *testing.T) {
	p := edgeplan.New()
	p.AddShape(1, edgeplan.ShapeDescriptor{
		Programs: []ids.PixelProgramDataID{1},
		IsOpaque: false,
		ZIndex:   0,
	}, []edge.Descriptor{rect(1, 0, 0, 10, 10)})
	p.AddShape(2, edgeplan.ShapeDescriptor{
		Programs: []ids.PixelProgramDataID{2},
		IsOpaque: true,
		ZIndex:   1,
	}, []edge.Descriptor{rect(2, 0, 0, 10, 10)})
	p.PrepareToRender()

	plans := PlanScanlines(p, []float64{5}, [2]float64{0, 10}, Identity())
	stacks := plans[0].Stacks
	if len(stacks) != 1 {
		t.Fatalf("expected a single coalesced stack, got %d: %v", len(stacks), stacks)
	}
	if len(stacks[0].Entries) != 1 || stacks[0].Entries[0].Program != 2 {
		t.Fatalf("opaque shape 2 should occlude transparent shape 1 below it, got %v", stacks[0].Entries)
	}
}

func TestPlanScanlinesTransparentStackKeepsAllBelow(t *testing.T) {
	p := edgeplan.New()
	p.AddShape(1, edgeplan.ShapeDescriptor{
		Programs: []ids.PixelProgramDataID{1},
		IsOpaque: false,
		ZIndex:   0,
	}, []edge.Descriptor{rect(1, 0, 0, 10, 10)})
	p.AddShape(2, edgeplan.ShapeDescriptor{
		Programs: []ids.PixelProgramDataID{2},
		IsOpaque: false,
		ZIndex:   1,
	}, []edge.Descriptor{rect(2, 0, 0, 10, 10)})
	p.PrepareToRender()

	plans := PlanScanlines(p, []float64{5}, [2]float64{0, 10}, Identity())
	entries := plans[0].Stacks[0].Entries
	if len(entries) != 2 {
		t.Fatalf("expected both transparent shapes in the stack, got %v", entries)
	}
	if entries[0].Program != 1 || entries[1].Program != 2 {
		t.Fatalf("expected bottom-first order [1,2], got %v", entries)
	}
}

func TestPlanScanlinesZIndexOrdersStackBottomFirst(t *testing.T) {
	p := edgeplan.New()
	// Declare the higher z-index shape first, to make sure ordering follows
	// ZIndex rather than declaration order when the two disagree.
	p.AddShape(10, edgeplan.ShapeDescriptor{
		Programs: []ids.PixelProgramDataID{10},
		ZIndex:   5,
	}, []edge.Descriptor{rect(10, 0, 0, 10, 10)})
	p.AddShape(20, edgeplan.ShapeDescriptor{
		Programs: []ids.PixelProgramDataID{20},
		ZIndex:   1,
	}, []edge.Descriptor{rect(20, 0, 0, 10, 10)})
	p.PrepareToRender()

	plans := PlanScanlines(p, []float64{5}, [2]float64{0, 10}, Identity())
	entries := plans[0].Stacks[0].Entries
	if len(entries) != 2 || entries[0].Program != 20 || entries[1].Program != 10 {
		t.Fatalf("expected bottom-first order by ascending z-index [20,10], got %v", entries)
	}
}

func TestPlanScanlinesClipsToXRange(t *testing.T) {
	p := edgeplan.New()
	p.AddShape(1, edgeplan.ShapeDescriptor{
		Programs: []ids.PixelProgramDataID{1},
		IsOpaque: true,
	}, []edge.Descriptor{rect(1, -5, 0, 15, 10)})
	p.PrepareToRender()

	plans := PlanScanlines(p, []float64{5}, [2]float64{0, 10}, Identity())
	s := plans[0].Stacks
	if len(s) != 1 || s[0].X0 != 0 || s[0].X1 != 10 {
		t.Fatalf("expected the stack clipped to [0,10), got %v", s)
	}
}

func TestPlanScanlinesAppliesPixelTransform(t *testing.T) {
	p := edgeplan.New()
	p.AddShape(1, edgeplan.ShapeDescriptor{
		Programs: []ids.PixelProgramDataID{1},
		IsOpaque: true,
	}, []edge.Descriptor{rect(1, 2, 0, 4, 10)})
	p.PrepareToRender()

	xform := NewScanlineTransform(2, 0) // 2 pixels per source unit
	plans := PlanScanlines(p, []float64{5}, [2]float64{0, 10}, xform)
	s := plans[0].Stacks[0]
	if s.X0 != 4 || s.X1 != 8 {
		t.Fatalf("expected pixel-space span [4,8), got [%v,%v)", s.X0, s.X1)
	}
}

func TestScanSpanStackSameEntriesCoalesce(t *testing.T) {
	a := []StackEntry{{Program: 1, IsOpaque: true}}
	b := []StackEntry{{Program: 1, IsOpaque: true}}
	if !sameEntries(a, b) {
		t.Fatalf("expected identical entry lists to compare equal")
	}
	c := []StackEntry{{Program: 2, IsOpaque: true}}
	if sameEntries(a, c) {
		t.Fatalf("expected differing entry lists to compare unequal")
	}
}

func TestScanlinePlanMergeCombinesOverlap(t *testing.T) {
	bg := FromOrderedStacks([]ScanSpanStack{WithFirstSpan(0, 10, 1, true)})
	fg := FromOrderedStacks([]ScanSpanStack{WithFirstSpan(5, 15, 2, true)})

	merged := bg.Merge(fg, func(bg, fg []StackEntry) []StackEntry {
		return append(append([]StackEntry{}, bg...), fg...)
	})

	if len(merged.Stacks) != 3 {
		t.Fatalf("expected 3 tiles (bg-only, overlap, fg-only), got %d: %v", len(merged.Stacks), merged.Stacks)
	}
	if merged.Stacks[0].X0 != 0 || merged.Stacks[0].X1 != 5 {
		t.Fatalf("expected first tile [0,5), got %v", merged.Stacks[0])
	}
	if merged.Stacks[1].X0 != 5 || merged.Stacks[1].X1 != 10 || len(merged.Stacks[1].Entries) != 2 {
		t.Fatalf("expected overlap tile [5,10) with 2 entries, got %v", merged.Stacks[1])
	}
	if merged.Stacks[2].X0 != 10 || merged.Stacks[2].X1 != 15 {
		t.Fatalf("expected last tile [10,15), got %v", merged.Stacks[2])
	}
}

func TestScanlinePlanClip(t *testing.T) {
	plan := FromOrderedStacks([]ScanSpanStack{WithFirstSpan(0, 10, 1, true), WithFirstSpan(10, 20, 2, true)})
	clipped := plan.Clip(5, 15)
	if len(clipped.Stacks) != 2 {
		t.Fatalf("expected 2 stacks after clipping, got %d", len(clipped.Stacks))
	}
	if clipped.Stacks[0].X0 != 5 || clipped.Stacks[0].X1 != 10 {
		t.Fatalf("expected first stack truncated to [5,10), got %v", clipped.Stacks[0])
	}
	if clipped.Stacks[1].X0 != 10 || clipped.Stacks[1].X1 != 15 {
		t.Fatalf("expected second stack truncated to [10,15), got %v", clipped.Stacks[1])
	}
}
