// Package scanplan turns a prepared edgeplan.EdgePlan into, for each
// requested scanline, an ordered tiling of pixel-program stacks ready for
// the frame renderer to execute. It is the Go counterpart of the original
// renderer's scan-planning stage (no single scan_planner.rs file survived
// into the retrieved original_source - this package follows the trait shape
// implied by debug_ypos_scan_planner.rs, which decorates a "real" planner's
// output with a debug overlay span, revealing the ScanlineTransform /
// ScanlinePlan / merge contract a planner must satisfy).
package scanplan

import (
	"sort"

	"github.com/flowraster/rastercore/internal/edge"
	"github.com/flowraster/rastercore/internal/edgeplan"
	"github.com/flowraster/rastercore/internal/ids"
)

// activeShape is one shape currently "inside" at a given x, carrying enough
// of its descriptor to sort and emit a stack entry.
type activeShape struct {
	id        edge.ShapeID
	zIndex    int64
	declOrder int
	isOpaque  bool
	programs  []ids.PixelProgramDataID
}

// PlanScanlines walks every y in yPositions, answering one batched
// intercept query against plan, and returns one ScanlinePlan per y in the
// same order. xRange clips the result to [xRange[0], xRange[1]) in source
// space; xform converts the surviving x boundaries to pixel space in the
// output.
//
// plan.PrepareToRender must already have been called; behaviour is
// undefined otherwise (same contract as edgeplan.EdgePlan.InterceptsOnScanlines).
func PlanScanlines(plan *edgeplan.EdgePlan, yPositions []float64, xRange [2]float64, xform ScanlineTransform) []ScanlinePlan {
	intercepts := make([][]edgeplan.EdgeIntercept, len(yPositions))
	plan.InterceptsOnScanlines(yPositions, intercepts)

	out := make([]ScanlinePlan, len(yPositions))
	for i := range yPositions {
		out[i] = planOneScanline(plan, intercepts[i], xRange, xform)
	}
	return out
}

func planOneScanline(plan *edgeplan.EdgePlan, ics []edgeplan.EdgeIntercept, xRange [2]float64, xform ScanlineTransform) ScanlinePlan {
	counters := make(map[edge.ShapeID]int)
	var stacks []ScanSpanStack

	currentX := xRange[0]
	emit := func(x0, x1 float64) {
		if x1 <= x0 {
			return
		}
		active := activeShapesAt(plan, counters)
		if len(active) == 0 {
			return
		}
		entries := buildStackEntries(active)
		if len(entries) == 0 {
			return
		}
		px0, px1 := xform.SourceXToPixelX(x0), xform.SourceXToPixelX(x1)
		if len(stacks) > 0 && stacks[len(stacks)-1].X1 == px0 && sameEntries(stacks[len(stacks)-1].Entries, entries) {
			stacks[len(stacks)-1].X1 = px1
			return
		}
		stacks = append(stacks, ScanSpanStack{X0: px0, X1: px1, Entries: entries})
	}

	for _, ic := range ics {
		if ic.X < xRange[0] {
			counters[ic.Shape] += int(ic.Direction)
			continue
		}
		if ic.X >= xRange[1] {
			break
		}
		if ic.X > currentX {
			emit(currentX, ic.X)
			currentX = ic.X
		}
		counters[ic.Shape] += int(ic.Direction)
	}
	if currentX < xRange[1] {
		emit(currentX, xRange[1])
	}

	return FromOrderedStacks(stacks)
}

// activeShapesAt returns the shapes currently "inside" (per their own
// winding rule) given the accumulated crossing counters, sorted bottom-first
// by ascending z-index with declaration order breaking ties, and then
// truncated from the bottom up to the topmost opaque shape (everything
// beneath full occlusion is dropped - "their programs are not listed").
func activeShapesAt(plan *edgeplan.EdgePlan, counters map[edge.ShapeID]int) []activeShape {
	var active []activeShape
	for shapeID, count := range counters {
		if count == 0 {
			continue
		}
		desc, ok := plan.ShapeDescriptorFor(shapeID)
		if !ok {
			continue
		}
		inside := count != 0
		if desc.Winding == edgeplan.EvenOdd {
			inside = count%2 != 0
		}
		if !inside {
			continue
		}
		active = append(active, activeShape{
			id:        shapeID,
			zIndex:    desc.ZIndex,
			declOrder: plan.DeclarationOrder(shapeID),
			isOpaque:  desc.IsOpaque,
			programs:  desc.Programs,
		})
	}

	sort.Slice(active, func(i, j int) bool {
		if active[i].zIndex != active[j].zIndex {
			return active[i].zIndex < active[j].zIndex
		}
		return active[i].declOrder < active[j].declOrder
	})

	for i := len(active) - 1; i >= 0; i-- {
		if active[i].isOpaque {
			return active[i:]
		}
	}
	return active
}

func buildStackEntries(active []activeShape) []StackEntry {
	var entries []StackEntry
	for _, a := range active {
		for _, prog := range a.programs {
			entries = append(entries, StackEntry{Program: prog, IsOpaque: a.isOpaque})
		}
	}
	return entries
}
