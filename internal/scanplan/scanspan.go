package scanplan

import "github.com/flowraster/rastercore/internal/ids"

// StackEntry is one pixel-program contribution within a ScanSpanStack,
// ordered bottom-first (index 0 is painted first, later entries blend over
// it).
type StackEntry struct {
	Program  ids.PixelProgramDataID
	IsOpaque bool
}

// ScanSpanStack is the set of pixel-program contributions active across a
// single, non-overlapping x-range of one scanline.
type ScanSpanStack struct {
	X0, X1  float64
	Entries []StackEntry
}

// WithFirstSpan builds a one-entry stack spanning the given opaque program
// span - the shape used by the debug-overlay style of scan planner, which
// wants a ready-made foreground stack to merge over whatever a different
// planner already produced.
func WithFirstSpan(x0, x1 float64, program ids.PixelProgramDataID, isOpaque bool) ScanSpanStack {
	return ScanSpanStack{X0: x0, X1: x1, Entries: []StackEntry{{Program: program, IsOpaque: isOpaque}}}
}

// sameEntries reports whether two stacks carry identical program
// contributions, ignoring their x-ranges - used to coalesce adjacent spans.
func sameEntries(a, b []StackEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ScanlinePlan is an ordered sequence of ScanSpanStacks tiling a prefix of
// the x-axis without overlap or gaps.
type ScanlinePlan struct {
	Stacks []ScanSpanStack
}

// FromOrderedStacks wraps an already x-ordered, non-overlapping stack list.
func FromOrderedStacks(stacks []ScanSpanStack) ScanlinePlan {
	return ScanlinePlan{Stacks: stacks}
}

// Clip restricts the plan to [x0, x1), dropping stacks entirely outside the
// range and truncating the two stacks at the boundary.
func (p ScanlinePlan) Clip(x0, x1 float64) ScanlinePlan {
	out := make([]ScanSpanStack, 0, len(p.Stacks))
	for _, s := range p.Stacks {
		lo, hi := s.X0, s.X1
		if hi <= x0 || lo >= x1 {
			continue
		}
		if lo < x0 {
			lo = x0
		}
		if hi > x1 {
			hi = x1
		}
		out = append(out, ScanSpanStack{X0: lo, X1: hi, Entries: s.Entries})
	}
	return ScanlinePlan{Stacks: out}
}

// Merge blends a foreground plan over this one, re-tiling at every boundary
// either plan introduces. combine decides, for the overlapping region, how
// the background entries (bg) and foreground entries (fg) combine; it
// returns the resulting entry list for that sub-range. Regions where only
// the background or only the foreground has a stack pass through unchanged
// (combine isn't called with an empty side).
func (p ScanlinePlan) Merge(foreground ScanlinePlan, combine func(bg, fg []StackEntry) []StackEntry) ScanlinePlan {
	boundaries := collectBoundaries(p.Stacks, foreground.Stacks)
	if len(boundaries) < 2 {
		return p
	}

	var out []ScanSpanStack
	for i := 0; i+1 < len(boundaries); i++ {
		lo, hi := boundaries[i], boundaries[i+1]
		mid := (lo + hi) / 2
		bg := stackEntriesAt(p.Stacks, mid)
		fg := stackEntriesAt(foreground.Stacks, mid)

		var entries []StackEntry
		switch {
		case bg == nil && fg == nil:
			continue
		case fg == nil:
			entries = bg
		case bg == nil:
			entries = fg
		default:
			entries = combine(bg, fg)
		}

		if len(out) > 0 && out[len(out)-1].X1 == lo && sameEntries(out[len(out)-1].Entries, entries) {
			out[len(out)-1].X1 = hi
			continue
		}
		out = append(out, ScanSpanStack{X0: lo, X1: hi, Entries: entries})
	}
	return ScanlinePlan{Stacks: out}
}

func stackEntriesAt(stacks []ScanSpanStack, x float64) []StackEntry {
	for _, s := range stacks {
		if x >= s.X0 && x < s.X1 {
			return s.Entries
		}
	}
	return nil
}

func collectBoundaries(a, b []ScanSpanStack) []float64 {
	set := make(map[float64]struct{}, len(a)*2+len(b)*2)
	for _, s := range a {
		set[s.X0] = struct{}{}
		set[s.X1] = struct{}{}
	}
	for _, s := range b {
		set[s.X0] = struct{}{}
		set[s.X1] = struct{}{}
	}
	out := make([]float64, 0, len(set))
	for x := range set {
		out = append(out, x)
	}
	insertionSortFloats(out)
	return out
}

func insertionSortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		v := xs[i]
		j := i - 1
		for j >= 0 && xs[j] > v {
			xs[j+1] = xs[j]
			j--
		}
		xs[j+1] = v
	}
}
