// Package filter implements the post-processing stage a pixel program can
// apply to a rendered scanline region: blur, alpha adjustment, masking and
// displacement mapping, plus a combinator that chains several filters into
// one. It is a Go-idiomatic port of the original renderer's filters module
// (original_source/render_software/src/filters/*.rs), which this package
// follows directly for input_lines/extra_columns/filter_line semantics.
package filter

import "github.com/flowraster/rastercore/internal/pixel"

// Line is one horizontal run of premultiplied working-format pixels.
type Line = []pixel.PixelF64

// PixelFilter processes one output line at a time from a window of input
// lines, so the caller never needs the whole image resident to apply it.
type PixelFilter interface {
	// InputLines reports how many extra lines above and below the target
	// line must be supplied in FilterLine's input window.
	InputLines() (above, below int)

	// ExtraColumns reports how many extra columns to the left and right of
	// the output line's width must be present in each input line.
	ExtraColumns() (left, right int)

	// WithScale returns a rescaled copy of the filter appropriate for
	// rendering at (sx, sy) times the resolution this filter was
	// configured for, or ok=false if the filter has no scale dependence
	// (and can be reused unchanged).
	WithScale(sx, sy float64) (rescaled PixelFilter, ok bool)

	// FilterLine writes exactly len(out) pixels, computed from inputLines
	// (len(inputLines) == above+below+1, the target row at index `above`,
	// each row len(out)+left+right pixels wide).
	FilterLine(yPos int, inputLines []Line, out Line)
}

func ceilPositive(v float64) int {
	n := int(v)
	if float64(n) < v {
		n++
	}
	if n < 0 {
		return 0
	}
	return n
}
