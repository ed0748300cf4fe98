package filter

import "github.com/flowraster/rastercore/internal/pixel"

// AlphaSource supplies a bilinearly-interpolated alpha value at an
// arbitrary fractional (x, y) position - implemented by a texture wrapper
// in the drawing-state package, kept as a minimal interface here so this
// package never needs to know a texture's storage format.
type AlphaSource interface {
	SampleAlpha(x, y float64) float64
}

// MaskFilter multiplies each output pixel's channels by the mask texture's
// alpha at the corresponding (scaled) position - grounded on mask_filter.rs,
// whose 4-corner manual bilinear fetch this replaces with a call into
// AlphaSource (the sampling itself is delegated, not the multiply).
type MaskFilter struct {
	mask           AlphaSource
	multX, multY   float64
}

// NewMaskFilter builds a mask filter sampling mask at multX/multY times the
// output pixel position.
func NewMaskFilter(mask AlphaSource, multX, multY float64) *MaskFilter {
	return &MaskFilter{mask: mask, multX: multX, multY: multY}
}

func (f *MaskFilter) InputLines() (above, below int)            { return 0, 0 }
func (f *MaskFilter) ExtraColumns() (left, right int)           { return 0, 0 }
func (f *MaskFilter) WithScale(_, _ float64) (PixelFilter, bool) { return nil, false }

func (f *MaskFilter) FilterLine(yPos int, inputLines []Line, out Line) {
	in := inputLines[0]
	my := float64(yPos) * f.multY
	for x := range out {
		mx := float64(x) * f.multX
		alpha := f.mask.SampleAlpha(mx, my)
		out[x] = in[x].MulComponent(alpha).(pixel.PixelF64)
	}
}
