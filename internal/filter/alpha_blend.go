package filter

import "github.com/flowraster/rastercore/internal/pixel"

// AlphaBlendFilter scales every channel (including alpha, since the working
// format is premultiplied) of each pixel by a constant factor - grounded on
// alpha_blend_filter.rs, which does the same via TPixel::Component multiply.
type AlphaBlendFilter struct {
	alpha float64
}

// NewAlphaBlendFilter builds a filter multiplying every pixel by alpha.
func NewAlphaBlendFilter(alpha float64) *AlphaBlendFilter {
	return &AlphaBlendFilter{alpha: alpha}
}

func (f *AlphaBlendFilter) InputLines() (above, below int)            { return 0, 0 }
func (f *AlphaBlendFilter) ExtraColumns() (left, right int)           { return 0, 0 }
func (f *AlphaBlendFilter) WithScale(_, _ float64) (PixelFilter, bool) { return nil, false }

func (f *AlphaBlendFilter) FilterLine(_ int, inputLines []Line, out Line) {
	in := inputLines[0]
	for i := range out {
		out[i] = in[i].MulComponent(f.alpha).(pixel.PixelF64)
	}
}
