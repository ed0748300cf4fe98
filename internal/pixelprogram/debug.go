package pixelprogram

import "github.com/flowraster/rastercore/internal/pixel"

// NewDebugRenderFunc paints alternating horizontal bands in colour and
// altColour, exposing scanline-block boundaries the same way the original
// renderer's debug_ypos_scan_planner.rs overlay exposes planner tiling -
// useful for visually confirming where one planner's output was merged
// over another's.
func NewDebugRenderFunc(colour, altColour pixel.Colour, bandHeight int) RenderFunc {
	primary := colour.Premultiply()
	alt := altColour.Premultiply()
	if bandHeight <= 0 {
		bandHeight = 1
	}
	return func(target []pixel.PixelF64, xRange [2]int, yPos int) {
		px := primary
		if (yPos/bandHeight)%2 != 0 {
			px = alt
		}
		for x := xRange[0]; x < xRange[1]; x++ {
			target[x] = px
		}
	}
}
