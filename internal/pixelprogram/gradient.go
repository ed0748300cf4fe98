package pixelprogram

import (
	"github.com/flowraster/rastercore/internal/pixel"
	"github.com/flowraster/rastercore/internal/transform"
)

// GradientSampler resolves the colour of a gradient at an arbitrary point
// in the gradient's own local geometry (linear, radial, or whatever shape
// the drawing-state package's gradient resource implements); this package
// only needs the projected result, not the gradient's stop table or
// geometry - grounded on the deleted internal/span package's gradient LUT
// technique, re-homed behind an interface instead of a concrete pixel
// source so it composes with the pixel-program cache's data-erasure model.
type GradientSampler interface {
	SampleAt(x, y float64) pixel.Colour
}

// NewGradientFillRenderFunc builds the render function for filling a shape
// with a gradient, mapping each target pixel into the gradient's local
// coordinate space via the inverse of xform before sampling.
func NewGradientFillRenderFunc(gradient GradientSampler, xform *transform.TransAffine) RenderFunc {
	inv := xform.Copy().Invert()
	return func(target []pixel.PixelF64, xRange [2]int, yPos int) {
		for x := xRange[0]; x < xRange[1]; x++ {
			gx, gy := float64(x), float64(yPos)
			inv.Transform(&gx, &gy)
			colour := gradient.SampleAt(gx, gy)
			target[x] = colour.Premultiply().SourceOver(target[x]).(pixel.PixelF64)
		}
	}
}
