package pixelprogram

import (
	"github.com/flowraster/rastercore/internal/pixel"
	"github.com/flowraster/rastercore/internal/transform"
)

// TextureSampler resolves a bilinearly (and, for mip-mapped storage,
// trilinearly across levels) filtered sample of a texture at a fractional
// texel position. Implemented by the texture type in the drawing-state
// package (component G), which knows how to pick and blend mip levels;
// this package only needs the sampled result.
type TextureSampler interface {
	SampleBilinear(u, v, lod float64) pixel.Pixel16
}

// NewTextureFillRenderFunc builds the render function for filling a shape
// with a texture, mapping each target pixel to a texel position via the
// inverse of xform and sampling at a fixed level-of-detail bias (lod 0
// samples the base level; the caller computes a higher lod when the
// texture is being minified, to engage mip-mapping).
func NewTextureFillRenderFunc(sampler TextureSampler, xform *transform.TransAffine, lod float64) RenderFunc {
	inv := xform.Copy().Invert()
	return func(target []pixel.PixelF64, xRange [2]int, yPos int) {
		for x := xRange[0]; x < xRange[1]; x++ {
			u, v := float64(x), float64(yPos)
			inv.Transform(&u, &v)
			px := sampler.SampleBilinear(u, v, lod)
			f64 := pixel.PixelF64{
				R: float64(px.R) / 65535,
				G: float64(px.G) / 65535,
				B: float64(px.B) / 65535,
				A: float64(px.A) / 65535,
			}
			target[x] = f64.SourceOver(target[x]).(pixel.PixelF64)
		}
	}
}
