package pixelprogram

import (
	"github.com/flowraster/rastercore/internal/filter"
	"github.com/flowraster/rastercore/internal/pixel"
	"github.com/flowraster/rastercore/internal/transform"
)

// ScanlineSampler renders a single point of a nested layer's content - a
// sprite, in the spec's terms. Implemented by the drawing-state package,
// which owns the full dispatch loop (the sprite's own EdgePlan, DataCache
// and scan planner); this package only needs to call back into it, never
// to own it, which is what keeps pixelprogram free of an import cycle with
// drawstate.
type ScanlineSampler interface {
	SampleAt(sourceX, sourceY float64) pixel.PixelF64
}

// NewBasicSpriteRenderFunc builds the render function for a sprite drawn in
// its own axis-aligned, uniformly scaled and translated region: the common
// (and cheap) case where the sprite isn't rotated or sheared relative to
// its target layer.
func NewBasicSpriteRenderFunc(sampler ScanlineSampler, scaleX, scaleY, translateX, translateY float64) RenderFunc {
	if scaleX == 0 {
		scaleX = 1
	}
	if scaleY == 0 {
		scaleY = 1
	}
	return func(target []pixel.PixelF64, xRange [2]int, yPos int) {
		sourceY := (float64(yPos) - translateY) / scaleY
		for x := xRange[0]; x < xRange[1]; x++ {
			sourceX := (float64(x) - translateX) / scaleX
			target[x] = sampler.SampleAt(sourceX, sourceY).SourceOver(target[x]).(pixel.PixelF64)
		}
	}
}

// NewTransformedSpriteRenderFunc builds the render function for a sprite
// drawn under an arbitrary affine transform (rotation/shear included), so
// every target pixel's source position must be computed independently
// rather than varying linearly with x alone.
func NewTransformedSpriteRenderFunc(sampler ScanlineSampler, xform *transform.TransAffine) RenderFunc {
	inv := xform.Copy().Invert()
	return func(target []pixel.PixelF64, xRange [2]int, yPos int) {
		for x := xRange[0]; x < xRange[1]; x++ {
			sx, sy := float64(x), float64(yPos)
			inv.Transform(&sx, &sy)
			target[x] = sampler.SampleAt(sx, sy).SourceOver(target[x]).(pixel.PixelF64)
		}
	}
}

// NewFilteredScanlineRenderFunc renders a sprite region into a temporary
// buffer at the margins the filter requires, applies the filter, and
// composites the result over the target - the authoritative behaviour the
// spec calls for where the original FilteredScanlineProgram was left
// unimplemented ("todo") in its source.
func NewFilteredScanlineRenderFunc(sampler ScanlineSampler, scaleX, scaleY, translateX, translateY float64, f filter.PixelFilter) RenderFunc {
	if scaleX == 0 {
		scaleX = 1
	}
	if scaleY == 0 {
		scaleY = 1
	}
	above, below := f.InputLines()
	left, right := f.ExtraColumns()

	return func(target []pixel.PixelF64, xRange [2]int, yPos int) {
		outWidth := xRange[1] - xRange[0]
		width := outWidth + left + right
		rows := make([]filter.Line, above+below+1)
		for i := range rows {
			row := make(filter.Line, width)
			sourceY := (float64(yPos-above+i) - translateY) / scaleY
			for col := 0; col < width; col++ {
				sourceX := (float64(xRange[0]-left+col) - translateX) / scaleX
				row[col] = sampler.SampleAt(sourceX, sourceY)
			}
			rows[i] = row
		}

		out := make(filter.Line, outWidth)
		f.FilterLine(yPos, rows, out)
		for i, x := 0, xRange[0]; x < xRange[1]; i, x = i+1, x+1 {
			target[x] = out[i].SourceOver(target[x]).(pixel.PixelF64)
		}
	}
}
