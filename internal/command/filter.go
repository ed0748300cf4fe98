package command

import (
	"github.com/flowraster/rastercore/internal/drawstate"
	"github.com/flowraster/rastercore/internal/filter"
	"github.com/flowraster/rastercore/internal/ids"
)

// FilterOp tags one stage of a DrawSpriteWithFilters pipeline. The command
// stream carries filters as a small inline list of tagged specs rather than
// ids into a separate filter registry - §6's external interface only names
// `DrawSpriteWithFilters(id, filters[])`, and nothing in the pack grounds a
// persistent named-filter resource table, so each draw simply describes the
// pipeline it wants built fresh.
type FilterOp int

const (
	FilterGaussianBlur FilterOp = iota
	FilterAlphaBlend
	FilterMask
	FilterDisplacement
)

// FilterSpec describes one filter.PixelFilter stage. Only the fields
// relevant to Op are read.
type FilterSpec struct {
	Op FilterOp

	Radius           float64 // GaussianBlur: symmetric radius
	RadiusX, RadiusY float64 // GaussianBlur: set instead of Radius for an anisotropic blur (either may be left 0 to mean "use Radius")

	Alpha float64 // AlphaBlend

	Texture        ids.TextureID // Mask/Displacement: the alpha/displacement source texture
	ScaleX, ScaleY float64       // Mask: per-axis sample scale

	MaxOffsetX, MaxOffsetY float64 // Displacement: maximum pixel offset
}

// buildFilter turns a FilterSpec into a filter.PixelFilter, resolving
// texture references against canvas. A FilterSpec naming an unknown texture
// still yields its filter, built over the empty transparent texture that
// canvas.Texture degrades an unknown id to; ok is false only for an
// unrecognised Op.
func buildFilter(canvas *drawstate.CanvasDrawing, spec FilterSpec) (filter.PixelFilter, bool) {
	switch spec.Op {
	case FilterGaussianBlur:
		if spec.RadiusX != 0 || spec.RadiusY != 0 {
			rx, ry := spec.RadiusX, spec.RadiusY
			if rx == 0 {
				rx = spec.Radius
			}
			if ry == 0 {
				ry = spec.Radius
			}
			return filter.NewGaussianBlurFilterXY(rx, ry), true
		}
		return filter.NewGaussianBlurFilter(spec.Radius), true

	case FilterAlphaBlend:
		return filter.NewAlphaBlendFilter(spec.Alpha), true

	case FilterMask:
		// canvas.Texture degrades an unknown id to an empty, fully
		// transparent texture rather than nil, so the mask simply
		// contributes no alpha - no special-case needed here.
		tex := canvas.Texture(spec.Texture)
		return filter.NewMaskFilter(tex, spec.ScaleX, spec.ScaleY), true

	case FilterDisplacement:
		tex := canvas.Texture(spec.Texture)
		return filter.NewDisplacementMapFilter(tex, spec.MaxOffsetX, spec.MaxOffsetY), true

	default:
		return nil, false
	}
}

// buildFilterChain resolves a list of FilterSpecs into a single
// filter.PixelFilter, dropping specs whose Op is not recognised (specs that
// reference unknown textures are kept; see buildFilter).
// An empty or fully-dropped list returns an empty CombinedFilter, which is
// the identity filter per §8's "Filter identity" property.
func buildFilterChain(canvas *drawstate.CanvasDrawing, specs []FilterSpec) filter.PixelFilter {
	filters := make([]filter.PixelFilter, 0, len(specs))
	for _, spec := range specs {
		f, ok := buildFilter(canvas, spec)
		if !ok {
			continue
		}
		filters = append(filters, f)
	}
	return filter.NewCombinedFilter(filters...)
}
