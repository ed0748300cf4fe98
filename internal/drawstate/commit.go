package drawstate

import (
	"github.com/flowraster/rastercore/internal/edge"
	"github.com/flowraster/rastercore/internal/edgeplan"
	"github.com/flowraster/rastercore/internal/filter"
	"github.com/flowraster/rastercore/internal/ids"
	"github.com/flowraster/rastercore/internal/pixel"
	"github.com/flowraster/rastercore/internal/pixelprogram"
	"github.com/flowraster/rastercore/internal/transform"
)

// Fill commits the current path's flattened polygons as a single shape in
// the current layer, filled under the current winding rule with the current
// fill source. Per §4.G's path state machine, the path is not reset: a
// further Fill/Stroke with no intervening NewPath reuses the same geometry.
func (c *CanvasDrawing) Fill() {
	polys := c.path.flattenedPolygons()
	if len(polys) == 0 {
		return
	}
	c.commitPolygons(polys, c.cur.winding)
}

// Stroke commits the outline of the current path stroked with the current
// stroke style as a single non-zero-wound shape, painted with the stroke
// colour.
func (c *CanvasDrawing) Stroke() {
	polys := c.path.strokeOutline(c.cur.strokeStyle)
	if len(polys) == 0 {
		return
	}
	c.commitPolygonsWithColour(polys, edgeplan.NonZero, c.cur.strokeColour)
}

func (c *CanvasDrawing) commitPolygons(polys []polygon, winding edgeplan.WindingRule) {
	switch c.cur.fill.kind {
	case FillTextureKind:
		c.commitPolygonsWithProgram(polys, winding, c.textureRenderFunc())
	case FillGradientKind:
		c.commitPolygonsWithProgram(polys, winding, c.gradientRenderFunc())
	default:
		c.commitPolygonsWithColour(polys, winding, c.cur.fill.colour)
	}
}

func (c *CanvasDrawing) commitPolygonsWithColour(polys []polygon, winding edgeplan.WindingRule, col pixel.Colour) {
	program := c.solid
	if col.A < 1 {
		program = c.sourceOver
	}
	dataID := pixelprogram.StoreProgramData(c.data, program, col)
	c.commitPolygonsWithDataID(polys, winding, dataID, col.A >= 1)
}

func (c *CanvasDrawing) commitPolygonsWithProgram(polys []polygon, winding edgeplan.WindingRule, fn pixelprogram.RenderFunc) {
	dataID := pixelprogram.StoreProgramData(c.data, c.funcProg, fn)
	c.commitPolygonsWithDataID(polys, winding, dataID, false)
}

func (c *CanvasDrawing) commitPolygonsWithDataID(polys []polygon, winding edgeplan.WindingRule, dataID ids.PixelProgramDataID, opaque bool) {
	layer := c.CurrentLayer()
	layer.UseProgramData(dataID)
	layer.SetTransform(c.cur.transform)
	shapeID := layer.NextShapeID()
	zIndex := layer.NextZIndex()

	descriptor := edgeplan.ShapeDescriptor{
		Programs: []ids.PixelProgramDataID{dataID},
		IsOpaque: opaque,
		ZIndex:   zIndex,
		Winding:  winding,
	}

	var edges []edge.Descriptor
	for _, p := range polys {
		if len(p.points) < 2 {
			continue
		}
		edges = append(edges, edge.NewPolylineEdge(shapeID, p.points))
	}
	if len(edges) == 0 {
		return
	}
	layer.Plan.AddShape(shapeID, descriptor, edges)
}

// textureRenderFunc builds a RenderFunc that samples the current fill
// texture through the current fill transform's inverse, mapped onto the
// fill's anchor rectangle.
func (c *CanvasDrawing) textureRenderFunc() pixelprogram.RenderFunc {
	tex := c.Texture(c.cur.fill.texture)
	xform := c.fillXform()
	return pixelprogram.NewTextureFillRenderFunc(tex, xform, 0)
}

// gradientRenderFunc builds a RenderFunc that samples the current fill
// gradient through the current fill transform's inverse.
func (c *CanvasDrawing) gradientRenderFunc() pixelprogram.RenderFunc {
	grad := c.Gradient(c.cur.fill.gradient)
	xform := c.fillXform()
	return pixelprogram.NewGradientFillRenderFunc(grad, xform)
}

func (c *CanvasDrawing) fillXform() *transform.TransAffine {
	if c.cur.fill.transform != nil {
		return c.cur.fill.transform
	}
	return transform.NewTransAffine()
}

// layerSampler adapts a sprite's source layer into pixelprogram.
// ScanlineSampler, deferring to whatever LayerRasterizer the frame renderer
// installed for the current frame. Before a rasterizer is installed (e.g. a
// DrawSprite issued before StartFrame completes its first pass) it samples
// as fully transparent, matching §7's missing-resource degrade-to-no-op
// semantics generalised to "not yet renderable".
type layerSampler struct {
	canvas *CanvasDrawing
	layer  ids.LayerHandle
}

func (s layerSampler) SampleAt(x, y float64) pixel.PixelF64 {
	if s.canvas.rasterizer == nil {
		return pixel.PixelF64{}
	}
	return s.canvas.rasterizer.SampleLayer(s.layer, x, y)
}

// DrawSprite inserts a shape into the current layer that replays the named
// sprite's rendered content through the current sprite transform, using an
// axis-aligned BasicSprite program when the composed transform has no
// rotation/shear and a TransformedSprite program otherwise.
func (c *CanvasDrawing) DrawSprite(id ids.SpriteID) {
	layer, ok := c.sprites.Lookup(c.cur.namespace, id)
	if !ok {
		return
	}
	sampler := layerSampler{canvas: c, layer: layer}
	composed := c.cur.transform.Copy().Multiply(c.cur.spriteXform)

	var fn pixelprogram.RenderFunc
	if isAxisAligned(composed) {
		sx, sy := composed.GetScalingAbs()
		tx, ty := composed.GetTranslation()
		fn = pixelprogram.NewBasicSpriteRenderFunc(sampler, sx, sy, tx, ty)
	} else {
		fn = pixelprogram.NewTransformedSpriteRenderFunc(sampler, composed)
	}

	footprint := spriteFootprint(composed)
	c.commitPolygonsWithProgram([]polygon{{points: footprint}}, edgeplan.NonZero, fn)
}

// DrawSpriteWithFilters is DrawSprite, post-processing the sprite's content
// through a combined filter chain before it's composited.
func (c *CanvasDrawing) DrawSpriteWithFilters(id ids.SpriteID, f filter.PixelFilter) {
	layer, ok := c.sprites.Lookup(c.cur.namespace, id)
	if !ok {
		return
	}
	sampler := layerSampler{canvas: c, layer: layer}
	composed := c.cur.transform.Copy().Multiply(c.cur.spriteXform)
	sx, sy := composed.GetScalingAbs()
	tx, ty := composed.GetTranslation()
	fn := pixelprogram.NewFilteredScanlineRenderFunc(sampler, sx, sy, tx, ty, f)

	footprint := spriteFootprint(composed)
	c.commitPolygonsWithProgram([]polygon{{points: footprint}}, edgeplan.NonZero, fn)
}

func isAxisAligned(t *transform.TransAffine) bool {
	rot := t.GetRotation()
	return rot == 0 && t.SHX == 0 && t.SHY == 0
}

// spriteFootprint returns the unit-square footprint [0,1]x[0,1] transformed
// by t, used as the shape a sprite's program-backed fill paints into.
func spriteFootprint(t *transform.TransAffine) []edge.Point {
	pts := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	out := make([]edge.Point, len(pts))
	for i, p := range pts {
		x, y := p[0], p[1]
		t.Transform(&x, &y)
		out[i] = edge.Point{X: x, Y: y}
	}
	return out
}
