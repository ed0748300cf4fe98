package drawstate

import (
	"sort"

	"github.com/flowraster/rastercore/internal/basics"
	"github.com/flowraster/rastercore/internal/edgeplan"
	"github.com/flowraster/rastercore/internal/ids"
	"github.com/flowraster/rastercore/internal/pixel"
	"github.com/flowraster/rastercore/internal/pixelprogram"
	"github.com/flowraster/rastercore/internal/transform"
)

// FillKind selects what a Fill/Stroke's pixel program samples from.
type FillKind int

const (
	FillSolid FillKind = iota
	FillTextureKind
	FillGradientKind
)

// fillStyle bundles the current fill source and the corner points a
// FillTexture/FillGradient command anchors it to.
type fillStyle struct {
	kind      FillKind
	colour    pixel.Colour
	texture   ids.TextureID
	gradient  ids.GradientID
	x1, y1    float64
	x2, y2    float64
	transform *transform.TransAffine
}

// pushedState is the snapshot PushState/PopState save and restore; it
// excludes the path builder, which the spec's state machine keeps live
// across pushes (only style/transform/layer selection round-trip).
type pushedState struct {
	transform    *transform.TransAffine
	namespace    ids.Namespace
	layer        ids.LayerHandle
	spriteMode   bool
	fill         fillStyle
	strokeColour pixel.Colour
	strokeStyle  StrokeStyle
	winding      edgeplan.WindingRule
	blend        pixel.BlendMode
	spriteXform  *transform.TransAffine
	clipped      bool
	clipMinX     float64
	clipMinY     float64
	clipMaxX     float64
	clipMaxY     float64
}

// LayerRasterizer is implemented by the frame renderer: it samples a layer's
// own rendered content at source-space coordinates, which is how DrawSprite's
// footprint program reads the sprite layer's pixels without drawstate itself
// depending on the scan planner or frame renderer. Left nil, sprites sample
// as fully transparent (the spec's "missing resource degrades to a no-op
// draw", generalised to "not yet renderable").
type LayerRasterizer interface {
	SampleLayer(layer ids.LayerHandle, x, y float64) pixel.PixelF64
}

// CanvasDrawing is the root drawing-state object (§4.G / §3's "Drawing
// State"): the live layer table, sprite table, resource tables, the shared
// pixel-program registry, the per-frame program-data cache, and the current
// cursor (transform/path/style/stack).
type CanvasDrawing struct {
	ids ids.Counter

	layers  map[ids.LayerHandle]*Layer
	sprites *SpriteTable

	textures  map[ids.TextureID]*Texture
	gradients map[ids.GradientID]*Gradient

	registry  *pixelprogram.Registry
	solid     pixelprogram.StoredPixelProgram[pixel.Colour]
	sourceOver pixelprogram.StoredPixelProgram[pixel.Colour]
	funcProg  pixelprogram.StoredPixelProgram[pixelprogram.RenderFunc]
	data      *pixelprogram.DataCache

	rasterizer LayerRasterizer

	frameDepth int

	cur   pushedState
	path  *PathBuilder
	stack []pushedState
}

// NewCanvasDrawing creates an empty canvas in its default state: identity
// transform, layer 0 current, default namespace, black opaque fill, a
// default stroke style, non-zero winding, source-over blending.
func NewCanvasDrawing() *CanvasDrawing {
	reg := pixelprogram.NewRegistry()
	c := &CanvasDrawing{
		layers:    map[ids.LayerHandle]*Layer{0: NewLayer()},
		sprites:   NewSpriteTable(),
		textures:  make(map[ids.TextureID]*Texture),
		gradients: make(map[ids.GradientID]*Gradient),
		registry:  reg,
		data:      pixelprogram.NewDataCache(),
		path:      NewPathBuilder(),
	}
	c.solid = pixelprogram.AddProgram[pixel.Colour](reg, pixelprogram.SolidColorProgram{})
	c.sourceOver = pixelprogram.AddProgram[pixel.Colour](reg, pixelprogram.SourceOverColorProgram{})
	c.funcProg = pixelprogram.AddProgram[pixelprogram.RenderFunc](reg, pixelprogram.FuncProgram{})
	c.cur = pushedState{
		transform:   transform.NewTransAffine(),
		spriteXform: transform.NewTransAffine(),
		fill:        fillStyle{kind: FillSolid, colour: pixel.Colour{A: 1}, transform: transform.NewTransAffine()},
		strokeColour: pixel.Colour{A: 1},
		strokeStyle: DefaultStrokeStyle(),
		winding:     edgeplan.NonZero,
		blend:       pixel.BlendSourceOver,
	}
	return c
}

// SetLayerRasterizer wires in the frame renderer's sampling callback; called
// once per frame before any DrawSprite'd sprite needs to be sampled.
func (c *CanvasDrawing) SetLayerRasterizer(r LayerRasterizer) { c.rasterizer = r }

// CurrentLayer returns the layer object the drawing cursor currently targets
// (lazily creating it, matching §4.G's "Layer(id) ... lazily creating one
// with default state").
func (c *CanvasDrawing) CurrentLayer() *Layer {
	l, ok := c.layers[c.cur.layer]
	if !ok {
		l = NewLayer()
		c.layers[c.cur.layer] = l
	}
	return l
}

// CurrentLayerHandle returns the id the drawing cursor currently targets,
// without creating anything - the frame renderer needs this id, not the
// *Layer itself, to know which layer to rasterise for Store.
func (c *CanvasDrawing) CurrentLayerHandle() ids.LayerHandle { return c.cur.layer }

// Layer switches the drawing cursor to layer id, leaving sprite mode.
func (c *CanvasDrawing) Layer(id ids.LayerHandle) {
	c.cur.layer = id
	c.cur.spriteMode = false
}

// Sprite switches into sprite-layer mode: the current namespace/sprite pair
// is resolved to (or lazily allocated as) a layer, and the drawing cursor
// now targets that layer - sprites *are* layers with a separate identity in
// the sprites map, per §4.G.
func (c *CanvasDrawing) Sprite(id ids.SpriteID) {
	layer, ok := c.sprites.Lookup(c.cur.namespace, id)
	if !ok {
		layer = ids.LayerHandle(c.ids.Next())
		c.sprites.Set(c.cur.namespace, id, layer)
	}
	c.cur.layer = layer
	c.cur.spriteMode = true
}

// Namespace switches the namespace future Sprite/MoveSpriteFrom/ClearSprite
// commands resolve sprite ids within.
func (c *CanvasDrawing) Namespace(ns ids.Namespace) { c.cur.namespace = ns }

// MoveSpriteFrom re-points sprite id dst at the layer src currently names
// and removes src's own mapping, within the current namespace.
func (c *CanvasDrawing) MoveSpriteFrom(src ids.SpriteID, dst ids.SpriteID) {
	c.sprites.Move(c.cur.namespace, src, dst)
}

// ClearSprite removes the current namespace's mapping for sprite id.
func (c *CanvasDrawing) ClearSprite(id ids.SpriteID) { c.sprites.Clear(c.cur.namespace, id) }

// ClearLayer resets the current layer's edge plan and program-data usage
// list, per the Sprite data model note that sprites (and hence their
// backing layers) survive this.
func (c *CanvasDrawing) ClearLayer() { c.CurrentLayer().Clear() }

// ClearAllLayers resets every known layer, sprites' backing layers included,
// but does not drop the sprite table itself.
func (c *CanvasDrawing) ClearAllLayers() {
	for _, l := range c.layers {
		l.Clear()
	}
}

// ClearCanvas resets every layer and drops the sprite table entirely (a
// sprite id allocated before this call no longer resolves afterwards),
// matching §3's "removed when the whole canvas is reset". The clear colour
// itself is applied by the frame renderer as the base background, not
// represented here.
func (c *CanvasDrawing) ClearCanvas() {
	c.layers = map[ids.LayerHandle]*Layer{0: NewLayer()}
	c.sprites.Reset()
	c.cur.layer = 0
	c.cur.spriteMode = false
}

// SwapLayers exchanges the contents two layer handles refer to.
func (c *CanvasDrawing) SwapLayers(a, b ids.LayerHandle) {
	la := c.layers[a]
	lb := c.layers[b]
	if la == nil {
		la = NewLayer()
	}
	if lb == nil {
		lb = NewLayer()
	}
	c.layers[a], c.layers[b] = lb, la
}

// LayerBlend sets layer id's composite blend mode.
func (c *CanvasDrawing) LayerBlend(id ids.LayerHandle, mode pixel.BlendMode) {
	c.layerOrCreate(id).SetBlend(mode)
}

// LayerAlpha sets layer id's composite alpha.
func (c *CanvasDrawing) LayerAlpha(id ids.LayerHandle, alpha float64) {
	c.layerOrCreate(id).SetAlpha(alpha)
}

func (c *CanvasDrawing) layerOrCreate(id ids.LayerHandle) *Layer {
	l, ok := c.layers[id]
	if !ok {
		l = NewLayer()
		c.layers[id] = l
	}
	return l
}

// --- Path construction -------------------------------------------------

// NewPath discards the current path and returns its builder to Idle.
func (c *CanvasDrawing) NewPath() { c.path.NewPath() }

// Move starts a new subpath in the current path at the transformed point
// (x, y).
func (c *CanvasDrawing) Move(x, y float64) { c.path.Move(c.transformPoint(x, y)) }

// Line appends a straight segment to the transformed point (x, y).
func (c *CanvasDrawing) Line(x, y float64) { c.path.Line(c.transformPoint(x, y)) }

// BezierCurve appends a cubic Bezier segment, every point transformed by the
// current transform.
func (c *CanvasDrawing) BezierCurve(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	a1, b1 := c.transformPoint(cp1x, cp1y)
	a2, b2 := c.transformPoint(cp2x, cp2y)
	ex, ey := c.transformPoint(x, y)
	c.path.BezierCurve(a1, b1, a2, b2, ex, ey)
}

// ClosePath closes the current subpath.
func (c *CanvasDrawing) ClosePath() { c.path.ClosePath() }

func (c *CanvasDrawing) transformPoint(x, y float64) (float64, float64) {
	c.cur.transform.Transform(&x, &y)
	return x, y
}

// --- Style ---------------------------------------------------------------

// SetFillColor switches the current fill source to a solid colour.
func (c *CanvasDrawing) SetFillColor(col pixel.Colour) {
	c.cur.fill = fillStyle{kind: FillSolid, colour: col, transform: c.cur.fill.transform}
}

// SetFillTexture switches the current fill source to a texture, mapped onto
// the rectangle (x1,y1)-(x2,y2) in the current coordinate space.
func (c *CanvasDrawing) SetFillTexture(id ids.TextureID, x1, y1, x2, y2 float64) {
	c.cur.fill = fillStyle{kind: FillTextureKind, texture: id, x1: x1, y1: y1, x2: x2, y2: y2, transform: c.cur.fill.transform}
}

// SetFillGradient switches the current fill source to a gradient, mapped
// onto the segment/centre-radius pair (x1,y1)-(x2,y2).
func (c *CanvasDrawing) SetFillGradient(id ids.GradientID, x1, y1, x2, y2 float64) {
	c.cur.fill = fillStyle{kind: FillGradientKind, gradient: id, x1: x1, y1: y1, x2: x2, y2: y2, transform: c.cur.fill.transform}
}

// SetFillTransform replaces the transform a texture/gradient fill's sampling
// coordinates are mapped through, independent of the path's own transform.
func (c *CanvasDrawing) SetFillTransform(t *transform.TransAffine) { c.cur.fill.transform = t }

// SetStrokeColor sets the colour Stroke paints with.
func (c *CanvasDrawing) SetStrokeColor(col pixel.Colour) { c.cur.strokeColour = col }

// SetLineWidth sets the stroke width, in the current transform's units.
func (c *CanvasDrawing) SetLineWidth(w float64) { c.cur.strokeStyle.Width = w }

// SetLineJoin sets the stroke join style.
func (c *CanvasDrawing) SetLineJoin(j basics.LineJoin) { c.cur.strokeStyle.LineJoin = j }

// SetLineCap sets the stroke cap style.
func (c *CanvasDrawing) SetLineCap(cap basics.LineCap) { c.cur.strokeStyle.LineCap = cap }

// SetMiterLimit sets the stroke miter limit.
func (c *CanvasDrawing) SetMiterLimit(limit float64) { c.cur.strokeStyle.MiterLimit = limit }

// NewDashPattern clears the current dash pattern, returning Stroke to a
// solid line until DashLength calls rebuild one.
func (c *CanvasDrawing) NewDashPattern() { c.cur.strokeStyle.Dash = nil }

// DashLength appends one dash-length/gap-length entry to the current dash
// pattern. A complete pattern alternates dash, gap, dash, gap...
func (c *CanvasDrawing) DashLength(length float64) {
	c.cur.strokeStyle.Dash = append(c.cur.strokeStyle.Dash, length)
}

// DashOffset sets the distance into the dash pattern the stroke starts at.
func (c *CanvasDrawing) DashOffset(offset float64) { c.cur.strokeStyle.DashOffset = offset }

// SetWindingRule sets the fill rule Fill interprets the current path under.
func (c *CanvasDrawing) SetWindingRule(rule edgeplan.WindingRule) { c.cur.winding = rule }

// SetBlendMode records the blend mode in the current drawing state (saved and
// restored by PushState/PopState). Fill and Stroke do not read it: their
// programs always write or source-over composite.
func (c *CanvasDrawing) SetBlendMode(mode pixel.BlendMode) { c.cur.blend = mode }

// --- Transform -------------------------------------------------------------

// IdentityTransform resets the current transform.
func (c *CanvasDrawing) IdentityTransform() { c.cur.transform.Reset() }

// MultiplyTransform composes m onto the current transform.
func (c *CanvasDrawing) MultiplyTransform(m *transform.TransAffine) { c.cur.transform.Multiply(m) }

// CanvasHeight flips the coordinate system to a bottom-left origin of
// height h, the conventional way vector APIs reconcile a y-down raster with
// a y-up drawing convention.
func (c *CanvasDrawing) CanvasHeight(h float64) {
	c.cur.transform.Multiply(transform.NewTransAffineFromValues(1, 0, 0, -1, 0, h))
}

// CenterRegion composes a transform that translates the rectangle
// (x1,y1)-(x2,y2)'s centre to the origin, matching the original's
// region-centring convenience command.
func (c *CanvasDrawing) CenterRegion(x1, y1, x2, y2 float64) {
	cx, cy := (x1+x2)/2, (y1+y2)/2
	c.cur.transform.Multiply(transform.NewTransAffineFromValues(1, 0, 0, 1, -cx, -cy))
}

// SpriteTransform sets the transform DrawSprite applies to the current
// sprite's footprint, independent of the path transform.
func (c *CanvasDrawing) SpriteTransform(t *transform.TransAffine) { c.cur.spriteXform = t }

// --- Clip ------------------------------------------------------------------

// Clip records the bounding box of the current path as the current clip
// region - see DESIGN.md. The recorded region is not applied: shapes
// committed afterwards, and the rendered frame, are not clipped by it.
func (c *CanvasDrawing) Clip() {
	polys := c.path.flattenedPolygons()
	if len(polys) == 0 {
		return
	}
	minX, minY, maxX, maxY := boundsOfPolygons(polys)
	c.cur.clipped = true
	c.cur.clipMinX, c.cur.clipMinY, c.cur.clipMaxX, c.cur.clipMaxY = minX, minY, maxX, maxY
}

// Unclip removes the current clip region.
func (c *CanvasDrawing) Unclip() { c.cur.clipped = false }

func boundsOfPolygons(polys []polygon) (minX, minY, maxX, maxY float64) {
	first := true
	for _, p := range polys {
		for _, pt := range p.points {
			if first {
				minX, minY, maxX, maxY = pt.X, pt.Y, pt.X, pt.Y
				first = false
				continue
			}
			if pt.X < minX {
				minX = pt.X
			}
			if pt.X > maxX {
				maxX = pt.X
			}
			if pt.Y < minY {
				minY = pt.Y
			}
			if pt.Y > maxY {
				maxY = pt.Y
			}
		}
	}
	return
}

// --- Stack -------------------------------------------------------------

// PushState saves the current transform/style/layer-selection cursor.
func (c *CanvasDrawing) PushState() {
	snap := c.cur
	snap.transform = c.cur.transform.Copy()
	snap.spriteXform = c.cur.spriteXform.Copy()
	fillXform := c.cur.fill.transform
	if fillXform != nil {
		fillXform = fillXform.Copy()
	}
	snap.fill.transform = fillXform
	c.stack = append(c.stack, snap)
}

// PopState restores the most recently pushed cursor. Popping with nothing
// pushed is a StateUnderflow no-op, never an error (§7).
func (c *CanvasDrawing) PopState() {
	if len(c.stack) == 0 {
		return
	}
	c.cur = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Store snapshots a rendered buffer as the current layer's background
// (used by Restore/FreeStoredBuffer); populated by the frame renderer, not
// drawstate itself.
func (c *CanvasDrawing) Store(buf []pixel.PixelF64, width int) { c.CurrentLayer().Store(buf, width) }

// Restore reports the current layer's stored background, if any, for the
// frame renderer to blend back in.
func (c *CanvasDrawing) Restore() ([]pixel.PixelF64, int, bool) {
	buf, w := c.CurrentLayer().Background()
	return buf, w, c.CurrentLayer().HasBackground()
}

// FreeStoredBuffer discards the current layer's stored background.
func (c *CanvasDrawing) FreeStoredBuffer() { c.CurrentLayer().ClearBackground() }

// --- Frame counter -----------------------------------------------------

// StartFrame increments the nested frame counter.
func (c *CanvasDrawing) StartFrame() { c.frameDepth++ }

// ShowFrame decrements the nested frame counter; the display layer commits
// once it returns to zero.
func (c *CanvasDrawing) ShowFrame() bool {
	if c.frameDepth > 0 {
		c.frameDepth--
	}
	return c.frameDepth == 0
}

// ResetFrame forces the frame counter back to zero.
func (c *CanvasDrawing) ResetFrame() { c.frameDepth = 0 }

// FrameDepth reports the current nesting depth.
func (c *CanvasDrawing) FrameDepth() int { return c.frameDepth }

// --- Resources -----------------------------------------------------------

// Data exposes the shared per-frame pixel-program data cache, so the frame
// renderer can prepare and run the program data ids a layer's edge plan
// references.
func (c *CanvasDrawing) Data() *pixelprogram.DataCache { return c.data }

// LookupLayer returns the layer behind handle id without lazily creating
// one - the frame renderer needs a read-only view to know a sprite source
// genuinely doesn't exist yet versus sampling an empty, just-allocated one.
func (c *CanvasDrawing) LookupLayer(id ids.LayerHandle) (*Layer, bool) {
	l, ok := c.layers[id]
	return l, ok
}

// LayerIDs returns every ordinary (non-sprite) layer handle currently known,
// sorted ascending - the frame compositor's walk order for §5's "across
// layers, rendering order is by layer id ascending" rule. A sprite's backing
// layer is never included: the glossary's Sprite entry is explicit that a
// sprite "does not render unless invoked" (via DrawSprite), so it has no
// place in the whole-frame composite walk, only in DrawSprite's sampling
// seam.
func (c *CanvasDrawing) LayerIDs() []ids.LayerHandle {
	handles := make([]ids.LayerHandle, 0, len(c.layers))
	for id := range c.layers {
		if c.sprites.IsBacking(id) {
			continue
		}
		handles = append(handles, id)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	return handles
}

// PutTexture registers (or replaces) a texture resource.
func (c *CanvasDrawing) PutTexture(id ids.TextureID, tex *Texture) { c.textures[id] = tex }

// Texture resolves a texture id, degrading to an empty texture (never an
// error) per §7's UnknownResource semantics.
func (c *CanvasDrawing) Texture(id ids.TextureID) *Texture {
	if t, ok := c.textures[id]; ok {
		return t
	}
	return NewEmptyTexture()
}

// PutGradient registers (or replaces) a gradient resource.
func (c *CanvasDrawing) PutGradient(id ids.GradientID, g *Gradient) { c.gradients[id] = g }

// Gradient resolves a gradient id, degrading to a single transparent stop.
func (c *CanvasDrawing) Gradient(id ids.GradientID) *Gradient {
	if g, ok := c.gradients[id]; ok {
		return g
	}
	return NewLinearGradient(0, 0, 1, 0, []GradientStop{{Offset: 0, Colour: pixel.Colour{}}})
}
