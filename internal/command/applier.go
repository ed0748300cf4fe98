package command

import (
	"math"

	"github.com/flowraster/rastercore/internal/drawstate"
	"github.com/flowraster/rastercore/internal/ids"
	"github.com/flowraster/rastercore/internal/pixel"
	"github.com/flowraster/rastercore/internal/rastererr"
)

// StoreRenderer rasterises a layer's current pixels for OpStore to snapshot.
// frame.LayerCompositor implements this; the applier only needs the
// narrow slice it actually calls. Until SetStoreRenderer is called, OpStore
// degrades to a logged no-op like any other not-yet-available collaborator.
type StoreRenderer interface {
	RenderLayerBuffer(layer ids.LayerHandle, height int) ([]pixel.PixelF64, int)
}

// Applier dispatches a stream of Draw instructions against a
// drawstate.CanvasDrawing, implementing §4.I. It owns the state a Draw
// command needs but drawstate itself has no reason to carry: the font
// presence table, the line-layout cursor, and the canvas's background
// clear colour (ClearCanvas's colour argument is never interpreted by
// drawstate - §4.G's ClearCanvas only resets layer/sprite state; painting
// the cleared background is the frame renderer's job, so the applier just
// remembers the most recent colour for it to read).
type Applier struct {
	canvas   *drawstate.CanvasDrawing
	fonts    *fontTable
	layout   lineLayout
	renderer StoreRenderer

	clearColour    [4]float64
	hasClearColour bool
}

// NewApplier creates an applier driving canvas.
func NewApplier(canvas *drawstate.CanvasDrawing) *Applier {
	return &Applier{canvas: canvas, fonts: newFontTable()}
}

// SetStoreRenderer attaches the collaborator OpStore rasterises through.
// A frame driver is expected to call this once it has built a
// frame.LayerCompositor over the same canvas, before replaying any Store
// commands; nil detaches it, returning OpStore to a no-op.
func (a *Applier) SetStoreRenderer(r StoreRenderer) { a.renderer = r }

// ClearColour returns the colour set by the most recent ClearCanvas, for
// the frame renderer to paint as the base background; ok is false if
// ClearCanvas has never been issued.
func (a *Applier) ClearColour() (r, g, b, al float64, ok bool) {
	return a.clearColour[0], a.clearColour[1], a.clearColour[2], a.clearColour[3], a.hasClearColour
}

// Apply runs one Draw against the canvas. A non-finite number or an
// unrecognised Op returns a BadInput *rastererr.Error; every other
// recognised failure mode (UnknownResource, StateUnderflow, and BadInput
// for undecodable texture data) is logged side-channel and absorbed, per
// §7's Propagation rule that only InternalInvariant aborts a frame.
func (a *Applier) Apply(d Draw) error {
	if err := checkFinite(d); err != nil {
		return err
	}

	switch d.Op {
	case OpNewPath:
		a.canvas.NewPath()
	case OpMove:
		a.canvas.Move(d.X, d.Y)
	case OpLine:
		a.canvas.Line(d.X, d.Y)
	case OpBezierCurve:
		a.canvas.BezierCurve(d.CP1.X, d.CP1.Y, d.CP2.X, d.CP2.Y, d.X, d.Y)
	case OpClosePath:
		a.canvas.ClosePath()
	case OpFill:
		a.canvas.Fill()
	case OpStroke:
		a.canvas.Stroke()

	case OpLineWidth:
		a.canvas.SetLineWidth(d.Width)
	case OpLineJoin:
		a.canvas.SetLineJoin(d.LineJoin)
	case OpLineCap:
		a.canvas.SetLineCap(d.LineCap)
	case OpNewDashPattern:
		a.canvas.NewDashPattern()
	case OpDashLength:
		a.canvas.DashLength(d.DashLength)
	case OpDashOffset:
		a.canvas.DashOffset(d.DashOffset)
	case OpFillColor:
		a.canvas.SetFillColor(d.Colour)
	case OpFillTexture:
		a.canvas.SetFillTexture(d.Texture, d.X, d.Y, d.X2, d.Y2)
	case OpFillGradient:
		a.canvas.SetFillGradient(d.Gradient, d.X, d.Y, d.X2, d.Y2)
	case OpFillTransform:
		a.canvas.SetFillTransform(d.Transform)
	case OpStrokeColor:
		a.canvas.SetStrokeColor(d.Colour)
	case OpWindingRule:
		a.canvas.SetWindingRule(d.Winding)
	case OpBlendMode:
		a.canvas.SetBlendMode(d.Blend)

	case OpIdentityTransform:
		a.canvas.IdentityTransform()
	case OpCanvasHeight:
		a.canvas.CanvasHeight(d.X)
	case OpCenterRegion:
		a.canvas.CenterRegion(d.X, d.Y, d.X2, d.Y2)
	case OpMultiplyTransform:
		a.canvas.MultiplyTransform(d.Transform)

	case OpUnclip:
		a.canvas.Unclip()
	case OpClip:
		a.canvas.Clip()
	case OpStore:
		if a.renderer == nil {
			rastererr.WarnResource(rastererr.UnknownResource, "store-renderer", int64(d.Layer))
			break
		}
		buf, width := a.renderer.RenderLayerBuffer(a.canvas.CurrentLayerHandle(), d.Height)
		a.canvas.Store(buf, width)
	case OpRestore:
		if _, _, ok := a.canvas.Restore(); !ok {
			rastererr.WarnResource(rastererr.StateUnderflow, "stored-buffer", int64(d.Layer))
		}
	case OpFreeStoredBuffer:
		a.canvas.FreeStoredBuffer()
	case OpPushState:
		a.canvas.PushState()
	case OpPopState:
		a.canvas.PopState()

	case OpClearCanvas:
		a.canvas.ClearCanvas()
		a.clearColour = [4]float64{d.Colour.R, d.Colour.G, d.Colour.B, d.Colour.A}
		a.hasClearColour = true
		a.fonts = newFontTable()
	case OpLayer:
		a.canvas.Layer(d.Layer)
	case OpLayerBlend:
		a.canvas.LayerBlend(d.Layer, d.Blend)
	case OpLayerAlpha:
		a.canvas.LayerAlpha(d.Layer, d.Alpha)
	case OpClearLayer:
		a.canvas.ClearLayer()
	case OpClearAllLayers:
		a.canvas.ClearAllLayers()
	case OpSwapLayers:
		a.canvas.SwapLayers(d.Layer, d.OtherLayer)
	case OpSprite:
		a.canvas.Sprite(d.Sprite)
	case OpMoveSpriteFrom:
		// §6 names this MoveSpriteFrom(id): id (d.Sprite) is the source
		// sprite, the destination is whichever sprite a prior Sprite(id)
		// command selected. drawstate.MoveSpriteFrom asks for that
		// destination explicitly (d.OtherSprite) rather than threading a
		// "current sprite id" through CanvasDrawing's cursor.
		a.canvas.MoveSpriteFrom(d.Sprite, d.OtherSprite)
	case OpClearSprite:
		a.canvas.ClearSprite(d.Sprite)
	case OpSpriteTransform:
		a.canvas.SpriteTransform(d.SpriteXform)
	case OpDrawSprite:
		a.canvas.DrawSprite(d.Sprite)
	case OpDrawSpriteWithFilters:
		a.canvas.DrawSpriteWithFilters(d.Sprite, buildFilterChain(a.canvas, d.Filters))

	case OpPutTexture:
		a.applyPutTexture(d)
	case OpFreeTexture:
		a.canvas.PutTexture(d.Texture, drawstate.NewEmptyTexture())
	case OpPutGradient:
		a.applyPutGradient(d)
	case OpFreeGradient:
		a.canvas.PutGradient(d.Gradient, drawstate.NewLinearGradient(0, 0, 1, 0, nil))
	case OpPutFont:
		a.fonts.put(d.Font)
	case OpFreeFont:
		a.fonts.free(d.Font)
	case OpBeginLineLayout:
		a.layout = lineLayout{active: true, x: d.X, y: d.Y, align: d.Align}
	case OpDrawLaidOutText:
		if !a.layout.active {
			rastererr.WarnResource(rastererr.StateUnderflow, "line-layout", 0)
		}
		// No glyph geometry exists to emit (see text.go) - bounded no-op.
	case OpDrawText:
		if !a.fonts.has(d.Font) {
			rastererr.WarnResource(rastererr.UnknownResource, "font", int64(d.Font))
		}
		// Bounded no-op for the same reason as OpDrawLaidOutText.

	case OpStartFrame:
		a.canvas.StartFrame()
	case OpShowFrame:
		a.canvas.ShowFrame()
	case OpResetFrame:
		a.canvas.ResetFrame()
	case OpNamespace:
		a.canvas.Namespace(d.Namespace)

	default:
		return rastererr.New(rastererr.BadInput, nil)
	}
	return nil
}

func (a *Applier) applyPutTexture(d Draw) {
	if d.DynamicSprite {
		a.canvas.PutTexture(d.Texture, drawstate.NewDynamicSpriteTexture(d.Layer))
		return
	}
	tex, ok := drawstate.DecodeTexture(d.TextureData)
	if !ok {
		rastererr.WarnResource(rastererr.BadInput, "texture", int64(d.Texture))
		tex = drawstate.NewEmptyTexture()
	}
	a.canvas.PutTexture(d.Texture, tex)
}

func (a *Applier) applyPutGradient(d Draw) {
	switch d.GradientKind {
	case drawstate.GradientRadial:
		a.canvas.PutGradient(d.Gradient, drawstate.NewRadialGradient(d.X, d.Y, d.Radius, d.GradientStops))
	default:
		a.canvas.PutGradient(d.Gradient, drawstate.NewLinearGradient(d.X, d.Y, d.X2, d.Y2, d.GradientStops))
	}
}

// checkFinite rejects NaN/infinite coordinates at the applier boundary
// (§7's BadInput, "rejected... or clamped - pick one and document it"; this
// implementation rejects rather than clamps, since a silently clamped
// coordinate can hide a caller bug that produced NaN in the first place).
func checkFinite(d Draw) error {
	for _, v := range []float64{d.X, d.Y, d.X2, d.Y2, d.CP1.X, d.CP1.Y, d.CP2.X, d.CP2.Y, d.Width, d.DashLength, d.DashOffset, d.Radius, d.Alpha} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return rastererr.New(rastererr.BadInput, nil)
		}
	}
	return nil
}
