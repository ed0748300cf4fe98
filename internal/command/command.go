// Package command implements the command applier (spec component I): a flat,
// tagged instruction type plus a dispatcher that mutates a
// drawstate.CanvasDrawing one Draw at a time, degrading unknown-resource and
// other recoverable failures to logged no-ops per §7's error taxonomy
// instead of aborting the stream.
package command

import (
	"github.com/flowraster/rastercore/internal/basics"
	"github.com/flowraster/rastercore/internal/drawstate"
	"github.com/flowraster/rastercore/internal/edgeplan"
	"github.com/flowraster/rastercore/internal/ids"
	"github.com/flowraster/rastercore/internal/pixel"
	"github.com/flowraster/rastercore/internal/transform"
)

// Op tags which fields of a Draw are meaningful. Go has no closed tagged
// union, so Draw is a single flat struct carrying every payload shape any Op
// might need; Apply reads only the fields its Op documents. This mirrors
// spec.md §4.I's own framing ("dispatches on a tagged instruction") more
// directly than a ~50-type interface hierarchy would, and keeps the
// dispatcher a single flat switch rather than a type-switch tree.
type Op int

const (
	// Path
	OpNewPath Op = iota
	OpMove
	OpLine
	OpBezierCurve
	OpClosePath
	OpFill
	OpStroke

	// Style
	OpLineWidth
	OpLineJoin
	OpLineCap
	OpNewDashPattern
	OpDashLength
	OpDashOffset
	OpFillColor
	OpFillTexture
	OpFillGradient
	OpFillTransform
	OpStrokeColor
	OpWindingRule
	OpBlendMode

	// Transform
	OpIdentityTransform
	OpCanvasHeight
	OpCenterRegion
	OpMultiplyTransform

	// Clip/state
	OpUnclip
	OpClip
	OpStore
	OpRestore
	OpFreeStoredBuffer
	OpPushState
	OpPopState

	// Layers/sprites
	OpClearCanvas
	OpLayer
	OpLayerBlend
	OpLayerAlpha
	OpClearLayer
	OpClearAllLayers
	OpSwapLayers
	OpSprite
	OpMoveSpriteFrom
	OpClearSprite
	OpSpriteTransform
	OpDrawSprite
	OpDrawSpriteWithFilters

	// Resources
	OpPutTexture
	OpFreeTexture
	OpPutGradient
	OpFreeGradient
	OpPutFont
	OpFreeFont
	OpBeginLineLayout
	OpDrawLaidOutText
	OpDrawText

	// Frame
	OpStartFrame
	OpShowFrame
	OpResetFrame
	OpNamespace
)

// Point2D is a plain (x, y) pair, used where a Draw carries more than one
// coordinate (BezierCurve's control points, CenterRegion's corners).
type Point2D struct{ X, Y float64 }

// Draw is one instruction in a command stream. Only the fields relevant to
// Op are read by Apply; the rest are zero and ignored.
type Draw struct {
	Op Op

	// Path / geometry. X doubles as CanvasHeight's single h argument; X, Y
	// double as FillTexture/FillGradient/CenterRegion's first corner.
	X, Y     float64
	CP1, CP2 Point2D
	X2, Y2   float64 // CenterRegion's second corner, FillTexture/FillGradient's second coordinate

	// Style
	Width      float64
	LineJoin   basics.LineJoin
	LineCap    basics.LineCap
	DashLength float64
	DashOffset float64
	Colour     pixel.Colour
	Alpha      float64 // LayerAlpha's composite alpha
	Winding    edgeplan.WindingRule
	Blend      pixel.BlendMode
	Transform  *transform.TransAffine

	// Resource ids
	Layer       ids.LayerHandle
	OtherLayer  ids.LayerHandle
	Sprite      ids.SpriteID
	OtherSprite ids.SpriteID
	Texture     ids.TextureID
	Gradient    ids.GradientID
	Font        ids.FontID
	Namespace   ids.Namespace

	// Resource payloads (only one populated per Op)
	TextureData   []byte // OpPutTexture: encoded image bytes to decode
	DynamicSprite bool   // OpPutTexture: register a DynamicSprite texture sourced from Layer instead of TextureData
	GradientStops []drawstate.GradientStop
	GradientKind  drawstate.GradientKind
	Radius        float64 // OpPutGradient radial radius

	// Height is OpStore's row count: the number of scanlines the attached
	// StoreRenderer should rasterise for the current layer. Store has no
	// other way to learn the canvas height, since drawstate tracks none.
	Height int

	// Sprite transforms and filters
	SpriteXform *transform.TransAffine
	Filters     []FilterSpec

	// Text (near-no-op: §6 Non-goals assume shaping/outline extraction
	// happens upstream of the core; see text.go doc).
	Align TextAlignment
	Text  string
}

// TextAlignment mirrors the canonical Left/Center/Right baseline alignment
// tag BeginLineLayout carries; the core never lays out glyphs itself (§6
// Non-goals), so this only round-trips through the applier's text state.
type TextAlignment int

const (
	AlignLeft TextAlignment = iota
	AlignCenter
	AlignRight
)
