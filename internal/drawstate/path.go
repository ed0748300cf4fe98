// Package drawstate implements the retained drawing state: layers, sprites,
// textures, gradients, the current path/transform/style cursor, and the
// state-stack behind PushState/PopState. It is the component that turns
// drawing commands into shapes committed to a layer's edge plan (internal/
// edgeplan), with pixel-program data (internal/pixelprogram) already bound.
package drawstate

import (
	"github.com/flowraster/rastercore/internal/basics"
	"github.com/flowraster/rastercore/internal/conv"
	"github.com/flowraster/rastercore/internal/edge"
	"github.com/flowraster/rastercore/internal/path"
)

// pathState is the path builder's state machine: Idle until a Move or Line
// starts a subpath, Building while vertices accumulate. Fill/Stroke consume
// the built path without resetting it, so a further Fill/Stroke with no
// intervening NewPath re-uses the same geometry.
type pathState int

const (
	pathIdle pathState = iota
	pathBuilding
)

// PathBuilder accumulates Move/Line/BezierCurve/ClosePath commands into an
// AGG-style path storage, exactly the way the teacher's own path package is
// built to be driven, and extracts closed flattened polygons from it on
// demand for Fill/Stroke.
type PathBuilder struct {
	storage *path.PathStorage
	state   pathState
	hasMove bool
}

// NewPathBuilder creates an empty path builder in the Idle state.
func NewPathBuilder() *PathBuilder {
	return &PathBuilder{storage: path.NewPathStorage()}
}

// NewPath discards any accumulated geometry and returns to Idle.
func (b *PathBuilder) NewPath() {
	b.storage.RemoveAll()
	b.state = pathIdle
	b.hasMove = false
}

// Move starts a new subpath at (x, y), transitioning to Building.
func (b *PathBuilder) Move(x, y float64) {
	b.storage.MoveTo(x, y)
	b.state = pathBuilding
	b.hasMove = true
}

// Line appends a straight segment to (x, y). If no Move has been issued yet,
// it implicitly starts the subpath at (x, y) (no segment is emitted) rather
// than producing a dangling line with no defined start.
func (b *PathBuilder) Line(x, y float64) {
	if !b.hasMove {
		b.Move(x, y)
		return
	}
	b.storage.LineTo(x, y)
	b.state = pathBuilding
}

// BezierCurve appends a cubic Bezier segment ending at (x, y) with the two
// control points given.
func (b *PathBuilder) BezierCurve(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	if !b.hasMove {
		b.Move(cp1x, cp1y)
	}
	b.storage.Curve4(cp1x, cp1y, cp2x, cp2y, x, y)
	b.state = pathBuilding
}

// ClosePath closes the current subpath back to its starting point.
func (b *PathBuilder) ClosePath() {
	b.storage.ClosePolygon(basics.PathFlagsNone)
}

// Empty reports whether the builder has never received a Move/Line/Curve.
func (b *PathBuilder) Empty() bool { return b.storage.TotalVertices() == 0 }

// polygon is one closed, flattened loop of vertices extracted from the path.
type polygon struct {
	points []edge.Point
}

// flattenedPolygons walks the path storage through a curve-flattening
// converter (the same ConvCurve the teacher's stroke/fill pipelines use) and
// splits the result into per-subpath closed point lists, one per MoveTo.
func (b *PathBuilder) flattenedPolygons() []polygon {
	adapter := path.NewPathStorageVertexSourceAdapter(b.storage)
	curved := conv.NewConvCurve(adapter)
	curved.Rewind(0)

	var polys []polygon
	var current []edge.Point
	flush := func() {
		if len(current) >= 2 {
			polys = append(polys, polygon{points: current})
		}
		current = nil
	}
	for {
		x, y, cmd := curved.Vertex()
		if basics.IsStop(cmd) {
			break
		}
		if basics.IsMoveTo(cmd) {
			flush()
			current = append(current, edge.Point{X: x, Y: y})
			continue
		}
		if basics.IsVertex(cmd) {
			current = append(current, edge.Point{X: x, Y: y})
			continue
		}
		// EndPoly and anything else: the subpath segment is complete.
	}
	flush()
	return polys
}

// strokeOutline produces the (possibly self-intersecting, always
// non-zero-wound) polygon loops that outline the current path stroked with
// the given style - one loop per stroked contour, so a dashed or closed path
// yields several - built by running the same curve-flattened
// vertex stream through the teacher's ConvStroke/VCGenStroke pipeline.
func (b *PathBuilder) strokeOutline(style StrokeStyle) []polygon {
	adapter := path.NewPathStorageVertexSourceAdapter(b.storage)
	curved := conv.NewConvCurve(adapter)

	var source conv.VertexSource = curved
	if len(style.Dash) >= 2 {
		dash := conv.NewConvDash(curved)
		for i := 0; i+1 < len(style.Dash); i += 2 {
			dash.AddDash(style.Dash[i], style.Dash[i+1])
		}
		dash.DashStart(style.DashOffset)
		source = dash
	}

	stroke := conv.NewConvStroke(source)
	stroke.SetWidth(style.Width)
	stroke.SetLineCap(style.LineCap)
	stroke.SetLineJoin(style.LineJoin)
	stroke.SetMiterLimit(style.MiterLimit)
	stroke.Rewind(0)

	var polys []polygon
	var current []edge.Point
	flush := func() {
		if len(current) >= 2 {
			polys = append(polys, polygon{points: current})
		}
		current = nil
	}
	for {
		x, y, cmd := stroke.Vertex()
		if basics.IsStop(cmd) {
			break
		}
		if basics.IsMoveTo(cmd) {
			flush()
			current = append(current, edge.Point{X: x, Y: y})
			continue
		}
		if basics.IsVertex(cmd) {
			current = append(current, edge.Point{X: x, Y: y})
		}
	}
	flush()
	return polys
}

// StrokeStyle bundles the stroke parameters the applier's Line* commands
// accumulate on the current drawing state.
type StrokeStyle struct {
	Width      float64
	LineCap    basics.LineCap
	LineJoin   basics.LineJoin
	MiterLimit float64

	// Dash holds alternating dash-length/gap-length pairs (NewDashPattern
	// clears it, DashLength appends to it). A nil or single-element Dash
	// means no dashing - strokeOutline skips the ConvDash stage entirely.
	Dash       []float64
	DashOffset float64
}

// DefaultStrokeStyle matches AGG's own constructor defaults.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{Width: 1, LineCap: basics.ButtCap, LineJoin: basics.MiterJoin, MiterLimit: 4}
}
