package edge

import (
	"github.com/flowraster/rastercore/internal/basics"
	"github.com/flowraster/rastercore/internal/curves"
	"github.com/flowraster/rastercore/internal/transform"
)

// CubicSegment is one cubic Bezier piece of a subpath, storing all four
// points; in a connected subpath a segment's P0 equals the previous
// segment's P3.
type CubicSegment struct {
	X0, Y0, X1, Y1, X2, Y2, X3, Y3 float64
}

// FlattenedBezierEdge pre-flattens a closed cubic subpath into a polyline
// using adaptive recursive subdivision (internal/curves.Curve4Div, the same
// flattener the teacher's path converters use for stroking and filling),
// then answers Intercepts by linear interpolation exactly like PolylineEdge.
// This trades per-frame curve evaluation for an upfront flattening pass; it
// is the right choice when a shape is drawn many times without changing
// shape (text glyphs, static vector art) since the flattened polygon is
// cached across calls to Intercepts.
type FlattenedBezierEdge struct {
	shape            ShapeID
	segments         []CubicSegment
	approximationScale float64

	verts    []Point
	bminx, bminy, bmaxx, bmaxy float64
}

// NewFlattenedBezierEdge builds an edge from a closed sequence of cubic
// segments (the path implicitly closes from the last segment's end point
// back to the first segment's start point). approximationScale controls
// flattening density exactly as it does in internal/curves (device-space
// scale factor; 1.0 is the AGG default).
func NewFlattenedBezierEdge(shape ShapeID, segments []CubicSegment, approximationScale float64) *FlattenedBezierEdge {
	if approximationScale <= 0 {
		approximationScale = 1.0
	}
	return &FlattenedBezierEdge{shape: shape, segments: segments, approximationScale: approximationScale}
}

func (e *FlattenedBezierEdge) Shape() ShapeID { return e.shape }

func (e *FlattenedBezierEdge) PrepareToRender() {
	e.verts = e.verts[:0]
	div := curves.NewCurve4Div()
	div.SetApproximationScale(e.approximationScale)
	for _, seg := range e.segments {
		div.Init(seg.X0, seg.Y0, seg.X1, seg.Y1, seg.X2, seg.Y2, seg.X3, seg.Y3)
		div.Rewind(0)
		for {
			x, y, cmd := div.Vertex()
			if cmd == basics.PathCmdStop {
				break
			}
			e.verts = append(e.verts, Point{X: x, Y: y})
		}
	}
	e.bminx, e.bminy, e.bmaxx, e.bmaxy = boundsOf(e.verts)
}

func (e *FlattenedBezierEdge) BoundingBox() (minX, minY, maxX, maxY float64) {
	return e.bminx, e.bminy, e.bmaxx, e.bmaxy
}

func (e *FlattenedBezierEdge) Intercepts(ys []float64, out [][]Intercept) {
	polygonIntercepts(e.verts, ys, out)
}

func (e *FlattenedBezierEdge) Transform(t *transform.TransAffine) Descriptor {
	segs := make([]CubicSegment, len(e.segments))
	for i, s := range e.segments {
		x0, y0, x1, y1, x2, y2, x3, y3 := s.X0, s.Y0, s.X1, s.Y1, s.X2, s.Y2, s.X3, s.Y3
		t.Transform(&x0, &y0)
		t.Transform(&x1, &y1)
		t.Transform(&x2, &y2)
		t.Transform(&x3, &y3)
		segs[i] = CubicSegment{X0: x0, Y0: y0, X1: x1, Y1: y1, X2: x2, Y2: y2, X3: x3, Y3: y3}
	}
	transformed := NewFlattenedBezierEdge(e.shape, segs, e.approximationScale)
	transformed.PrepareToRender()
	return transformed
}

func (e *FlattenedBezierEdge) CloneAsObject() Descriptor {
	segs := make([]CubicSegment, len(e.segments))
	copy(segs, e.segments)
	clone := NewFlattenedBezierEdge(e.shape, segs, e.approximationScale)
	if e.verts != nil {
		clone.PrepareToRender()
	}
	return clone
}
