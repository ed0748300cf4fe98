package edge

import "github.com/flowraster/rastercore/internal/transform"

// RectangleEdge is an axis-aligned rectangle in the shape's local space.
// It is kept as its own variant (rather than always going through
// PolylineEdge) because the common case - untransformed sprite/layer
// backgrounds - can answer Intercepts with two arithmetic comparisons per
// scanline instead of a four-segment polygon walk. A rectangle under a
// non-axis-aligned transform becomes a general quadrilateral, so Transform
// downgrades to a PolylineEdge rather than trying to keep rectangle-specific
// math for a shape that is no longer a rectangle in device space.
type RectangleEdge struct {
	shape                  ShapeID
	x0, y0, x1, y1         float64
	prepared               bool
}

// NewRectangleEdge builds a rectangle edge; corners are normalized so x0<=x1
// and y0<=y1 regardless of the order passed in.
func NewRectangleEdge(shape ShapeID, ax, ay, bx, by float64) *RectangleEdge {
	if ax > bx {
		ax, bx = bx, ax
	}
	if ay > by {
		ay, by = by, ay
	}
	return &RectangleEdge{shape: shape, x0: ax, y0: ay, x1: bx, y1: by}
}

func (e *RectangleEdge) Shape() ShapeID { return e.shape }

func (e *RectangleEdge) PrepareToRender() { e.prepared = true }

func (e *RectangleEdge) BoundingBox() (minX, minY, maxX, maxY float64) {
	return e.x0, e.y0, e.x1, e.y1
}

// Intercepts emits exactly two crossings - the left and right edge of the
// rectangle - for every y strictly inside [y0, y1), matching the half-open
// convention polygonIntercepts uses for shared vertices.
func (e *RectangleEdge) Intercepts(ys []float64, out [][]Intercept) {
	clearBuckets(out)
	for k, y := range ys {
		if y < e.y0 || y >= e.y1 {
			continue
		}
		out[k] = append(out[k],
			Intercept{Direction: DirectionDown, X: e.x0},
			Intercept{Direction: DirectionUp, X: e.x1},
		)
	}
}

func (e *RectangleEdge) Transform(t *transform.TransAffine) Descriptor {
	if t.IsIdentity(1e-12) {
		clone := NewRectangleEdge(e.shape, e.x0, e.y0, e.x1, e.y1)
		clone.PrepareToRender()
		return clone
	}
	verts := []Point{
		{X: e.x0, Y: e.y0}, {X: e.x1, Y: e.y0}, {X: e.x1, Y: e.y1}, {X: e.x0, Y: e.y1},
	}
	if isAxisAligned(t) {
		tv := transformPoints(verts, t)
		minX, minY, maxX, maxY := boundsOf(tv)
		clone := NewRectangleEdge(e.shape, minX, minY, maxX, maxY)
		clone.PrepareToRender()
		return clone
	}
	poly := NewPolylineEdge(e.shape, transformPoints(verts, t))
	poly.PrepareToRender()
	return poly
}

func (e *RectangleEdge) CloneAsObject() Descriptor {
	clone := NewRectangleEdge(e.shape, e.x0, e.y0, e.x1, e.y1)
	clone.prepared = e.prepared
	return clone
}

// isAxisAligned reports whether t is a pure scale+translate (no rotation or
// shear), in which case a transformed rectangle is still a rectangle.
func isAxisAligned(t *transform.TransAffine) bool {
	const eps = 1e-9
	return absF(t.SHX) < eps && absF(t.SHY) < eps
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
