package edge

import "github.com/flowraster/rastercore/internal/transform"

// PolylineEdge is an explicit, already-flat vertex list closed into a
// polygon and filled with non-zero winding. It backs rectangular sprite
// footprints and any shape whose outline has already been reduced to
// straight segments by the caller (e.g. the output of a stroke or a
// flattened curve reused as a plain polygon).
type PolylineEdge struct {
	shape  ShapeID
	verts  []Point
	bminx, bminy, bmaxx, bmaxy float64
	prepared bool
}

// NewPolylineEdge takes ownership of verts (the caller should not mutate it
// afterwards); verts describes a closed loop, the edge from the last vertex
// back to the first is implied.
func NewPolylineEdge(shape ShapeID, verts []Point) *PolylineEdge {
	return &PolylineEdge{shape: shape, verts: verts}
}

func (e *PolylineEdge) Shape() ShapeID { return e.shape }

func (e *PolylineEdge) PrepareToRender() {
	e.bminx, e.bminy, e.bmaxx, e.bmaxy = boundsOf(e.verts)
	e.prepared = true
}

func (e *PolylineEdge) BoundingBox() (minX, minY, maxX, maxY float64) {
	return e.bminx, e.bminy, e.bmaxx, e.bmaxy
}

func (e *PolylineEdge) Intercepts(ys []float64, out [][]Intercept) {
	polygonIntercepts(e.verts, ys, out)
}

func (e *PolylineEdge) Transform(t *transform.TransAffine) Descriptor {
	transformed := &PolylineEdge{shape: e.shape, verts: transformPoints(e.verts, t)}
	transformed.PrepareToRender()
	return transformed
}

func (e *PolylineEdge) CloneAsObject() Descriptor {
	verts := make([]Point, len(e.verts))
	copy(verts, e.verts)
	clone := &PolylineEdge{shape: e.shape, verts: verts}
	if e.prepared {
		clone.PrepareToRender()
	}
	return clone
}
