// Package edge implements the EdgeDescriptor capability set: shapes that can
// report, for a batch of scanline y-positions, the signed x-intercepts where
// their outline crosses each line. The edge plan (internal/edgeplan) treats
// every variant here polymorphically through the Descriptor interface; which
// concrete variant backs a given shape is chosen by the caller based on how
// the shape's outline was built (curve, flattened curve, polygon, rectangle,
// or stroked path).
package edge

import "github.com/flowraster/rastercore/internal/transform"

// ShapeID identifies the shape an edge belongs to. Shape ids are dense small
// integers, assigned by the owning edge plan, and reused directly as array
// indices by scan-plan winding accumulators.
type ShapeID int

// Direction is the signed winding contribution of an edge crossing: +1 when
// the edge descends in y as it is traversed, -1 when it ascends. Non-zero
// winding fill sums these; even-odd fill ignores the sign and just toggles.
type Direction int8

const (
	DirectionDown Direction = 1
	DirectionUp   Direction = -1
)

// Intercept is one x-crossing of an edge at a given scanline, tagged with
// the winding direction of the edge at that point. The owning shape id is
// added by the edge plan when it merges per-edge results into per-scanline
// buckets; a bare Intercept doesn't carry it.
type Intercept struct {
	Direction Direction
	X         float64
}

// Point is a plain 2D vertex, used internally by the polygon-based variants
// (Polyline, Rectangle, the prepared form of LineStroke) to hold flattened
// outline coordinates.
type Point struct {
	X, Y float64
}

// Descriptor is the shape-carrying object every edge variant implements.
// Callers must call PrepareToRender before BoundingBox or Intercepts return
// meaningful results; the contract makes no promise about what a
// not-yet-prepared edge returns.
type Descriptor interface {
	// Shape reports which shape this edge contributes winding to.
	Shape() ShapeID

	// PrepareToRender performs any one-time precomputation: flattening
	// curves, stroking a path, computing a bounding box. Idempotent.
	PrepareToRender()

	// BoundingBox is only valid after PrepareToRender; it must contain
	// every y for which Intercepts can return a non-empty result.
	BoundingBox() (minX, minY, maxX, maxY float64)

	// Intercepts fills out[i] with this edge's crossings at ys[i], for
	// every i. out must already have len(out) == len(ys); each slot is
	// cleared and overwritten (not appended to across calls), letting
	// callers reuse the same backing slices frame over frame. Within a
	// slot, entries come out sorted ascending by x.
	Intercepts(ys []float64, out [][]Intercept)

	// Transform returns a new, ready-to-render copy of this edge under
	// affine t. The receiver is left untouched - edges are shared and
	// transformed copies are how sprites/namespaces reuse an outline.
	Transform(t *transform.TransAffine) Descriptor

	// CloneAsObject deep-copies this edge behind its own Descriptor
	// handle, independent of the receiver's future mutation.
	CloneAsObject() Descriptor
}

// sortInterceptsByX sorts a bucket ascending by x using a total-ordering
// comparison (never the partial float64 "<"): a caller handing us NaN is a
// programmer error, and total order still gives a deterministic answer
// instead of an unspecified sort.
func sortInterceptsByX(s []Intercept) {
	// insertion sort: edge buckets are tiny (a handful of shapes per
	// scanline in the common case), so this beats the overhead of an
	// interface-based generic sort and keeps allocation at zero.
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i - 1
		for j >= 0 && totalOrderLess(v.X, s[j].X) {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = v
	}
}

// totalOrderLess is a total order restricted to the comparison this package
// needs: NaN sorts after every other value (rather than comparing false
// against everything, which would make sort order depend on input order).
// -0 and +0 compare equal.
func totalOrderLess(a, b float64) bool {
	an, bn := isNaN(a), isNaN(b)
	if an || bn {
		if an && bn {
			return false
		}
		return bn // a is not NaN, b is NaN => a < b
	}
	return a < b
}

func isNaN(f float64) bool { return f != f }

// clearBuckets resets every out[i] to length zero without discarding the
// underlying array, so repeated Intercepts calls across frames don't
// reallocate once the working set has stabilized.
func clearBuckets(out [][]Intercept) {
	for i := range out {
		out[i] = out[i][:0]
	}
}

// boundsOf computes the axis-aligned bounding box of a closed polygon given
// as an ordered vertex list.
func boundsOf(pts []Point) (minX, minY, maxX, maxY float64) {
	if len(pts) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = pts[0].X, pts[0].Y
	maxX, maxY = pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return
}

// polygonIntercepts computes scanline intercepts for a closed polygon (the
// edge from the last vertex back to the first is implied). Horizontal
// segments contribute nothing; a y exactly on a shared vertex is resolved by
// treating each segment's y-range as half-open [min, max) so a scanline that
// passes exactly through a vertex is counted by only one of the two
// segments meeting there, avoiding the classic double-crossing bug.
func polygonIntercepts(pts []Point, ys []float64, out [][]Intercept) {
	clearBuckets(out)
	n := len(pts)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		p0 := pts[i]
		p1 := pts[(i+1)%n]
		if p0.Y == p1.Y {
			continue
		}
		dir := DirectionDown
		ymin, ymax := p0.Y, p1.Y
		if p1.Y < p0.Y {
			dir = DirectionUp
			ymin, ymax = p1.Y, p0.Y
		}
		invDy := 1.0 / (p1.Y - p0.Y)
		for k, y := range ys {
			if y < ymin || y >= ymax {
				continue
			}
			t := (y - p0.Y) * invDy
			x := p0.X + t*(p1.X-p0.X)
			out[k] = append(out[k], Intercept{Direction: dir, X: x})
		}
	}
	for k := range ys {
		sortInterceptsByX(out[k])
	}
}

func transformPoints(pts []Point, t *transform.TransAffine) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		x, y := p.X, p.Y
		t.Transform(&x, &y)
		out[i] = Point{X: x, Y: y}
	}
	return out
}
