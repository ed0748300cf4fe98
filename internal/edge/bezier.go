package edge

import (
	"math"

	"github.com/flowraster/rastercore/internal/transform"
)

// BezierSubpathEdge is a closed loop of cubic Bezier segments filled
// directly, without ever materializing a flattened polygon: each call to
// Intercepts root-solves the cubic Y(t) - y = 0 per segment per scanline.
// This avoids the upfront flattening cost of FlattenedBezierEdge at the
// price of repeating the solve every frame, which is the right trade for
// shapes that are rebuilt often (interactive drawing) rather than reused.
type BezierSubpathEdge struct {
	shape    ShapeID
	segments []CubicSegment

	bminx, bminy, bmaxx, bmaxy float64
}

// NewBezierSubpathEdge builds an edge from a closed sequence of cubic
// segments; as with FlattenedBezierEdge the loop closes implicitly from the
// last segment's end point back to the first segment's start point.
func NewBezierSubpathEdge(shape ShapeID, segments []CubicSegment) *BezierSubpathEdge {
	return &BezierSubpathEdge{shape: shape, segments: segments}
}

func (e *BezierSubpathEdge) Shape() ShapeID { return e.shape }

// PrepareToRender computes the bounding box from each segment's convex hull
// (control points), which always contains the curve itself even though it
// is not tight.
func (e *BezierSubpathEdge) PrepareToRender() {
	first := true
	for _, s := range e.segments {
		for _, p := range [...]Point{{s.X0, s.Y0}, {s.X1, s.Y1}, {s.X2, s.Y2}, {s.X3, s.Y3}} {
			if first {
				e.bminx, e.bmaxx = p.X, p.X
				e.bminy, e.bmaxy = p.Y, p.Y
				first = false
				continue
			}
			if p.X < e.bminx {
				e.bminx = p.X
			}
			if p.X > e.bmaxx {
				e.bmaxx = p.X
			}
			if p.Y < e.bminy {
				e.bminy = p.Y
			}
			if p.Y > e.bmaxy {
				e.bmaxy = p.Y
			}
		}
	}
}

func (e *BezierSubpathEdge) BoundingBox() (minX, minY, maxX, maxY float64) {
	return e.bminx, e.bminy, e.bmaxx, e.bmaxy
}

// Intercepts root-solves each segment's cubic Y(t) independently for every
// requested y, amortising the per-segment coefficient computation across
// the whole ys batch (computed once per segment, not once per segment per
// y), as the edge plan's batching contract intends.
func (e *BezierSubpathEdge) Intercepts(ys []float64, out [][]Intercept) {
	clearBuckets(out)
	segments := e.segments
	if n := len(segments); n > 0 {
		last, first := segments[n-1], segments[0]
		if last.X3 != first.X0 || last.Y3 != first.Y0 {
			// Implicit closing line, expressed as a straight cubic.
			dx, dy := first.X0-last.X3, first.Y0-last.Y3
			segments = append(segments[:n:n], CubicSegment{
				X0: last.X3, Y0: last.Y3,
				X1: last.X3 + dx/3, Y1: last.Y3 + dy/3,
				X2: last.X3 + 2*dx/3, Y2: last.Y3 + 2*dy/3,
				X3: first.X0, Y3: first.Y0,
			})
		}
	}
	for _, seg := range segments {
		// Bernstein-to-power-basis coefficients of Y(t):
		// Y(t) = a*t^3 + b*t^2 + c*t + d
		a := -seg.Y0 + 3*seg.Y1 - 3*seg.Y2 + seg.Y3
		b := 3*seg.Y0 - 6*seg.Y1 + 3*seg.Y2
		c := -3*seg.Y0 + 3*seg.Y1
		d := seg.Y0

		for k, y := range ys {
			target := d - y
			roots := solveCubicUnitInterval(a, b, c, target)
			for _, t := range roots {
				x := evalCubic(seg.X0, seg.X1, seg.X2, seg.X3, t)
				dy := evalCubicDerivative(a, b, c, t)
				dir := DirectionDown
				if dy < 0 {
					dir = DirectionUp
				}
				if dy == 0 {
					// Tangent to the scanline: skip, it contributes no net
					// winding change and would otherwise double-count at
					// cusps shared with the neighbouring segment.
					continue
				}
				out[k] = append(out[k], Intercept{Direction: dir, X: x})
			}
		}
	}
	for k := range ys {
		sortInterceptsByX(out[k])
	}
}

func (e *BezierSubpathEdge) Transform(t *transform.TransAffine) Descriptor {
	segs := make([]CubicSegment, len(e.segments))
	for i, s := range e.segments {
		x0, y0, x1, y1, x2, y2, x3, y3 := s.X0, s.Y0, s.X1, s.Y1, s.X2, s.Y2, s.X3, s.Y3
		t.Transform(&x0, &y0)
		t.Transform(&x1, &y1)
		t.Transform(&x2, &y2)
		t.Transform(&x3, &y3)
		segs[i] = CubicSegment{X0: x0, Y0: y0, X1: x1, Y1: y1, X2: x2, Y2: y2, X3: x3, Y3: y3}
	}
	transformed := NewBezierSubpathEdge(e.shape, segs)
	transformed.PrepareToRender()
	return transformed
}

func (e *BezierSubpathEdge) CloneAsObject() Descriptor {
	segs := make([]CubicSegment, len(e.segments))
	copy(segs, e.segments)
	clone := NewBezierSubpathEdge(e.shape, segs)
	clone.bminx, clone.bminy, clone.bmaxx, clone.bmaxy = e.bminx, e.bminy, e.bmaxx, e.bmaxy
	return clone
}

func evalCubic(p0, p1, p2, p3, t float64) float64 {
	mt := 1 - t
	return mt*mt*mt*p0 + 3*mt*mt*t*p1 + 3*mt*t*t*p2 + t*t*t*p3
}

func evalCubicDerivative(a, b, c, t float64) float64 {
	return 3*a*t*t + 2*b*t + c
}

// solveCubicUnitInterval solves a*t^3 + b*t^2 + c*t + target = 0 for real
// roots in [0, 1], via Cardano's method after reducing to depressed form.
// target is passed pre-negated by the caller (it is actually "d - y", i.e.
// the constant term of Y(t) - y).
func solveCubicUnitInterval(a, b, c, target float64) []float64 {
	const eps = 1e-9
	var roots []float64
	clampRoot := func(t float64) (float64, bool) {
		if t < -eps || t > 1+eps {
			return 0, false
		}
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		return t, true
	}

	if math.Abs(a) < 1e-12 {
		if math.Abs(b) < 1e-12 {
			if math.Abs(c) < 1e-12 {
				return nil // degenerate: constant, either always or never a root
			}
			t := -target / c
			if v, ok := clampRoot(t); ok {
				roots = append(roots, v)
			}
			return roots
		}
		// Quadratic: b*t^2 + c*t + target = 0
		disc := c*c - 4*b*target
		if disc < 0 {
			return nil
		}
		sq := math.Sqrt(disc)
		for _, t := range [2]float64{(-c + sq) / (2 * b), (-c - sq) / (2 * b)} {
			if v, ok := clampRoot(t); ok {
				roots = append(roots, v)
			}
		}
		return dedupe(roots)
	}

	// Normalize to t^3 + pt^2 + qt + r = 0
	p := b / a
	q := c / a
	r := target / a

	// Depress: t = x - p/3
	shift := p / 3
	pp := q - p*p/3
	qq := 2*p*p*p/27 - p*q/3 + r

	if math.Abs(pp) < 1e-14 {
		// x^3 = -qq
		x := math.Cbrt(-qq)
		if v, ok := clampRoot(x - shift); ok {
			roots = append(roots, v)
		}
		return roots
	}

	disc := (qq*qq)/4 + (pp*pp*pp)/27
	if disc > 0 {
		sq := math.Sqrt(disc)
		u := math.Cbrt(-qq/2 + sq)
		v := math.Cbrt(-qq/2 - sq)
		x := u + v
		if t, ok := clampRoot(x - shift); ok {
			roots = append(roots, t)
		}
	} else {
		// Three real roots via trigonometric method.
		r3 := math.Sqrt(-pp * pp * pp / 27)
		phi := math.Acos(clamp(-qq/(2*r3), -1, 1))
		m := 2 * math.Sqrt(-pp/3)
		for k := 0; k < 3; k++ {
			x := m*math.Cos((phi+2*math.Pi*float64(k))/3) - shift
			if t, ok := clampRoot(x); ok {
				roots = append(roots, t)
			}
		}
		roots = dedupe(roots)
	}
	return roots
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func dedupe(roots []float64) []float64 {
	if len(roots) < 2 {
		return roots
	}
	out := roots[:0]
	for _, t := range roots {
		dup := false
		for _, u := range out {
			if math.Abs(t-u) < 1e-7 {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}
