package edge

import (
	"github.com/flowraster/rastercore/internal/basics"
	"github.com/flowraster/rastercore/internal/conv"
	"github.com/flowraster/rastercore/internal/transform"
)

// pointPathSource feeds a flat polyline (with an explicit closed flag) to
// conv.ConvStroke as a basics.VertexSource / conv.VertexSource. A closed
// path needs an explicit trailing EndPoly command with the Close flag bit
// set - vcgen.VCGenStroke detects closure that way (basics.GetCloseFlag on
// the EndPoly command), not from the shape of the last LineTo.
type pointPathSource struct {
	pts    []Point
	closed bool
	pos    int
	closeEmitted bool
}

func (s *pointPathSource) Rewind(uint) { s.pos = 0; s.closeEmitted = false }

func (s *pointPathSource) Vertex() (x, y float64, cmd basics.PathCommand) {
	if s.pos >= len(s.pts) {
		if s.closed && !s.closeEmitted {
			s.closeEmitted = true
			return 0, 0, basics.PathCommand(uint32(basics.PathCmdEndPoly) | uint32(basics.PathFlagsClose))
		}
		return 0, 0, basics.PathCmdStop
	}
	p := s.pts[s.pos]
	cmd = basics.PathCmdLineTo
	if s.pos == 0 {
		cmd = basics.PathCmdMoveTo
	}
	s.pos++
	return p.X, p.Y, cmd
}

// StrokeOptions mirrors the options external `stroke_path` accepts: width
// plus the cap/join styling MathStroke already implements.
type StrokeOptions struct {
	Width           float64
	Closed          bool
	LineCap         basics.LineCap
	LineJoin        basics.LineJoin
	InnerJoin       basics.InnerJoin
	MiterLimit      float64
	ApproximationScale float64
}

// LineStrokeEdge turns a path plus stroke options into a set of filled
// contours via the external stroke_path function (conv.ConvStroke, wrapping
// vcgen.VCGenStroke): PrepareToRender runs the stroker once and keeps the
// resulting polygon contours, so Intercepts itself is pure polygon math,
// identical in spirit to the flattened-bezier edge's approach. This is, by
// construction, also the "flattened form" the spec calls out separately:
// a stroked outline is always already straight-segmented once generated.
type LineStrokeEdge struct {
	shape   ShapeID
	path    []Point
	options StrokeOptions

	contours [][]Point
	bminx, bminy, bmaxx, bmaxy float64
}

// NewLineStrokeEdge builds a stroke edge from an already-flattened input
// path (curves in the source path must be flattened by the caller before
// constructing this edge - stroking operates on straight segments).
func NewLineStrokeEdge(shape ShapeID, path []Point, options StrokeOptions) *LineStrokeEdge {
	return &LineStrokeEdge{shape: shape, path: path, options: options}
}

func (e *LineStrokeEdge) Shape() ShapeID { return e.shape }

func (e *LineStrokeEdge) PrepareToRender() {
	src := &pointPathSource{pts: e.path, closed: e.options.Closed}
	stroker := conv.NewConvStroke(src)
	stroker.SetWidth(e.options.Width)
	stroker.SetLineCap(e.options.LineCap)
	stroker.SetLineJoin(e.options.LineJoin)
	stroker.SetInnerJoin(e.options.InnerJoin)
	if e.options.MiterLimit > 0 {
		stroker.SetMiterLimit(e.options.MiterLimit)
	}

	e.contours = e.contours[:0]
	stroker.Rewind(0)
	var current []Point
	flush := func() {
		if len(current) >= 2 {
			e.contours = append(e.contours, current)
		}
		current = nil
	}
	for {
		x, y, cmd := stroker.Vertex()
		if basics.IsStop(cmd) {
			break
		}
		if basics.IsMoveTo(cmd) {
			flush()
			current = append(current, Point{X: x, Y: y})
			continue
		}
		if basics.IsEndPoly(cmd) {
			flush()
			continue
		}
		current = append(current, Point{X: x, Y: y})
	}
	flush()

	e.bminx, e.bminy, e.bmaxx, e.bmaxy = 0, 0, 0, 0
	first := true
	for _, c := range e.contours {
		minx, miny, maxx, maxy := boundsOf(c)
		if first {
			e.bminx, e.bminy, e.bmaxx, e.bmaxy = minx, miny, maxx, maxy
			first = false
			continue
		}
		if minx < e.bminx {
			e.bminx = minx
		}
		if miny < e.bminy {
			e.bminy = miny
		}
		if maxx > e.bmaxx {
			e.bmaxx = maxx
		}
		if maxy > e.bmaxy {
			e.bmaxy = maxy
		}
	}
}

func (e *LineStrokeEdge) BoundingBox() (minX, minY, maxX, maxY float64) {
	return e.bminx, e.bminy, e.bmaxx, e.bmaxy
}

func (e *LineStrokeEdge) Intercepts(ys []float64, out [][]Intercept) {
	clearBuckets(out)
	scratch := make([][]Intercept, len(ys))
	for _, c := range e.contours {
		for i := range scratch {
			scratch[i] = scratch[i][:0]
		}
		polygonIntercepts(c, ys, scratch)
		for i := range out {
			out[i] = append(out[i], scratch[i]...)
		}
	}
	for i := range out {
		sortInterceptsByX(out[i])
	}
}

func (e *LineStrokeEdge) Transform(t *transform.TransAffine) Descriptor {
	transformed := NewLineStrokeEdge(e.shape, transformPoints(e.path, t), e.options)
	// A uniform scale changes line width too; non-uniform or rotated
	// transforms are an approximation here (the spec's drawing state keeps
	// stroke width in the same space as the path, so this only matters for
	// sprite/namespace reuse of a stroked edge under a new transform).
	sx, sy := t.GetScaling()
	transformed.options.Width = e.options.Width * (sx + sy) / 2
	transformed.PrepareToRender()
	return transformed
}

func (e *LineStrokeEdge) CloneAsObject() Descriptor {
	path := make([]Point, len(e.path))
	copy(path, e.path)
	clone := NewLineStrokeEdge(e.shape, path, e.options)
	if e.contours != nil {
		clone.PrepareToRender()
	}
	return clone
}
