package drawstate

import "github.com/flowraster/rastercore/internal/pixel"

// GradientKind selects the geometry a Gradient resource projects its stops
// across.
type GradientKind int

const (
	GradientLinear GradientKind = iota
	GradientRadial
)

// GradientStop is one colour anchored at a position along the gradient's
// [0, 1] parametric axis.
type GradientStop struct {
	Offset float64
	Colour pixel.Colour
}

// Gradient is a resource built from an ordered stop list and a geometry; it
// implements pixelprogram.GradientSampler by projecting a local-space point
// onto the gradient's axis and looking up a precomputed colour LUT, the
// technique the deleted internal/span gradient code used for spans.
type Gradient struct {
	Kind   GradientKind
	X0, Y0 float64
	X1, Y1 float64 // linear: axis endpoints; radial: X1,Y1 ignored, X0,Y0 centre, Radius below
	Radius float64

	stops []GradientStop
	lut   [256]pixel.PixelF64
}

// NewLinearGradient builds a gradient that varies along the segment (x0,y0)
// to (x1,y1).
func NewLinearGradient(x0, y0, x1, y1 float64, stops []GradientStop) *Gradient {
	g := &Gradient{Kind: GradientLinear, X0: x0, Y0: y0, X1: x1, Y1: y1, stops: sortedStops(stops)}
	g.buildLUT()
	return g
}

// NewRadialGradient builds a gradient that varies with distance from
// (cx, cy), reaching its last stop at radius.
func NewRadialGradient(cx, cy, radius float64, stops []GradientStop) *Gradient {
	g := &Gradient{Kind: GradientRadial, X0: cx, Y0: cy, Radius: radius, stops: sortedStops(stops)}
	g.buildLUT()
	return g
}

func sortedStops(stops []GradientStop) []GradientStop {
	out := make([]GradientStop, len(stops))
	copy(out, stops)
	for i := 1; i < len(out); i++ {
		v := out[i]
		j := i - 1
		for j >= 0 && out[j].Offset > v.Offset {
			out[j+1] = out[j]
			j--
		}
		out[j+1] = v
	}
	return out
}

func (g *Gradient) buildLUT() {
	for i := range g.lut {
		t := float64(i) / float64(len(g.lut)-1)
		g.lut[i] = g.colourAt(t).Premultiply()
	}
}

func (g *Gradient) colourAt(t float64) pixel.Colour {
	if len(g.stops) == 0 {
		return pixel.Colour{}
	}
	if t <= g.stops[0].Offset {
		return g.stops[0].Colour
	}
	last := g.stops[len(g.stops)-1]
	if t >= last.Offset {
		return last.Colour
	}
	for i := 1; i < len(g.stops); i++ {
		a, b := g.stops[i-1], g.stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Colour
			}
			f := (t - a.Offset) / span
			return pixel.Colour{
				R: a.Colour.R + (b.Colour.R-a.Colour.R)*f,
				G: a.Colour.G + (b.Colour.G-a.Colour.G)*f,
				B: a.Colour.B + (b.Colour.B-a.Colour.B)*f,
				A: a.Colour.A + (b.Colour.A-a.Colour.A)*f,
			}
		}
	}
	return last.Colour
}

// SampleAt implements pixelprogram.GradientSampler.
func (g *Gradient) SampleAt(x, y float64) pixel.Colour {
	t := g.parameterAt(x, y)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	idx := int(t * float64(len(g.lut)-1))
	return g.lut[idx].Colour()
}

func (g *Gradient) parameterAt(x, y float64) float64 {
	switch g.Kind {
	case GradientRadial:
		dx, dy := x-g.X0, y-g.Y0
		dist := sqrtF(dx*dx + dy*dy)
		if g.Radius <= 0 {
			return 0
		}
		return dist / g.Radius
	default:
		dx, dy := g.X1-g.X0, g.Y1-g.Y0
		lenSq := dx*dx + dy*dy
		if lenSq <= 0 {
			return 0
		}
		return ((x-g.X0)*dx + (y-g.Y0)*dy) / lenSq
	}
}

func sqrtF(v float64) float64 {
	if v <= 0 {
		return 0
	}
	// Newton-Raphson from a crude initial guess - avoids pulling in "math"
	// for the one call site; precision matters far less here than in the
	// filter kernels, since the result only indexes a 256-entry LUT.
	guess := v
	for i := 0; i < 8; i++ {
		guess = 0.5 * (guess + v/guess)
	}
	return guess
}
