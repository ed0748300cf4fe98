package filter

import (
	"math"

	"github.com/flowraster/rastercore/internal/pixel"
)

// GaussianBlurFilter is a separable blur: a vertical pass over the input
// lines followed by a horizontal pass over the result, each weighted by its
// own 1-D Gaussian kernel. Radii may differ per axis so WithScale can widen
// only the axis that gained resolution. No original_source file for this
// filter survived retrieval; the separable-kernel shape follows the general
// technique the deleted internal/effects stack-blur used (blur as two 1-D
// passes rather than a 2-D convolution), re-derived here as a true Gaussian
// since the spec calls for one explicitly.
type GaussianBlurFilter struct {
	radiusX, radiusY float64
	kernelX, kernelY []float64
}

// NewGaussianBlurFilter builds a blur with the same radius on both axes.
func NewGaussianBlurFilter(radius float64) *GaussianBlurFilter {
	return NewGaussianBlurFilterXY(radius, radius)
}

// NewGaussianBlurFilterXY builds a blur with independent per-axis radii.
func NewGaussianBlurFilterXY(radiusX, radiusY float64) *GaussianBlurFilter {
	return &GaussianBlurFilter{
		radiusX: radiusX,
		radiusY: radiusY,
		kernelX: gaussianKernel(radiusX),
		kernelY: gaussianKernel(radiusY),
	}
}

func gaussianKernel(radius float64) []float64 {
	n := ceilPositive(radius)
	sigma := radius / 2
	if sigma < 1e-9 {
		sigma = 1e-9
	}
	kernel := make([]float64, 2*n+1)
	sum := 0.0
	for i := -n; i <= n; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+n] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func (f *GaussianBlurFilter) InputLines() (above, below int) {
	n := ceilPositive(f.radiusY)
	return n, n
}

func (f *GaussianBlurFilter) ExtraColumns() (left, right int) {
	n := ceilPositive(f.radiusX)
	return n, n
}

func (f *GaussianBlurFilter) WithScale(sx, sy float64) (PixelFilter, bool) {
	return NewGaussianBlurFilterXY(f.radiusX*sx, f.radiusY*sy), true
}

func (f *GaussianBlurFilter) FilterLine(_ int, inputLines []Line, out Line) {
	width := len(inputLines[0])
	vert := make([]pixel.PixelF64, width)
	for x := 0; x < width; x++ {
		var sum pixel.PixelF64
		for i, w := range f.kernelY {
			p := inputLines[i][x]
			sum.R += p.R * w
			sum.G += p.G * w
			sum.B += p.B * w
			sum.A += p.A * w
		}
		vert[x] = sum
	}

	for ox := range out {
		var sum pixel.PixelF64
		for i, w := range f.kernelX {
			p := vert[ox+i]
			sum.R += p.R * w
			sum.G += p.G * w
			sum.B += p.B * w
			sum.A += p.A * w
		}
		out[ox] = sum
	}
}
