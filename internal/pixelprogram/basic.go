package pixelprogram

import "github.com/flowraster/rastercore/internal/pixel"

// SolidColorProgram writes a fixed colour over every pixel in its span,
// ignoring whatever was already there.
type SolidColorProgram struct{}

func (SolidColorProgram) CreateScanlineData(_ int, _ []Scanline, colour pixel.Colour) ScanlineData {
	return solidColorData{px: colour.Premultiply()}
}

type solidColorData struct{ px pixel.PixelF64 }

func (s solidColorData) DrawPixels(target []pixel.PixelF64, xRange [2]int, _ int) {
	for x := xRange[0]; x < xRange[1]; x++ {
		target[x] = s.px
	}
}

// SourceOverColorProgram composites a fixed colour over the existing target
// pixels using the standard Porter-Duff "over" operator.
type SourceOverColorProgram struct{}

func (SourceOverColorProgram) CreateScanlineData(_ int, _ []Scanline, colour pixel.Colour) ScanlineData {
	return sourceOverColorData{px: colour.Premultiply()}
}

type sourceOverColorData struct{ px pixel.PixelF64 }

func (s sourceOverColorData) DrawPixels(target []pixel.PixelF64, xRange [2]int, _ int) {
	for x := xRange[0]; x < xRange[1]; x++ {
		target[x] = s.px.SourceOver(target[x]).(pixel.PixelF64)
	}
}

// RenderFunc is the pixel-writing step of a pixel-program instance, already
// bound to whatever per-instance and per-scanline-block data it needs: it
// writes exactly target[xRange[0]:xRange[1]] for the scanline at yPos.
type RenderFunc func(target []pixel.PixelF64, xRange [2]int, yPos int)

// FuncProgram adapts an already-built RenderFunc into a Program. It's the
// shape every program whose "scanline data" step is a no-op reduces to
// (sprite, texture, gradient and debug programs below all build a
// RenderFunc directly rather than defining a fresh Program type each) -
// matching the spec's framing of pixel-program data as simply "a closure".
type FuncProgram struct{}

func (FuncProgram) CreateScanlineData(_ int, _ []Scanline, fn RenderFunc) ScanlineData {
	return renderFuncData{fn: fn}
}

type renderFuncData struct{ fn RenderFunc }

func (r renderFuncData) DrawPixels(target []pixel.PixelF64, xRange [2]int, yPos int) {
	r.fn(target, xRange, yPos)
}
