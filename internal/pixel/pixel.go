// Package pixel implements the per-pixel arithmetic of the rendering core:
// premultiplied-alpha colour storage, source-over and the blend-mode family,
// and gamma-correct conversion to 8-bit output. All pixel types carry
// premultiplied alpha internally; "Colour" (straight, non-premultiplied RGBA)
// only ever appears at the edges of the API (fill colours, gradient stops).
package pixel

import (
	"github.com/flowraster/rastercore/internal/gamma"
)

// Colour is a straight-alpha linear RGBA quad, components in [0, 1].
// Commands and resources (FillColor, gradient stops) deal in
// Colour; the rendering pipeline immediately premultiplies into a Pixel.
type Colour struct {
	R, G, B, A float64
}

// Premultiply converts a straight-alpha Colour into a premultiplied PixelF64.
func (c Colour) Premultiply() PixelF64 {
	return PixelF64{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Pixel is the common capability set every concrete pixel format provides.
// N is implicit in Go (no const generics needed): each concrete type knows
// its own component count.
type Pixel interface {
	// MulComponent scales every channel (including alpha) by a scalar.
	MulComponent(s float64) Pixel

	// SourceOver composes self over below using the standard Porter-Duff
	// "over" operator on premultiplied components: self + below*(1-self.a).
	SourceOver(below Pixel) Pixel

	// ToU8RGBA converts to non-linear 8-bit premultiplied RGBA using the
	// supplied display gamma (output = linear^(1/gamma)).
	ToU8RGBA(gamma float64) [4]uint8

	// IsOpaque reports whether alpha is (at least effectively) 1.0 - used
	// by the scan planner to decide when a stack may stop accumulating.
	IsOpaque() bool
}

// PixelF64 is the default internal working format: linear, premultiplied,
// float64 components. This is what scanline buffers and pixel programs
// operate on.
type PixelF64 struct {
	R, G, B, A float64
}

// DefaultPixelF64 is the fully transparent premultiplied pixel - the zero
// value already satisfies this, but the named constructor documents intent
// at call sites (per spec: "default() == fully transparent premultiplied").
func DefaultPixelF64() PixelF64 { return PixelF64{} }

func (p PixelF64) MulComponent(s float64) Pixel {
	return PixelF64{R: p.R * s, G: p.G * s, B: p.B * s, A: p.A * s}
}

func (p PixelF64) SourceOver(belowPixel Pixel) Pixel {
	below := belowPixel.(PixelF64)
	inv := 1.0 - p.A
	return PixelF64{
		R: p.R + below.R*inv,
		G: p.G + below.G*inv,
		B: p.B + below.B*inv,
		A: p.A + below.A*inv,
	}
}

func (p PixelF64) IsOpaque() bool { return p.A >= 1.0 }

func (p PixelF64) ToU8RGBA(g float64) [4]uint8 {
	decode := gamma.NewGammaPower(1.0 / g)
	encode := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(decode.Apply(v)*255.0 + 0.5)
	}
	return [4]uint8{encode(p.R), encode(p.G), encode(p.B), uint8(clamp01(p.A)*255.0 + 0.5)}
}

// Colour reconstructs the straight-alpha colour this premultiplied pixel
// represents (inverse of Colour.Premultiply), clamping fully transparent
// pixels to black rather than dividing by zero.
func (p PixelF64) Colour() Colour {
	if p.A <= 0 {
		return Colour{}
	}
	return Colour{R: p.R / p.A, G: p.G / p.A, B: p.B / p.A, A: p.A}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Pixel16 is a 16-bit-per-channel linear premultiplied pixel, used for
// texture storage where float64 buffers would be wasteful but 8-bit would
// lose precision across blur/displacement sampling chains.
type Pixel16 struct {
	R, G, B, A uint16
}

func DefaultPixel16() Pixel16 { return Pixel16{} }

const pixel16Scale = 1.0 / 65535.0

func (p Pixel16) toF64() PixelF64 {
	return PixelF64{
		R: float64(p.R) * pixel16Scale,
		G: float64(p.G) * pixel16Scale,
		B: float64(p.B) * pixel16Scale,
		A: float64(p.A) * pixel16Scale,
	}
}

func fromF64To16(p PixelF64) Pixel16 {
	clamp := func(v float64) uint16 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 65535
		}
		return uint16(v*65535.0 + 0.5)
	}
	return Pixel16{R: clamp(p.R), G: clamp(p.G), B: clamp(p.B), A: clamp(p.A)}
}

func (p Pixel16) MulComponent(s float64) Pixel {
	return fromF64To16(p.toF64().MulComponent(s).(PixelF64))
}

func (p Pixel16) SourceOver(below Pixel) Pixel {
	var belowF64 PixelF64
	switch b := below.(type) {
	case Pixel16:
		belowF64 = b.toF64()
	case PixelF64:
		belowF64 = b
	}
	return fromF64To16(p.toF64().SourceOver(belowF64).(PixelF64))
}

func (p Pixel16) IsOpaque() bool { return p.A >= 65535 }

func (p Pixel16) ToU8RGBA(g float64) [4]uint8 {
	return p.toF64().ToU8RGBA(g)
}

// BilinearSample16 performs bilinear interpolation between four premultiplied
// 16-bit texture samples without ever rounding through 8 bits, which is what
// keeps blur and displacement-map kernels free of banding. fx, fy in [0, 1].
func BilinearSample16(c00, c10, c01, c11 Pixel16, fx, fy float64) Pixel16 {
	lerp16 := func(a, b uint16, t float64) uint16 {
		return uint16(float64(a)*(1-t) + float64(b)*t + 0.5)
	}
	top := Pixel16{
		R: lerp16(c00.R, c10.R, fx), G: lerp16(c00.G, c10.G, fx),
		B: lerp16(c00.B, c10.B, fx), A: lerp16(c00.A, c10.A, fx),
	}
	bottom := Pixel16{
		R: lerp16(c01.R, c11.R, fx), G: lerp16(c01.G, c11.G, fx),
		B: lerp16(c01.B, c11.B, fx), A: lerp16(c01.A, c11.A, fx),
	}
	return Pixel16{
		R: lerp16(top.R, bottom.R, fy), G: lerp16(top.G, bottom.G, fy),
		B: lerp16(top.B, bottom.B, fy), A: lerp16(top.A, bottom.A, fy),
	}
}
