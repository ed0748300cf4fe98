package pixel

// BlendMode selects one of the pure two-pixel blend functions below. It is
// the pixel-level counterpart of drawstate's per-layer BlendMode command.
type BlendMode int

const (
	BlendSourceOver BlendMode = iota
	BlendSourceIn
	BlendSourceOut
	BlendSourceAtop
	BlendMultiply
	BlendScreen
	BlendLighten
	BlendDarken
)

// Blend applies the named mode to (src over below), both premultiplied.
func Blend(mode BlendMode, src, below PixelF64) PixelF64 {
	switch mode {
	case BlendSourceIn:
		return SourceIn(src, below)
	case BlendSourceOut:
		return SourceOut(src, below)
	case BlendSourceAtop:
		return SourceAtop(src, below)
	case BlendMultiply:
		return Multiply(src, below)
	case BlendScreen:
		return Screen(src, below)
	case BlendLighten:
		return Lighten(src, below)
	case BlendDarken:
		return Darken(src, below)
	default:
		return src.SourceOver(below).(PixelF64)
	}
}

// SourceIn keeps src only where below is present: src * below.a.
func SourceIn(src, below PixelF64) PixelF64 {
	return PixelF64{R: src.R * below.A, G: src.G * below.A, B: src.B * below.A, A: src.A * below.A}
}

// SourceOut keeps src only where below is absent: src * (1 - below.a).
func SourceOut(src, below PixelF64) PixelF64 {
	inv := 1 - below.A
	return PixelF64{R: src.R * inv, G: src.G * inv, B: src.B * inv, A: src.A * inv}
}

// SourceAtop: src clipped to below's coverage, composited over below.
func SourceAtop(src, below PixelF64) PixelF64 {
	invSrc := 1 - src.A
	return PixelF64{
		R: src.R*below.A + below.R*invSrc,
		G: src.G*below.A + below.G*invSrc,
		B: src.B*below.A + below.B*invSrc,
		A: src.A*below.A + below.A*invSrc,
	}
}

// straightBlend un-premultiplies both operands, applies a per-channel
// blend function over straight RGB, then re-composites with source-over
// alpha compositing and re-premultiplies. This is the standard way to give
// premultiplied pixels meaning for the "separable" blend modes (multiply,
// screen, darken, lighten), matching how the teacher's composite blenders
// (blender_rgba_composite.go) normalize before blending.
func straightBlend(src, below PixelF64, fn func(cs, cb float64) float64) PixelF64 {
	unmul := func(p PixelF64) (r, g, b float64) {
		if p.A <= 0 {
			return 0, 0, 0
		}
		return p.R / p.A, p.G / p.A, p.B / p.A
	}
	sr, sg, sb := unmul(src)
	br, bg, bb := unmul(below)

	blended := Colour{R: fn(sr, br), G: fn(sg, bg), B: fn(sb, bb), A: 1}.Premultiply()

	// Composite the blended colour (at src's alpha) over below using the
	// normal source-over rule; this gives blend modes correct edge behaviour
	// when src or below is partially transparent.
	blendedAtSrcAlpha := PixelF64{R: blended.R * src.A, G: blended.G * src.A, B: blended.B * src.A, A: src.A}
	return blendedAtSrcAlpha.SourceOver(below).(PixelF64)
}

func Multiply(src, below PixelF64) PixelF64 {
	return straightBlend(src, below, func(cs, cb float64) float64 { return cs * cb })
}

func Screen(src, below PixelF64) PixelF64 {
	return straightBlend(src, below, func(cs, cb float64) float64 { return cs + cb - cs*cb })
}

func Lighten(src, below PixelF64) PixelF64 {
	return straightBlend(src, below, func(cs, cb float64) float64 {
		if cs > cb {
			return cs
		}
		return cb
	})
}

func Darken(src, below PixelF64) PixelF64 {
	return straightBlend(src, below, func(cs, cb float64) float64 {
		if cs < cb {
			return cs
		}
		return cb
	})
}
