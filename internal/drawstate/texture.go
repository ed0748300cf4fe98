package drawstate

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/flowraster/rastercore/internal/ids"
	"github.com/flowraster/rastercore/internal/pixel"
)

// TextureStorage is the variant tag of §3's Texture type. Empty is the
// fallback a missing-resource lookup degrades to (per §4.I's failure
// semantics, never an error); DynamicSprite textures sample a layer's own
// rendered content rather than owning pixel data directly.
type TextureStorage int

const (
	TextureEmpty TextureStorage = iota
	TextureRgba8
	TextureU16Linear
	TextureMipMap
	TextureMipMapWithOriginal
	TextureDynamicSprite
)

// Texture holds decoded (or rendered) pixel data as premultiplied 16-bit
// samples, with a lazily built chain of Lanczos-downsampled mip levels for
// minified sampling. Decoded images keep their own channel encoding; no
// gamma-to-linear conversion is applied.
type Texture struct {
	Width, Height int
	Storage       TextureStorage

	base []pixel.Pixel16 // row-major, len == Width*Height

	mips    [][]pixel.Pixel16 // level 0 is a half-size downsample of base
	mipDims [][2]int

	// DynamicSprite fields: the layer this texture renders, and the buffer
	// from the *previous* frame's rasterisation of that layer. Sampling a
	// dynamic-sprite texture during the frame that is rendering its own
	// source layer serves lastFrame instead of recursing, breaking the
	// cycle the spec's §9 "Cycles" note requires.
	dynamicLayer ids.LayerHandle
	lastFrame    []pixel.Pixel16
	lastFrameW   int
	lastFrameH   int
}

// NewEmptyTexture is the degrade-to target for an unknown texture id.
func NewEmptyTexture() *Texture {
	return &Texture{Width: 1, Height: 1, Storage: TextureEmpty, base: []pixel.Pixel16{{}}}
}

// NewDynamicSpriteTexture builds a texture that samples the rendered output
// of layer whenever it is (re)published with PublishDynamicFrame.
func NewDynamicSpriteTexture(layer ids.LayerHandle) *Texture {
	return &Texture{Storage: TextureDynamicSprite, dynamicLayer: layer}
}

// DecodeTexture decodes encoded image bytes into an Rgba8-backed texture,
// premultiplying alpha on the way in. Only the PNG and JPEG decoders are
// registered (by this file's blank imports); other formats fail to decode.
func DecodeTexture(data []byte) (*Texture, bool) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	return NewTextureFromImage(img), true
}

// NewTextureFromImage converts a decoded image into premultiplied 16-bit
// texture storage, keeping the image's channel values as decoded (they are
// not converted to linear light).
func NewTextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	base := make([]pixel.Pixel16, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			base[y*w+x] = pixel.Pixel16{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)}
		}
	}
	return &Texture{Width: w, Height: h, Storage: TextureRgba8, base: base}
}

// EnsureMipMap lazily builds a chain of progressively halved mip levels via
// Lanczos resampling, stopping once either dimension reaches 1. Safe to call
// repeatedly; it's a no-op once the chain already reaches 1x1.
func (t *Texture) EnsureMipMap() {
	if t.Storage != TextureMipMap && t.Storage != TextureMipMapWithOriginal {
		t.Storage = TextureMipMapWithOriginal
	}
	if t.Width <= 0 || t.Height <= 0 {
		return
	}
	w, h := t.Width, t.Height
	if len(t.mips) > 0 {
		w, h = t.mipDims[len(t.mipDims)-1][0], t.mipDims[len(t.mipDims)-1][1]
	}
	if w <= 1 && h <= 1 {
		return
	}

	src := t.levelImage(len(t.mips))
	for w > 1 || h > 1 {
		w = maxInt(1, w/2)
		h = maxInt(1, h/2)
		resized := imaging.Resize(src, w, h, imaging.Lanczos)
		level := make([]pixel.Pixel16, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, b, a := resized.At(x, y).RGBA()
				level[y*w+x] = pixel.Pixel16{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)}
			}
		}
		t.mips = append(t.mips, level)
		t.mipDims = append(t.mipDims, [2]int{w, h})
		src = resized
	}
}

// levelImage materialises mip level n (0 == base) as an image.Image so
// imaging.Resize can consume it for the next halving step.
func (t *Texture) levelImage(n int) image.Image {
	w, h := t.Width, t.Height
	data := t.base
	if n > 0 {
		w, h = t.mipDims[n-1][0], t.mipDims[n-1][1]
		data = t.mips[n-1]
	}
	img := image.NewNRGBA64(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := data[y*w+x]
			img.SetNRGBA64(x, y, toNRGBA64(p))
		}
	}
	return img
}

func toNRGBA64(p pixel.Pixel16) color.NRGBA64 {
	if p.A == 0 {
		return color.NRGBA64{}
	}
	scale := func(v uint16) uint16 { return uint16(uint32(v) * 65535 / uint32(p.A)) }
	return color.NRGBA64{R: scale(p.R), G: scale(p.G), B: scale(p.B), A: p.A}
}

// SampleBilinear implements pixelprogram.TextureSampler. u, v are in pixel
// (texel) space at the base level's resolution; lod selects a mip level
// (0 == full resolution), trilinearly blending between adjacent integer
// levels for fractional lod.
func (t *Texture) SampleBilinear(u, v, lod float64) pixel.Pixel16 {
	switch t.Storage {
	case TextureEmpty:
		return pixel.Pixel16{}
	case TextureDynamicSprite:
		return bilinearFetch(t.lastFrame, t.lastFrameW, t.lastFrameH, u, v)
	}

	if lod <= 0 || len(t.mips) == 0 {
		return bilinearFetch(t.base, t.Width, t.Height, u, v)
	}

	maxLevel := float64(len(t.mips))
	if lod >= maxLevel {
		last := t.mipDims[len(t.mipDims)-1]
		return bilinearFetch(t.mips[len(t.mips)-1], last[0], last[1], u/scaleFactor(t.Width, last[0]), v/scaleFactor(t.Height, last[1]))
	}

	lo := int(lod)
	frac := lod - float64(lo)
	loImg, loW, loH := t.levelBuffer(lo)
	hiImg, hiW, hiH := t.levelBuffer(lo + 1)
	loSample := bilinearFetch(loImg, loW, loH, u/scaleFactor(t.Width, loW), v/scaleFactor(t.Height, loH))
	hiSample := bilinearFetch(hiImg, hiW, hiH, u/scaleFactor(t.Width, hiW), v/scaleFactor(t.Height, hiH))
	return lerpPixel16(loSample, hiSample, frac)
}

func (t *Texture) levelBuffer(n int) ([]pixel.Pixel16, int, int) {
	if n <= 0 {
		return t.base, t.Width, t.Height
	}
	return t.mips[n-1], t.mipDims[n-1][0], t.mipDims[n-1][1]
}

func scaleFactor(base, level int) float64 {
	if level == 0 {
		return 1
	}
	return float64(base) / float64(level)
}

// SampleAlpha implements filter.AlphaSource: the mask filter reads a
// texture's alpha channel, bilinearly sampled at the base level.
func (t *Texture) SampleAlpha(x, y float64) float64 {
	return float64(t.SampleBilinear(x, y, 0).A) / 65535
}

// SampleDisplacement implements filter.DisplacementSource: the displacement
// filter reads the R and G channels of a second texture as offset fields.
func (t *Texture) SampleDisplacement(x, y float64) (dr, dg float64) {
	px := t.SampleBilinear(x, y, 0)
	return float64(px.R) / 65535, float64(px.G) / 65535
}

// PublishDynamicFrame replaces the cached previous-frame buffer a
// DynamicSprite texture serves samples from.
func (t *Texture) PublishDynamicFrame(buf []pixel.Pixel16, w, h int) {
	t.lastFrame, t.lastFrameW, t.lastFrameH = buf, w, h
}

func bilinearFetch(buf []pixel.Pixel16, w, h int, x, y float64) pixel.Pixel16 {
	if w <= 0 || h <= 0 || len(buf) == 0 {
		return pixel.Pixel16{}
	}
	x -= 0.5
	y -= 0.5
	x0 := clampInt(int(floorF(x)), 0, w-1)
	y0 := clampInt(int(floorF(y)), 0, h-1)
	x1 := clampInt(x0+1, 0, w-1)
	y1 := clampInt(y0+1, 0, h-1)
	fx := x - floorF(x)
	fy := y - floorF(y)
	if fx < 0 {
		fx = 0
	}
	if fy < 0 {
		fy = 0
	}
	c00 := buf[y0*w+x0]
	c10 := buf[y0*w+x1]
	c01 := buf[y1*w+x0]
	c11 := buf[y1*w+x1]
	return pixel.BilinearSample16(c00, c10, c01, c11, fx, fy)
}

func lerpPixel16(a, b pixel.Pixel16, t float64) pixel.Pixel16 {
	lerp := func(x, y uint16) uint16 { return uint16(float64(x)*(1-t) + float64(y)*t + 0.5) }
	return pixel.Pixel16{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

func floorF(v float64) float64 {
	i := float64(int(v))
	if v < 0 && i != v {
		return i - 1
	}
	return i
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// scaleImage resizes src with a fast bilinear kernel via golang.org/x/image/
// draw - used for the one-off resize a Resized texture op needs when mapping
// a texture into a new pixel grid ahead of the per-pixel sampler, rather
// than for the lazily-built mip chain (which needs the higher-quality
// Lanczos kernel imaging.Resize provides).
func scaleImage(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// Resized returns a new base-level texture rescaled to w x h, discarding any
// mip chain (EnsureMipMap rebuilds one lazily on demand), remapping a
// decoded image onto a different footprint without re-decoding it.
func (t *Texture) Resized(w, h int) *Texture {
	if t.Storage != TextureRgba8 && t.Storage != TextureU16Linear && t.Storage != TextureMipMap && t.Storage != TextureMipMapWithOriginal {
		return t
	}
	src := t.levelImage(0)
	scaled := scaleImage(src, w, h)
	out := make([]pixel.Pixel16, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := scaled.At(x, y).RGBA()
			out[y*w+x] = pixel.Pixel16{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)}
		}
	}
	return &Texture{Width: w, Height: h, Storage: t.Storage, base: out}
}
