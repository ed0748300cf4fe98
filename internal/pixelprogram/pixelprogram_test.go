package pixelprogram

import (
	"math"
	"testing"

	"github.com/flowraster/rastercore/internal/filter"
	"github.com/flowraster/rastercore/internal/pixel"
	"github.com/flowraster/rastercore/internal/transform"
)

func TestSolidColorProgramRoundTrip(t *testing.T) {
	reg := NewRegistry()
	stored := AddProgram[pixel.Colour](reg, SolidColorProgram{})
	cache := NewDataCache()

	dataID := StoreProgramData(cache, stored, pixel.Colour{R: 1, G: 0, B: 0, A: 1})
	scanlineID := cache.CreateScanlineData(0, []Scanline{{X0: 0, X1: 10, YPos: 5}}, dataID)

	target := make([]pixel.PixelF64, 10)
	cache.RunProgram(scanlineID, target, [2]int{2, 6}, 5)

	for x := 2; x < 6; x++ {
		if target[x].R != 1 || target[x].A != 1 {
			t.Fatalf("expected solid red at x=%d, got %+v", x, target[x])
		}
	}
	if target[0].A != 0 || target[9].A != 0 {
		t.Fatalf("expected pixels outside the range to be untouched")
	}
}

func TestSourceOverColorProgramBlends(t *testing.T) {
	reg := NewRegistry()
	stored := AddProgram[pixel.Colour](reg, SourceOverColorProgram{})
	cache := NewDataCache()

	dataID := StoreProgramData(cache, stored, pixel.Colour{R: 1, A: 0.5})
	scanlineID := cache.CreateScanlineData(0, nil, dataID)

	target := []pixel.PixelF64{{R: 0, G: 1, B: 0, A: 1}}
	cache.RunProgram(scanlineID, target, [2]int{0, 1}, 0)

	want := pixel.PixelF64{R: 0.5, A: 0.5}.SourceOver(pixel.PixelF64{G: 1, A: 1})
	if target[0] != want {
		t.Fatalf("expected source-over composite %+v, got %+v", want, target[0])
	}
}

func TestDataCacheClearResetsIDs(t *testing.T) {
	reg := NewRegistry()
	stored := AddProgram[pixel.Colour](reg, SolidColorProgram{})
	cache := NewDataCache()
	StoreProgramData(cache, stored, pixel.Colour{A: 1})
	if cache.NumProgramData() != 1 {
		t.Fatalf("expected 1 program-data entry, got %d", cache.NumProgramData())
	}
	cache.Clear()
	if cache.NumProgramData() != 0 {
		t.Fatalf("expected Clear to empty the cache")
	}
	id := StoreProgramData(cache, stored, pixel.Colour{A: 1})
	if id != 0 {
		t.Fatalf("expected ids to restart from 0 after Clear, got %d", id)
	}
}

type constantSampler pixel.PixelF64

func (c constantSampler) SampleAt(_, _ float64) pixel.PixelF64 { return pixel.PixelF64(c) }

func TestBasicSpriteRenderFuncAppliesScaleAndTranslate(t *testing.T) {
	var gotX, gotY float64
	sampler := recordingSampler{result: pixel.PixelF64{R: 1, A: 1}, recordX: &gotX, recordY: &gotY}
	fn := NewBasicSpriteRenderFunc(sampler, 2, 2, 10, 20)

	target := make([]pixel.PixelF64, 15)
	fn(target, [2]int{14, 15}, 22)

	if math.Abs(gotX-2) > 1e-9 || math.Abs(gotY-1) > 1e-9 {
		t.Fatalf("expected source coords (2,1), got (%v,%v)", gotX, gotY)
	}
	if target[14].A != 1 {
		t.Fatalf("expected the sampled pixel to be composited into the target")
	}
}

type recordingSampler struct {
	result         pixel.PixelF64
	recordX, recordY *float64
}

func (r recordingSampler) SampleAt(x, y float64) pixel.PixelF64 {
	*r.recordX, *r.recordY = x, y
	return r.result
}

func TestTransformedSpriteRenderFuncUsesInverseTransform(t *testing.T) {
	xform := transform.NewTransAffine().Translate(5, 5)
	var gotX, gotY float64
	sampler := recordingSampler{result: pixel.PixelF64{A: 1}, recordX: &gotX, recordY: &gotY}
	fn := NewTransformedSpriteRenderFunc(sampler, xform)

	target := make([]pixel.PixelF64, 10)
	fn(target, [2]int{7, 8}, 9)

	if math.Abs(gotX-2) > 1e-9 || math.Abs(gotY-4) > 1e-9 {
		t.Fatalf("expected the translate to be inverted back to source space, got (%v,%v)", gotX, gotY)
	}
}

func TestFilteredScanlineRenderFuncAppliesFilter(t *testing.T) {
	sampler := constantSampler(pixel.PixelF64{R: 1, A: 1})
	f := filter.NewAlphaBlendFilter(0.5)
	fn := NewFilteredScanlineRenderFunc(sampler, 1, 1, 0, 0, f)

	target := make([]pixel.PixelF64, 4)
	fn(target, [2]int{0, 4}, 0)

	for _, p := range target {
		if math.Abs(p.A-0.5) > 1e-9 {
			t.Fatalf("expected the alpha-blend filter to halve alpha, got %v", p.A)
		}
	}
}

type fixedTexture pixel.Pixel16

func (f fixedTexture) SampleBilinear(_, _, _ float64) pixel.Pixel16 { return pixel.Pixel16(f) }

func TestTextureFillRenderFuncSamplesAndBlends(t *testing.T) {
	tex := fixedTexture{R: 65535, A: 65535}
	fn := NewTextureFillRenderFunc(tex, transform.NewTransAffine(), 0)

	target := make([]pixel.PixelF64, 1)
	fn(target, [2]int{0, 1}, 0)
	if target[0].R != 1 || target[0].A != 1 {
		t.Fatalf("expected opaque red sampled from the texture, got %+v", target[0])
	}
}

type fixedGradient pixel.Colour

func (g fixedGradient) SampleAt(_, _ float64) pixel.Colour { return pixel.Colour(g) }

func TestGradientFillRenderFuncSamplesAndBlends(t *testing.T) {
	grad := fixedGradient{B: 1, A: 1}
	fn := NewGradientFillRenderFunc(grad, transform.NewTransAffine())

	target := make([]pixel.PixelF64, 1)
	fn(target, [2]int{0, 1}, 0)
	if target[0].B != 1 {
		t.Fatalf("expected blue from the gradient, got %+v", target[0])
	}
}

func TestDebugRenderFuncAlternatesBands(t *testing.T) {
	fn := NewDebugRenderFunc(pixel.Colour{R: 1, A: 1}, pixel.Colour{B: 1, A: 1}, 4)

	even := make([]pixel.PixelF64, 1)
	fn(even, [2]int{0, 1}, 0)
	odd := make([]pixel.PixelF64, 1)
	fn(odd, [2]int{0, 1}, 4)

	if even[0].R != 1 || odd[0].B != 1 {
		t.Fatalf("expected alternating bands, got even=%+v odd=%+v", even[0], odd[0])
	}
}
