package frame

import (
	"testing"

	"github.com/flowraster/rastercore/internal/basics"
	"github.com/flowraster/rastercore/internal/buffer"
	"github.com/flowraster/rastercore/internal/pixel"
)

func TestU8FrameRendererFillsEveryPixel(t *testing.T) {
	const width, height = 4, 3
	region := RegionRendererFunc(func(yPositions []float64, dest [][]pixel.PixelF64) {
		for i := range dest {
			for x := range dest[i] {
				dest[i][x] = pixel.PixelF64{R: 1, A: 1}
			}
		}
	})
	r := NewU8FrameRenderer(width, height, 1.0, region)

	buf := make([]basics.Int8u, width*height*4)
	dst := buffer.NewRenderingBufferU8WithData(buf, width, height, width*4)
	r.Render(dst)

	for i := 0; i < width*height; i++ {
		if buf[i*4+0] == 0 {
			t.Fatalf("expected pixel %d's red channel to be painted, got 0", i)
		}
		if buf[i*4+3] == 0 {
			t.Fatalf("expected pixel %d's alpha channel to be opaque, got 0", i)
		}
	}
}

func TestU8FrameRendererPanicsOnUndersizedBuffer(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Render to panic when the destination buffer has too few rows")
		}
	}()
	region := RegionRendererFunc(func(yPositions []float64, dest [][]pixel.PixelF64) {})
	r := NewU8FrameRenderer(4, 10, 1.0, region)
	buf := make([]basics.Int8u, 4*4*4)
	dst := buffer.NewRenderingBufferU8WithData(buf, 4, 4, 4*4)
	r.Render(dst)
}
