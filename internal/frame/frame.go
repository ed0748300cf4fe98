// Package frame implements the frame renderer (spec component H): strip
// tiling over a region renderer that fills working PixelF64 rows, followed
// by conversion to 8-bit premultiplied RGBA, plus the layer compositor that
// actually walks a drawing state's layers through the scan planner and
// pixel-program cache to produce those rows. It is the Go counterpart of
// u8_frame_renderer.rs (strip size, chunking, to_u8_rgba conversion) and
// buffer_stack.rs (the push/pop compositing buffers), both read in full
// during spec expansion.
package frame

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/flowraster/rastercore/internal/basics"
	"github.com/flowraster/rastercore/internal/buffer"
	"github.com/flowraster/rastercore/internal/pixel"
)

// LinesPerStrip is the number of scanlines rendered into the working buffer
// at once, matching the original's LINES_AT_ONCE constant.
const LinesPerStrip = 8

// RegionRenderer fills dest, one row per requested source y position, with
// working-precision pixels. len(dest) == len(yPositions); each dest[i] has
// capacity for exactly one row of pixels at the frame's width.
type RegionRenderer interface {
	Render(yPositions []float64, dest [][]pixel.PixelF64)
}

// RegionRendererFunc adapts a plain function to RegionRenderer.
type RegionRendererFunc func(yPositions []float64, dest [][]pixel.PixelF64)

func (f RegionRendererFunc) Render(yPositions []float64, dest [][]pixel.PixelF64) { f(yPositions, dest) }

// U8FrameRenderer renders a whole frame into an 8-bit RGBA buffer, strip by
// strip, converting the working-precision result through a gamma curve at
// the very end. A gamma of 2.2 matches most operating systems' default, per
// the original's own doc comment.
type U8FrameRenderer struct {
	width, height int
	gamma         float64
	region        RegionRenderer
}

// NewU8FrameRenderer creates a frame renderer of the given pixel dimensions,
// backed by region as the source of working-precision pixels.
func NewU8FrameRenderer(width, height int, gamma float64, region RegionRenderer) *U8FrameRenderer {
	return &U8FrameRenderer{width: width, height: height, gamma: gamma, region: region}
}

// Render fills dst, which must already be attached with at least Height()
// rows of width*4 bytes each (one RGBA8 pixel per source pixel).
func (r *U8FrameRenderer) Render(dst *buffer.RenderingBufferU8) {
	r.checkHeight(dst)

	working := make([]pixel.PixelF64, r.width*LinesPerStrip)
	rows := make([][]pixel.PixelF64, LinesPerStrip)
	yPositions := make([]float64, 0, LinesPerStrip)

	for y0 := 0; y0 < r.height; y0 += LinesPerStrip {
		r.renderStrip(dst, y0, working, rows, yPositions[:0])
	}
}

// RenderConcurrent is Render, split across workers goroutines, each owning
// its own working-precision strip buffer and claiming strips in turn - the
// independent-horizontal-strips parallelism §5's Ordering section calls out
// ("independent horizontal strips may be rendered on different worker
// threads"). Strips write disjoint row ranges of dst, so no further
// synchronisation is needed between workers. workers <= 1 falls back to
// Render.
func (r *U8FrameRenderer) RenderConcurrent(dst *buffer.RenderingBufferU8, workers int) {
	if workers <= 1 {
		r.Render(dst)
		return
	}
	r.checkHeight(dst)

	var next int64
	lastStrip := int64((r.height + LinesPerStrip - 1) / LinesPerStrip)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			working := make([]pixel.PixelF64, r.width*LinesPerStrip)
			rows := make([][]pixel.PixelF64, LinesPerStrip)
			yPositions := make([]float64, 0, LinesPerStrip)
			for {
				strip := claimStrip(&next, lastStrip)
				if strip < 0 {
					return
				}
				y0 := int(strip) * LinesPerStrip
				r.renderStrip(dst, y0, working, rows, yPositions[:0])
			}
		}()
	}
	wg.Wait()
}

// WorkerCount returns a reasonable concurrent worker count for a frame this
// tall: one goroutine per strip-sized chunk of work, capped at GOMAXPROCS so
// RenderConcurrent never oversubscribes the machine for a small frame.
func (r *U8FrameRenderer) WorkerCount() int {
	strips := (r.height + LinesPerStrip - 1) / LinesPerStrip
	if strips < 1 {
		strips = 1
	}
	if max := runtime.GOMAXPROCS(0); strips > max {
		strips = max
	}
	return strips
}

func (r *U8FrameRenderer) checkHeight(dst *buffer.RenderingBufferU8) {
	if dst.Height() < r.height {
		panic(fmt.Sprintf("cannot render: needed an output buffer large enough to fit %d lines but found %d lines", r.height, dst.Height()))
	}
}

// claimStrip atomically hands out the next strip index below last, or -1
// once they're exhausted.
func claimStrip(next *int64, last int64) int64 {
	strip := atomic.AddInt64(next, 1) - 1
	if strip >= last {
		return -1
	}
	return strip
}

// renderStrip renders and converts one LinesPerStrip-tall band starting at
// y0, reusing the caller's working/rows/yPositions scratch space.
func (r *U8FrameRenderer) renderStrip(dst *buffer.RenderingBufferU8, y0 int, working []pixel.PixelF64, rows [][]pixel.PixelF64, yPositions []float64) {
	y1 := y0 + LinesPerStrip
	if y1 > r.height {
		y1 = r.height
	}
	n := y1 - y0
	if n <= 0 {
		return
	}

	for y := y0; y < y1; y++ {
		yPositions = append(yPositions, float64(y))
	}

	for i := 0; i < n; i++ {
		row := working[i*r.width : (i+1)*r.width]
		for j := range row {
			row[j] = pixel.PixelF64{}
		}
		rows[i] = row
	}

	r.region.Render(yPositions, rows[:n])

	for i := 0; i < n; i++ {
		target := dst.RowPtr(0, y0+i, r.width*4)
		for x := 0; x < r.width; x++ {
			rgba := rows[i][x].ToU8RGBA(r.gamma)
			target[x*4+0] = basics.Int8u(rgba[0])
			target[x*4+1] = basics.Int8u(rgba[1])
			target[x*4+2] = basics.Int8u(rgba[2])
			target[x*4+3] = basics.Int8u(rgba[3])
		}
	}
}
