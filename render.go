package rastercore

import (
	"github.com/flowraster/rastercore/internal/basics"
	"github.com/flowraster/rastercore/internal/buffer"
	"github.com/flowraster/rastercore/internal/command"
	"github.com/flowraster/rastercore/internal/drawstate"
	"github.com/flowraster/rastercore/internal/frame"
	"github.com/flowraster/rastercore/internal/ids"
	"github.com/flowraster/rastercore/internal/pixel"
)

// RootLayer is the layer handle every new Canvas starts on, matching
// drawstate.NewCanvasDrawing's default-state contract. It carries no
// special treatment in the frame walk - Render composites every layer the
// canvas knows about, root included, in ascending id order.
const RootLayer ids.LayerHandle = 0

// Canvas is the public entry point: a command stream goes in through
// Apply, a frame buffer comes out through Render. It owns the
// drawstate.CanvasDrawing the command.Applier mutates and the
// frame.LayerCompositor that both samples sprites mid-stream and rasterises
// the final frame - the same object plays both roles so a DrawSprite drawn
// earlier in the stream and the final Render agree on every layer's
// content.
type Canvas struct {
	width, height int
	cfg           Config

	state      *drawstate.CanvasDrawing
	applier    *command.Applier
	compositor *frame.LayerCompositor
}

// NewCanvas creates a canvas of the given pixel dimensions. opts override
// DefaultConfig(); see WithGamma, WithStripLines, WithMultithreading.
func NewCanvas(width, height int, opts ...Option) *Canvas {
	cfg := NewConfig(opts...)

	state := drawstate.NewCanvasDrawing()
	compositor := frame.NewLayerCompositor(state, width)
	state.SetLayerRasterizer(compositor)

	applier := command.NewApplier(state)
	applier.SetStoreRenderer(compositor)

	return &Canvas{
		width: width, height: height, cfg: cfg,
		state: state, applier: applier, compositor: compositor,
	}
}

// Apply mutates the canvas's drawing state by running one Draw instruction
// through the command applier. It stops and returns the first
// BadInput/InternalInvariant error encountered (§7's Propagation rule);
// every other recognised failure is logged and absorbed by the applier
// itself, so a caller streaming commands should treat a non-nil error here
// as "abort this frame", not "abort the process".
func (c *Canvas) Apply(d command.Draw) error {
	return c.applier.Apply(d)
}

// ApplyAll runs a whole command stream in order, stopping at the first
// error exactly as a single Apply would.
func (c *Canvas) ApplyAll(draws []command.Draw) error {
	for _, d := range draws {
		if err := c.Apply(d); err != nil {
			return err
		}
	}
	return nil
}

// Render composites every layer the canvas currently knows about, ascending
// by id and further modified by each layer's blend mode and alpha, into a
// freshly allocated 8-bit premultiplied RGBA buffer (§5's Ordering rule).
// Gamma is applied during the final conversion, and - when Multithreading
// is enabled - the work is split across worker goroutines along independent
// horizontal strips. The clear colour set by the most recent ClearCanvas
// command, if any, is painted as the base background before compositing;
// with none set the frame starts fully transparent.
func (c *Canvas) Render() []byte {
	out := make([]basics.Int8u, c.width*c.height*4)
	dst := buffer.NewRenderingBufferU8WithData(out, c.width, c.height, c.width*4)

	renderer := frame.NewU8FrameRenderer(c.width, c.height, c.cfg.Gamma, c.backgroundedCompositor())
	if c.cfg.Multithreading {
		renderer.RenderConcurrent(dst, renderer.WorkerCount())
	} else {
		renderer.Render(dst)
	}
	return out
}

// backgroundedCompositor wraps the compositor so Render's base background
// reflects the last ClearCanvas colour, without CanvasDrawing or
// LayerCompositor needing to know about clear colour at all (§4.G's
// ClearCanvas never interprets one - see DESIGN.md Component G/I).
func (c *Canvas) backgroundedCompositor() frame.RegionRenderer {
	r, g, b, a, ok := c.applier.ClearColour()
	if !ok {
		return c.compositor
	}
	clear := pixel.Colour{R: r, G: g, B: b, A: a}.Premultiply()
	return frame.RegionRendererFunc(func(yPositions []float64, dest [][]pixel.PixelF64) {
		for _, row := range dest {
			for i := range row {
				row[i] = clear
			}
		}
		c.compositor.Render(yPositions, dest)
	})
}
