package frame

import (
	"github.com/flowraster/rastercore/internal/drawstate"
	"github.com/flowraster/rastercore/internal/ids"
	"github.com/flowraster/rastercore/internal/pixel"
	"github.com/flowraster/rastercore/internal/pixelprogram"
	"github.com/flowraster/rastercore/internal/scanplan"
)

// LayerCompositor walks a drawstate.CanvasDrawing's layers through the scan
// planner and pixel-program cache to produce working-precision pixels. It
// implements both frame.RegionRenderer (compositing every ordinary layer the
// canvas knows about, ascending by id, into a full strip of scanlines - the
// frame renderer's source) and drawstate.LayerRasterizer (sampling an
// arbitrary sprite-backing layer at a single point, the seam DrawSprite's
// program reaches through) - installed on the canvas once per frame via
// SetLayerRasterizer so sprite sampling actually works rather than
// degrading to transparent.
type LayerCompositor struct {
	canvas *drawstate.CanvasDrawing
	width  int
	xform  scanplan.ScanlineTransform
}

// NewLayerCompositor creates a compositor over canvas, rendering a row of
// the given pixel width. The frame walk composites every layer canvas
// currently knows about (drawstate.CanvasDrawing.LayerIDs), not a single
// fixed root - a caller no longer names which layer is "the" frame.
func NewLayerCompositor(canvas *drawstate.CanvasDrawing, width int) *LayerCompositor {
	return &LayerCompositor{canvas: canvas, width: width, xform: scanplan.Identity()}
}

// Render implements frame.RegionRenderer: it fills one row per y position in
// dest by compositing every ordinary layer the canvas knows about, in
// ascending id order (§5's Ordering rule - "across layers, rendering order
// is by layer id ascending, further modified by layer blend and alpha").
// Sprite-backing layers are skipped; they render only when sampled through
// SampleLayer, on an explicit DrawSprite.
func (c *LayerCompositor) Render(yPositions []float64, dest [][]pixel.PixelF64) {
	xRange := [2]float64{0, float64(c.width)}
	layerDest := make([][]pixel.PixelF64, len(dest))
	for i := range layerDest {
		layerDest[i] = make([]pixel.PixelF64, len(dest[i]))
	}

	for _, handle := range c.canvas.LayerIDs() {
		layer, ok := c.canvas.LookupLayer(handle)
		if !ok {
			continue
		}
		for _, row := range layerDest {
			for i := range row {
				row[i] = pixel.PixelF64{}
			}
		}
		// renderLayerInto already folds the layer's own alpha into layerDest
		// via applyLayerComposite; only the blend mode remains to apply here.
		c.renderLayerInto(handle, yPositions, xRange, layerDest)

		mode := layer.Blend()
		for i, destRow := range dest {
			srcRow := layerDest[i]
			for x := range destRow {
				destRow[x] = pixel.Blend(mode, srcRow[x], destRow[x])
			}
		}
	}
}

// SampleLayer implements drawstate.LayerRasterizer: it composites the named
// layer for a single scanline and returns the pixel at x.
func (c *LayerCompositor) SampleLayer(layer ids.LayerHandle, x, y float64) pixel.PixelF64 {
	xRange := [2]float64{x, x + 1}
	row := make([]pixel.PixelF64, 1)
	dest := [][]pixel.PixelF64{row}
	c.renderLayerInto(layer, []float64{y}, xRange, dest)
	return row[0]
}

// RenderLayerBuffer rasterises layer across the compositor's full width and
// the given height into one flat, row-major buffer - the form
// drawstate.CanvasDrawing.Store expects, and the form a Restore later reads
// back row-by-row the same way applyBackground does.
func (c *LayerCompositor) RenderLayerBuffer(layer ids.LayerHandle, height int) ([]pixel.PixelF64, int) {
	buf := make([]pixel.PixelF64, c.width*height)
	dest := make([][]pixel.PixelF64, height)
	yPositions := make([]float64, height)
	for y := 0; y < height; y++ {
		dest[y] = buf[y*c.width : (y+1)*c.width]
		yPositions[y] = float64(y)
	}
	xRange := [2]float64{0, float64(c.width)}
	c.renderLayerInto(layer, yPositions, xRange, dest)
	return buf, c.width
}

// renderLayerInto composites layer's shapes across yPositions within
// xRange, writing into dest (one row per y, already sized to xRange's
// pixel width by the caller). Missing layers sample as fully transparent -
// the spec's missing-resource degrade-to-no-op, generalised here to "not
// yet rendered".
func (c *LayerCompositor) renderLayerInto(handle ids.LayerHandle, yPositions []float64, xRange [2]float64, dest [][]pixel.PixelF64) {
	layer, ok := c.canvas.LookupLayer(handle)
	if !ok {
		return
	}

	layer.Plan.PrepareToRender()
	plans := scanplan.PlanScanlines(layer.Plan, yPositions, xRange, c.xform)
	data := c.canvas.Data()

	offset := int(xRange[0])
	for i, row := range dest {
		c.applyBackground(layer, yPositions[i], xRange, row)
		c.paintStacks(data, plans[i], offset, int(yPositions[i]), row)
		c.applyLayerComposite(layer, row)
	}
}

// applyBackground seeds row with the layer's stored background (Store's
// snapshot), if any, so shapes painted this frame composite on top of it
// rather than starting from fully transparent.
func (c *LayerCompositor) applyBackground(layer *drawstate.Layer, yPos float64, xRange [2]float64, row []pixel.PixelF64) {
	if !layer.HasBackground() {
		return
	}
	bg, width := layer.Background()
	if width <= 0 {
		return
	}
	y := int(yPos)
	rowStart := y * width
	for i := range row {
		srcX := int(xRange[0]) + i
		idx := rowStart + srcX
		if idx >= 0 && idx < len(bg) {
			row[i] = bg[idx]
		}
	}
}

// paintStacks runs each stack's bottom-first program contributions directly
// against row: a program's ScanlineData.DrawPixels contract already reads
// and writes target[x] in place (SolidColor overwrites, SourceOverColor and
// every sampled program blend over whatever is already there), so row must
// already hold the background/lower contributions before a program runs -
// which is exactly what in-place, bottom-to-top execution gives for free.
func (c *LayerCompositor) paintStacks(data *pixelprogram.DataCache, plan scanplan.ScanlinePlan, rowOffset int, yPos int, row []pixel.PixelF64) {
	for _, stack := range plan.Stacks {
		lo, hi := int(stack.X0)-rowOffset, int(stack.X1)-rowOffset
		if lo < 0 {
			lo = 0
		}
		if hi > len(row) {
			hi = len(row)
		}
		if hi <= lo {
			continue
		}

		for _, entry := range stack.Entries {
			scanlineID := data.CreateScanlineData(yPos, []pixelprogram.Scanline{{X0: stack.X0, X1: stack.X1, YPos: float64(yPos)}}, entry.Program)
			data.RunProgram(scanlineID, row, [2]int{lo, hi}, yPos)
		}
	}
}

// applyLayerComposite scales row by the layer's own composite alpha. Blend
// mode is deliberately not applied here: it only has meaning once a layer's
// output is being merged into something else (Render's per-layer loop,
// against the accumulating frame; a parent sampling a sprite layer, against
// whatever it's drawn over), not while the layer is still rendering its own
// contents in isolation.
func (c *LayerCompositor) applyLayerComposite(layer *drawstate.Layer, row []pixel.PixelF64) {
	alpha := layer.Alpha()
	if alpha >= 1 {
		return
	}
	for i, px := range row {
		row[i] = pixel.PixelF64{
			R: px.R * alpha,
			G: px.G * alpha,
			B: px.B * alpha,
			A: px.A * alpha,
		}
	}
}
