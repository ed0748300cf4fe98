// Package ids defines the opaque, monotonically assigned identifiers shared
// across the rendering pipeline (layers, sprites, textures, fonts,
// gradients, filters, namespaces, pixel programs and their per-shape data).
// Keeping them in one leaf package lets edgeplan, pixelprogram, drawstate
// and command all refer to the same id types without an import cycle -
// exactly the kind of small, dependency-free "vocabulary" package the
// teacher uses for basics/array.
package ids

// LayerHandle identifies a layer within a canvas.
type LayerHandle int64

// SpriteID identifies a sprite within a namespace.
type SpriteID int64

// TextureID identifies a decoded or rendered texture resource.
type TextureID int64

// FontID identifies a loaded font resource.
type FontID int64

// GradientID identifies a gradient resource (stops + geometry).
type GradientID int64

// FilterID identifies a named filter pipeline.
type FilterID int64

// Namespace partitions sprite ids so independently-authored content (e.g.
// nested "sub-canvases") can reuse small sprite numbers without colliding.
type Namespace int64

// PixelProgramID identifies a registered pixel-program kind in the program
// registry (Component E) - the outer closure constructor, not an instance.
type PixelProgramID int64

// PixelProgramDataID identifies one instantiation of a pixel program (an
// outer closure already bound to its user data) inside a single frame's
// data cache. ShapeDescriptors reference these, not PixelProgramIDs.
type PixelProgramDataID int64

// PixelScanlineDataID identifies program data further specialised for a
// particular block of scanlines (the inner closure produced by running a
// program's create_scanline_data step over a PixelProgramDataID).
type PixelScanlineDataID int64

// DefaultNamespace is the namespace sprites live in unless a drawing state
// explicitly switches namespace.
const DefaultNamespace Namespace = 0

// Counter hands out a monotonically increasing sequence of raw ids. The
// drawing state draws LayerHandle values from it; the other id types above
// are assigned elsewhere (PixelProgramDataID and PixelScanlineDataID are
// dense indices starting at 0).
type Counter struct {
	next int64
}

// Next returns the next id in sequence, starting at 1, so a counted id never
// collides with the zero value (LayerHandle 0 is the root layer).
func (c *Counter) Next() int64 {
	c.next++
	return c.next
}
