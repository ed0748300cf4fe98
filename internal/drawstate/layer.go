package drawstate

import (
	"github.com/flowraster/rastercore/internal/edge"
	"github.com/flowraster/rastercore/internal/edgeplan"
	"github.com/flowraster/rastercore/internal/ids"
	"github.com/flowraster/rastercore/internal/pixel"
	"github.com/flowraster/rastercore/internal/transform"
)

// Layer is one drawing surface: its own edge plan, the pixel-program data it
// owns (for per-frame cache lifetime purposes), a running z-index counter,
// and the composite parameters the frame renderer's layer-traversal honours.
type Layer struct {
	Plan *edgeplan.EdgePlan

	usedProgramData []ids.PixelProgramDataID
	nextShape       edge.ShapeID
	nextZIndex      int64

	transform *transform.TransAffine
	blend     pixel.BlendMode
	alpha     float64

	// background is a stored buffer for Store/Restore or layer grouping;
	// nil until the command applier's Store op populates one.
	background []pixel.PixelF64
	bgWidth    int
}

// NewLayer creates an empty layer with identity transform, source-over
// blending and full opacity - the defaults a freshly switched-to Layer(id)
// starts from.
func NewLayer() *Layer {
	return &Layer{
		Plan:      edgeplan.New(),
		transform: transform.NewTransAffine(),
		blend:     pixel.BlendSourceOver,
		alpha:     1,
	}
}

// NextShapeID hands out the next dense shape id for this layer, used to tag
// edges committed by Fill/Stroke/DrawSprite.
func (l *Layer) NextShapeID() edge.ShapeID {
	id := l.nextShape
	l.nextShape++
	return id
}

// NextZIndex hands out the next monotonic z-index, so that within equal
// declared layer contents, shapes occlude in the insertion order the spec's
// ordering section requires.
func (l *Layer) NextZIndex() int64 {
	z := l.nextZIndex
	l.nextZIndex++
	return z
}

// UseProgramData records that this layer's lifetime depends on a piece of
// per-frame pixel-program data, matching §3's "list of PixelProgramDataIds
// it uses (for lifetime)".
func (l *Layer) UseProgramData(id ids.PixelProgramDataID) {
	l.usedProgramData = append(l.usedProgramData, id)
}

// UsedProgramData returns every program-data id this layer currently
// references.
func (l *Layer) UsedProgramData() []ids.PixelProgramDataID { return l.usedProgramData }

// SetTransform replaces the layer's last-applied transform record.
func (l *Layer) SetTransform(t *transform.TransAffine) { l.transform = t }

// Transform returns the layer's last-applied transform.
func (l *Layer) Transform() *transform.TransAffine { return l.transform }

// SetBlend sets the layer's composite blend mode (LayerBlend command).
func (l *Layer) SetBlend(mode pixel.BlendMode) { l.blend = mode }

// Blend returns the layer's composite blend mode.
func (l *Layer) Blend() pixel.BlendMode { return l.blend }

// SetAlpha sets the layer's composite alpha (LayerAlpha command).
func (l *Layer) SetAlpha(a float64) { l.alpha = a }

// Alpha returns the layer's composite alpha.
func (l *Layer) Alpha() float64 { return l.alpha }

// Clear resets the layer back to an empty edge plan (ClearLayer), without
// discarding its transform/blend/alpha or stored background - those are
// independent per-command state per §4.I's command list.
func (l *Layer) Clear() {
	l.Plan = edgeplan.New()
	l.nextShape = 0
	l.nextZIndex = 0
	l.usedProgramData = l.usedProgramData[:0]
}

// Store snapshots a buffer as the layer's stored background (the Store
// command); Restore/FreeStoredBuffer consume it via HasBackground/
// Background/ClearBackground.
func (l *Layer) Store(buf []pixel.PixelF64, width int) {
	if l.background == nil {
		l.background = make([]pixel.PixelF64, 0, len(buf))
	}
	l.background = append(l.background[:0], buf...)
	l.bgWidth = width
}

// HasBackground reports whether Store has populated a background buffer.
func (l *Layer) HasBackground() bool { return l.background != nil }

// Background returns the stored background buffer and its row width.
func (l *Layer) Background() ([]pixel.PixelF64, int) { return l.background, l.bgWidth }

// ClearBackground discards the stored background buffer (FreeStoredBuffer).
func (l *Layer) ClearBackground() { l.background = nil; l.bgWidth = 0 }

// SpriteTable is the (Namespace, SpriteId) -> LayerHandle map described by
// §3's Sprite data model entry: sprites survive ClearLayer/ClearCanvas but
// are dropped on a full canvas reset.
type SpriteTable struct {
	entries map[ids.Namespace]map[ids.SpriteID]ids.LayerHandle
}

// NewSpriteTable creates an empty sprite table.
func NewSpriteTable() *SpriteTable {
	return &SpriteTable{entries: make(map[ids.Namespace]map[ids.SpriteID]ids.LayerHandle)}
}

// Set records which layer a (namespace, sprite) pair currently names.
func (s *SpriteTable) Set(ns ids.Namespace, sprite ids.SpriteID, layer ids.LayerHandle) {
	m, ok := s.entries[ns]
	if !ok {
		m = make(map[ids.SpriteID]ids.LayerHandle)
		s.entries[ns] = m
	}
	m[sprite] = layer
}

// Lookup resolves a (namespace, sprite) pair to its layer, if any.
func (s *SpriteTable) Lookup(ns ids.Namespace, sprite ids.SpriteID) (ids.LayerHandle, bool) {
	m, ok := s.entries[ns]
	if !ok {
		return 0, false
	}
	l, ok := m[sprite]
	return l, ok
}

// Clear removes a single (namespace, sprite) mapping (ClearSprite).
func (s *SpriteTable) Clear(ns ids.Namespace, sprite ids.SpriteID) {
	if m, ok := s.entries[ns]; ok {
		delete(m, sprite)
	}
}

// Move re-points a sprite id at a different layer (MoveSpriteFrom): the
// source mapping is removed and its layer now answers for dst instead.
func (s *SpriteTable) Move(ns ids.Namespace, src, dst ids.SpriteID) {
	layer, ok := s.Lookup(ns, src)
	if !ok {
		return
	}
	s.Clear(ns, src)
	s.Set(ns, dst, layer)
}

// Reset discards every sprite mapping across every namespace - the full
// canvas reset the spec says sprites do NOT survive.
func (s *SpriteTable) Reset() {
	s.entries = make(map[ids.Namespace]map[ids.SpriteID]ids.LayerHandle)
}

// IsBacking reports whether handle currently backs some sprite, in any
// namespace - used by CanvasDrawing.LayerIDs to keep sprite layers out of
// the whole-frame composite walk.
func (s *SpriteTable) IsBacking(handle ids.LayerHandle) bool {
	for _, m := range s.entries {
		for _, l := range m {
			if l == handle {
				return true
			}
		}
	}
	return false
}
