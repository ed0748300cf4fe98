// Package pixelprogram implements the pixel-program registry and per-frame
// data cache (spec component E): a program is registered once, producing a
// StoredPixelProgram[D] whose type parameter is the program's own
// configuration data; a frame then binds concrete data to get a
// PixelProgramDataID, which a scanline block resolves to a
// PixelScanlineDataID, which finally runs over a span of pixels. This is a
// direct Go-idiomatic port of pixel_program_cache.rs and pixel_program.rs -
// three nested closures in the original become three nested function values
// here, with generics standing in for Rust's per-program associated type.
package pixelprogram

import (
	"github.com/flowraster/rastercore/internal/ids"
	"github.com/flowraster/rastercore/internal/pixel"
)

// Scanline describes one scanline a program is being asked to prepare for:
// the exact x-range the planner intercepted (before clipping/occlusion) and
// the scanline's y position - the Go counterpart of PixelProgramScanline.
type Scanline struct {
	X0, X1 float64
	YPos   float64
}

// ScanlineData is the innermost closure: it actually paints pixels, already
// bound to both program data and scanline-derived data.
type ScanlineData interface {
	DrawPixels(target []pixel.PixelF64, xRange [2]int, yPos int)
}

// Program is a pixel-program kind, polymorphic over its own per-instance
// configuration data D. Programs are only generic at registration time -
// once registered, everything downstream is erased to PixelProgramDataID.
type Program[D any] interface {
	CreateScanlineData(minY int, scanlines []Scanline, data D) ScanlineData
}

// StoredPixelProgram is the registry's handle to a registered program: its
// assigned id, plus the associator that binds concrete data to produce the
// per-scanline-block closure.
type StoredPixelProgram[D any] struct {
	id        ids.PixelProgramID
	associate func(data D) func(minY int, scanlines []Scanline) ScanlineData
}

// ID returns the program's registry id.
func (s StoredPixelProgram[D]) ID() ids.PixelProgramID { return s.id }

// Registry assigns PixelProgramIDs to registered program kinds.
type Registry struct {
	nextID int64
}

// NewRegistry creates an empty program registry.
func NewRegistry() *Registry { return &Registry{} }

// AddProgram registers a program kind, returning a handle that can later be
// bound to concrete data via DataCache.StoreProgramData.
func AddProgram[D any](r *Registry, program Program[D]) StoredPixelProgram[D] {
	id := ids.PixelProgramID(r.nextID)
	r.nextID++
	return StoredPixelProgram[D]{
		id: id,
		associate: func(data D) func(int, []Scanline) ScanlineData {
			return func(minY int, scanlines []Scanline) ScanlineData {
				return program.CreateScanlineData(minY, scanlines, data)
			}
		},
	}
}
