package pixelprogram

import (
	"github.com/flowraster/rastercore/internal/ids"
	"github.com/flowraster/rastercore/internal/pixel"
)

// DataCache is the per-frame store of program-data and scanline-data
// closures (spec: "allocated into a per-frame cache... the entire cache is
// cleared between frames"). Ids are dense slice indices, matching the
// original's Vec-backed cache exactly.
type DataCache struct {
	programData  []func(minY int, scanlines []Scanline) ScanlineData
	scanlineData []ScanlineData
}

// NewDataCache creates an empty frame data cache.
func NewDataCache() *DataCache { return &DataCache{} }

// StoreProgramData binds data to a registered program, returning a dense
// PixelProgramDataID that ShapeDescriptors can reference.
func StoreProgramData[D any](cache *DataCache, stored StoredPixelProgram[D], data D) ids.PixelProgramDataID {
	id := ids.PixelProgramDataID(len(cache.programData))
	cache.programData = append(cache.programData, stored.associate(data))
	return id
}

// CreateScanlineData runs the program's scanline-preparation step for a
// given data id, returning a PixelScanlineDataID that RunProgram can
// execute repeatedly over that block of scanlines.
func (c *DataCache) CreateScanlineData(minY int, scanlines []Scanline, dataID ids.PixelProgramDataID) ids.PixelScanlineDataID {
	fn := c.programData[dataID]
	sd := fn(minY, scanlines)
	id := ids.PixelScanlineDataID(len(c.scanlineData))
	c.scanlineData = append(c.scanlineData, sd)
	return id
}

// RunProgram executes a previously prepared scanline-data closure over a
// pixel range.
func (c *DataCache) RunProgram(scanlineID ids.PixelScanlineDataID, target []pixel.PixelF64, xRange [2]int, yPos int) {
	c.scanlineData[scanlineID].DrawPixels(target, xRange, yPos)
}

// NumProgramData reports how many program-data entries are currently
// stored.
func (c *DataCache) NumProgramData() int { return len(c.programData) }

// Clear empties the cache, ready for reuse on the next frame.
func (c *DataCache) Clear() {
	c.programData = c.programData[:0]
	c.scanlineData = c.scanlineData[:0]
}
