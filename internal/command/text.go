package command

import "github.com/flowraster/rastercore/internal/ids"

// fontTable is the minimal font resource table §6 names (`Font(id, op)`,
// removed wholesale by ClearCanvas per draw.rs's original comment). It only
// tracks presence: spec.md's Non-goals ("text shaping, font file parsing,
// and glyph outline extraction... assumed delivered as filled paths to the
// core") mean a font id never backs real glyph data here - a collaborator
// upstream of the command stream is expected to have already turned text
// into Fill/Stroke path commands by the time glyphs would matter. Keeping a
// presence table (rather than nothing at all) lets Font ops and DrawText
// still participate in UnknownResource bookkeeping instead of being a
// complete no-op regardless of argument.
type fontTable struct {
	known map[ids.FontID]struct{}
}

func newFontTable() *fontTable {
	return &fontTable{known: make(map[ids.FontID]struct{})}
}

func (t *fontTable) put(id ids.FontID)    { t.known[id] = struct{}{} }
func (t *fontTable) free(id ids.FontID)   { delete(t.known, id) }
func (t *fontTable) has(id ids.FontID) bool {
	_, ok := t.known[id]
	return ok
}

// lineLayout is the cursor BeginLineLayout positions and DrawLaidOutText
// consumes. It never accumulates glyph geometry (see fontTable's doc) - it
// only exists so the two commands' ordering contract (begin, then zero or
// more draws, then render) has somewhere to live.
type lineLayout struct {
	active bool
	x, y   float64
	align  TextAlignment
}
