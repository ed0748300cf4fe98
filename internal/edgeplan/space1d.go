package edgeplan

import "sort"

// space1D is a 1-D interval index over y: it maps a y-range query to the
// indices of edges whose (cached) bounding-box y-range overlaps it. Entries
// are kept sorted by minY so a query can binary-search to the last entry
// that could possibly start early enough to matter, then scan only that
// prefix - cheap to rebuild wholesale on every prepare_to_render (this is a
// batch rebuild, not an incremental index) and cheap enough to query that a
// hand-rolled structure beats pulling in a full interval-tree library for
// what is, in the common case, a few hundred entries.
type space1D struct {
	entries []interval
}

type interval struct {
	minY, maxY float64
	edgeIndex  int
}

func newSpace1D() *space1D { return &space1D{} }

// rebuild replaces the index wholesale from the given per-edge y-bounds.
// bounds[i] is the y-range of edge i; edges with minY > maxY (never
// prepared) are skipped.
func (s *space1D) rebuild(bounds []yBound) {
	s.entries = s.entries[:0]
	for i, b := range bounds {
		if b.minY > b.maxY {
			continue
		}
		s.entries = append(s.entries, interval{minY: b.minY, maxY: b.maxY, edgeIndex: i})
	}
	sort.Slice(s.entries, func(i, j int) bool { return s.entries[i].minY < s.entries[j].minY })
}

// dataInRegion appends, into out, the edge indices whose interval overlaps
// [yMin, yMax]. out is not cleared by this call - callers that want a fresh
// result should pass out[:0].
func (s *space1D) dataInRegion(yMin, yMax float64, out []int) []int {
	// Every candidate must have minY <= yMax; entries are sorted by minY,
	// so everything beyond this point can be skipped outright.
	end := sort.Search(len(s.entries), func(i int) bool { return s.entries[i].minY > yMax })
	for i := 0; i < end; i++ {
		if s.entries[i].maxY >= yMin {
			out = append(out, s.entries[i].edgeIndex)
		}
	}
	return out
}

type yBound struct {
	minY, maxY float64
}
