package filter

import "github.com/flowraster/rastercore/internal/pixel"

// CombinedFilter chains several filters so that the output of one becomes
// the input of the next, widening the working buffer at each stage by that
// stage's own InputLines/ExtraColumns requirement - a direct port of
// combined_filter.rs's iterative buffer-swap algorithm.
type CombinedFilter struct {
	filters []PixelFilter
}

// NewCombinedFilter builds a combined filter applying each of filters in
// order (filters[0] first).
func NewCombinedFilter(filters ...PixelFilter) *CombinedFilter {
	return &CombinedFilter{filters: append([]PixelFilter{}, filters...)}
}

func (c *CombinedFilter) InputLines() (above, below int) {
	for _, f := range c.filters {
		a, b := f.InputLines()
		above += a
		below += b
	}
	return above, below
}

func (c *CombinedFilter) ExtraColumns() (left, right int) {
	for _, f := range c.filters {
		l, r := f.ExtraColumns()
		left += l
		right += r
	}
	return left, right
}

func (c *CombinedFilter) WithScale(sx, sy float64) (PixelFilter, bool) {
	rescaled := make([]PixelFilter, len(c.filters))
	for i, f := range c.filters {
		if nf, ok := f.WithScale(sx, sy); ok {
			rescaled[i] = nf
		} else {
			rescaled[i] = f
		}
	}
	return &CombinedFilter{filters: rescaled}, true
}

func (c *CombinedFilter) FilterLine(yPos int, inputLines []Line, out Line) {
	switch len(c.filters) {
	case 0:
		copy(out, inputLines[0])
		return
	case 1:
		c.filters[0].FilterLine(yPos, inputLines, out)
		return
	}

	width := len(inputLines[0])
	height := len(inputLines)

	firstLeft, firstRight := c.filters[0].ExtraColumns()
	firstTop, firstBottom := c.filters[0].InputLines()

	output := allocLines(height-firstTop-firstBottom, width-firstLeft-firstRight)
	nextOutput := allocLines(len(output), width-firstLeft-firstRight)
	nextInput := append([]Line{}, inputLines...)

	for i := 0; i < len(c.filters)-1; i++ {
		f := c.filters[i]
		left, right := f.ExtraColumns()
		top, bottom := f.InputLines()

		for line := 0; line < height-top-bottom; line++ {
			window := nextInput[line : line+1+top+bottom]
			f.FilterLine(yPos+line, window, output[line][:width-left-right])
		}

		width -= left + right
		height -= top + bottom

		output, nextOutput = nextOutput, output
		nextInput = make([]Line, height)
		for i := range nextInput {
			nextInput[i] = nextOutput[i][:width]
		}
	}

	c.filters[len(c.filters)-1].FilterLine(yPos, nextInput[:height], out)
}

func allocLines(n, width int) []Line {
	lines := make([]Line, n)
	backing := make([]pixel.PixelF64, n*width)
	for i := range lines {
		lines[i] = backing[i*width : (i+1)*width]
	}
	return lines
}
