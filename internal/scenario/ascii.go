package scenario

import (
	"fmt"
	"strings"

	"fallsand/pkg/sand"
)

// ParseASCII reads a layout drawn top row first, one glyph per cell:
// '.' or ' ' empty, 'S' sand, '~' or 'W' water, '#' or 'X' stone.
// Leading and trailing blank lines are ignored.
func ParseASCII(layout string) (w, h int, cells []sand.Kind, err error) {
	lines := strings.Split(strings.ReplaceAll(layout, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return 0, 0, nil, fmt.Errorf("empty layout: %w", sand.ErrInvalidDimensions)
	}
	w = len(lines[0])
	cells = make([]sand.Kind, 0, w*len(lines))
	for row, line := range lines {
		if len(line) != w {
			return 0, 0, nil, fmt.Errorf("row %d has %d cells, want %d: %w", row, len(line), w, sand.ErrDimensionMismatch)
		}
		for col := 0; col < len(line); col++ {
			k, ok := sand.KindForGlyph(line[col])
			if !ok {
				return 0, 0, nil, fmt.Errorf("row %d col %d glyph %q: %w", row, col, line[col], sand.ErrUnknownKind)
			}
			cells = append(cells, k)
		}
	}
	return w, len(lines), cells, nil
}

// FormatASCII renders the grid's current buffer top row first.
func FormatASCII(g *sand.Grid) string {
	var b strings.Builder
	b.Grow((g.Width() + 1) * g.Height())
	for y := g.Height() - 1; y >= 0; y-- {
		for x := 0; x < g.Width(); x++ {
			b.WriteByte(g.At(x, y).Glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// GridFromASCII parses a layout into a new grid.
func GridFromASCII(layout string) (*sand.Grid, error) {
	w, h, cells, err := ParseASCII(layout)
	if err != nil {
		return nil, err
	}
	return sand.FromSnapshot(w, h, cells)
}
