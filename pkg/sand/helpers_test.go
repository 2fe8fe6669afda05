package sand

import (
	"math/rand/v2"
	"strings"
	"testing"
)

// gridFromRows builds a grid from ASCII rows listed top row first.
func gridFromRows(t *testing.T, rows ...string) *Grid {
	t.Helper()
	if len(rows) == 0 {
		t.Fatal("no rows")
	}
	w := len(rows[0])
	cells := make([]Kind, 0, w*len(rows))
	for r, row := range rows {
		if len(row) != w {
			t.Fatalf("row %d has width %d, want %d", r, len(row), w)
		}
		for i := 0; i < len(row); i++ {
			k, ok := KindForGlyph(row[i])
			if !ok {
				t.Fatalf("row %d: bad glyph %q", r, row[i])
			}
			cells = append(cells, k)
		}
	}
	g, err := FromSnapshot(w, len(rows), cells)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	return g
}

func gridRows(g *Grid) []string {
	cells := g.Snapshot()
	out := make([]string, g.Height())
	for r := range out {
		var b strings.Builder
		for _, k := range cells[r*g.Width() : (r+1)*g.Width()] {
			b.WriteByte(k.Glyph())
		}
		out[r] = b.String()
	}
	return out
}

func randomGrid(t *testing.T, w, h int, seed uint64, weights [NumKinds]int) *Grid {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 0))
	total := 0
	for _, wt := range weights {
		total += wt
	}
	cells := make([]Kind, w*h)
	for i := range cells {
		n := rng.IntN(total)
		for k, wt := range weights {
			if n < wt {
				cells[i] = Kind(k)
				break
			}
			n -= wt
		}
	}
	g, err := FromSnapshot(w, h, cells)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	return g
}
