package sand

import "fmt"

// Grid stores two buffers of particle kinds: cur is read during a step and nxt
// receives that step's writes. Cells are addressed as (x, y) with y = 0 at the
// bottom row; internally they are kept in interchange order, top row first, so
// Snapshot is a plain copy.
type Grid struct {
	w, h     int
	cur      []Kind
	nxt      []Kind
	stepping bool
}

// NewGrid allocates an empty grid of the given size.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	return &Grid{w: w, h: h, cur: make([]Kind, w*h), nxt: make([]Kind, w*h)}, nil
}

// FromSnapshot builds a grid from cells laid out top row first.
func FromSnapshot(w, h int, cells []Kind) (*Grid, error) {
	g, err := NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	if err := g.Load(cells); err != nil {
		return nil, err
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Len returns width*height.
func (g *Grid) Len() int { return len(g.cur) }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

// Index converts (x, y) to the interchange index (h-1-y)*w + x.
func (g *Grid) Index(x, y int) int { return (g.h-1-y)*g.w + x }

// Coords is the inverse of Index.
func (g *Grid) Coords(i int) (x, y int) {
	return i % g.w, g.h - 1 - i/g.w
}

func (g *Grid) bounds(x, y int) error {
	if g.InBounds(x, y) {
		return nil
	}
	return &BoundsError{X: x, Y: y, Width: g.w, Height: g.h}
}

// Get reads the current buffer.
func (g *Grid) Get(x, y int) (Kind, error) {
	if err := g.bounds(x, y); err != nil {
		return Empty, err
	}
	return g.cur[g.Index(x, y)], nil
}

// At reads the current buffer without a bounds check. Callers guard with
// InBounds.
func (g *Grid) At(x, y int) Kind { return g.cur[g.Index(x, y)] }

// IsFree reports whether (x, y) is inside the grid and Empty in the current
// buffer. The grid edge behaves as a wall.
func (g *Grid) IsFree(x, y int) bool {
	return g.InBounds(x, y) && g.cur[g.Index(x, y)] == Empty
}

// Set writes the current buffer directly. It is meant for host edits between
// steps and fails while a step is in progress.
func (g *Grid) Set(x, y int, k Kind) error {
	if g.stepping {
		return ErrStepInProgress
	}
	if err := g.bounds(x, y); err != nil {
		return err
	}
	if !k.Valid() {
		return fmt.Errorf("%w: code %d", ErrUnknownKind, uint8(k))
	}
	g.cur[g.Index(x, y)] = k
	return nil
}

// SetNext writes the next buffer. It is only valid between BeginStep and
// CommitStep.
func (g *Grid) SetNext(x, y int, k Kind) error {
	if !g.stepping {
		return ErrNoStep
	}
	if err := g.bounds(x, y); err != nil {
		return err
	}
	g.nxt[g.Index(x, y)] = k
	return nil
}

// BeginStep seeds the next buffer with a copy of the current one so that a
// cell nobody writes keeps its value.
func (g *Grid) BeginStep() {
	copy(g.nxt, g.cur)
	g.stepping = true
}

// CommitStep publishes the next buffer as the current one. The old current
// buffer becomes scratch space for the following step.
func (g *Grid) CommitStep() {
	g.cur, g.nxt = g.nxt, g.cur
	g.stepping = false
}

// AbortStep drops the in-progress step. The current buffer is untouched.
func (g *Grid) AbortStep() { g.stepping = false }

// Stepping reports whether a step is in progress.
func (g *Grid) Stepping() bool { return g.stepping }

// Snapshot returns a copy of the current buffer in interchange order.
func (g *Grid) Snapshot() []Kind {
	return append([]Kind(nil), g.cur...)
}

// CopyTo copies the current buffer into dst as raw kind codes and returns the
// number of cells copied.
func (g *Grid) CopyTo(dst []uint8) int {
	n := min(len(dst), len(g.cur))
	for i := 0; i < n; i++ {
		dst[i] = uint8(g.cur[i])
	}
	return n
}

// Load replaces the current buffer with cells laid out top row first.
func (g *Grid) Load(cells []Kind) error {
	if g.stepping {
		return ErrStepInProgress
	}
	if len(cells) != len(g.cur) {
		return fmt.Errorf("%w: got %d cells, want %d (%dx%d)", ErrDimensionMismatch, len(cells), len(g.cur), g.w, g.h)
	}
	for i, k := range cells {
		if !k.Valid() {
			x, y := g.Coords(i)
			return fmt.Errorf("%w: code %d at (%d,%d)", ErrUnknownKind, uint8(k), x, y)
		}
	}
	copy(g.cur, cells)
	return nil
}

// Fill sets every current cell to k.
func (g *Grid) Fill(k Kind) error {
	if g.stepping {
		return ErrStepInProgress
	}
	if !k.Valid() {
		return fmt.Errorf("%w: code %d", ErrUnknownKind, uint8(k))
	}
	for i := range g.cur {
		g.cur[i] = k
	}
	return nil
}

// Census counts current cells per kind.
func (g *Grid) Census() [NumKinds]int {
	var counts [NumKinds]int
	for _, k := range g.cur {
		if k.Valid() {
			counts[k]++
		}
	}
	return counts
}

// Count returns the number of current cells holding k.
func (g *Grid) Count(k Kind) int {
	if !k.Valid() {
		return 0
	}
	return g.Census()[k]
}
