package sand

// Move describes what the transition rule decided for one cell.
type Move uint8

const (
	Stayed Move = iota
	MovedDown
	MovedDiagonal
	MovedLateral
)

func (m Move) String() string {
	switch m {
	case Stayed:
		return "stayed"
	case MovedDown:
		return "down"
	case MovedDiagonal:
		return "diagonal"
	case MovedLateral:
		return "lateral"
	default:
		return "move(?)"
	}
}

// Decision is the outcome of evaluating one cell against the current buffer.
// ToX and ToY equal the source coordinate when Move is Stayed.
type Decision struct {
	Kind     Kind
	Move     Move
	ToX, ToY int
}

// Moved reports whether the decision relocates the particle.
func (d Decision) Moved() bool { return d.Move != Stayed }

// Decide evaluates the movement rule for (x, y). It only reads the current
// buffer: down first, then the two diagonals in bias order, then (fluids only)
// left before right. Every destination it returns is in bounds and Empty in the
// current buffer.
func Decide(g *Grid, x, y int) Decision {
	stay := Decision{Move: Stayed, ToX: x, ToY: y}
	if !g.InBounds(x, y) {
		return stay
	}
	k := g.At(x, y)
	stay.Kind = k
	class := k.Class()
	if class == Static {
		return stay
	}

	if y > 0 {
		if g.IsFree(x, y-1) {
			return Decision{Kind: k, Move: MovedDown, ToX: x, ToY: y - 1}
		}
		dir := preferredDir(x, y)
		if g.IsFree(x+dir, y-1) {
			return Decision{Kind: k, Move: MovedDiagonal, ToX: x + dir, ToY: y - 1}
		}
		if g.IsFree(x-dir, y-1) {
			return Decision{Kind: k, Move: MovedDiagonal, ToX: x - dir, ToY: y - 1}
		}
	}

	if class == Fluid {
		if g.IsFree(x-1, y) {
			return Decision{Kind: k, Move: MovedLateral, ToX: x - 1, ToY: y}
		}
		if g.IsFree(x+1, y) {
			return Decision{Kind: k, Move: MovedLateral, ToX: x + 1, ToY: y}
		}
	}
	return stay
}

// Apply evaluates (x, y) and writes the result into the next buffer: Empty at
// the source and the particle at its destination. Applying every cell of a
// step in sequence is the unresolved last-write-wins form of the rule; the
// Dispatcher resolves contention before writing instead.
func Apply(g *Grid, x, y int) (Move, error) {
	d := Decide(g, x, y)
	if !d.Moved() {
		return Stayed, nil
	}
	if err := commitMove(g, x, y, d); err != nil {
		return Stayed, err
	}
	return d.Move, nil
}

func commitMove(g *Grid, x, y int, d Decision) error {
	if err := g.SetNext(x, y, Empty); err != nil {
		return err
	}
	return g.SetNext(d.ToX, d.ToY, d.Kind)
}
