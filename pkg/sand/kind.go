package sand

import "fmt"

// Kind identifies the substance occupying a cell. The zero value is Empty.
type Kind uint8

const (
	Empty Kind = iota
	Sand
	Water
	Stone

	// NumKinds is the size of the closed kind set.
	NumKinds = 4
)

// Class is the movement category derived from a Kind.
type Class uint8

const (
	// Static kinds never initiate movement.
	Static Class = iota
	// Granular kinds fall straight down or diagonally.
	Granular
	// Fluid kinds fall, slide diagonally or spread sideways.
	Fluid
)

type kindInfo struct {
	name    string
	glyph   byte
	class   Class
	density float32
}

// Densities are in g/cm³ and are informational only.
var kinds = [NumKinds]kindInfo{
	Empty: {name: "empty", glyph: '.', class: Static},
	Sand:  {name: "sand", glyph: 'S', class: Granular, density: 1.5},
	Water: {name: "water", glyph: '~', class: Fluid, density: 1.0},
	Stone: {name: "stone", glyph: '#', class: Static, density: 2.65},
}

// Kinds lists every kind in code order.
func Kinds() []Kind {
	return []Kind{Empty, Sand, Water, Stone}
}

// Valid reports whether k is one of the registered kinds.
func (k Kind) Valid() bool { return k < NumKinds }

// Class returns the movement class of k. Unknown codes are Static.
func (k Kind) Class() Class {
	if !k.Valid() {
		return Static
	}
	return kinds[k].class
}

// Mobile reports whether k can ever move.
func (k Kind) Mobile() bool { return k.Class() != Static }

// Glyph returns the single-character ASCII form used by scenario layouts.
func (k Kind) Glyph() byte {
	if !k.Valid() {
		return '?'
	}
	return kinds[k].glyph
}

// Density returns the nominal density of k.
func (k Kind) Density() float32 {
	if !k.Valid() {
		return 0
	}
	return kinds[k].density
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kinds[k].name
}

// ParseKind resolves a kind from its name or glyph.
func ParseKind(s string) (Kind, error) {
	for i := range kinds {
		if kinds[i].name == s {
			return Kind(i), nil
		}
	}
	if len(s) == 1 {
		if k, ok := KindForGlyph(s[0]); ok {
			return k, nil
		}
	}
	return Empty, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// KindForGlyph maps an ASCII layout character to a kind. Besides the canonical
// glyphs it accepts a few aliases that read naturally in hand-drawn layouts.
func KindForGlyph(c byte) (Kind, bool) {
	switch c {
	case '.', ' ':
		return Empty, true
	case 'S', 's':
		return Sand, true
	case '~', 'W', 'w':
		return Water, true
	case '#', 'X', 'x':
		return Stone, true
	}
	return Empty, false
}

func (c Class) String() string {
	switch c {
	case Static:
		return "static"
	case Granular:
		return "granular"
	case Fluid:
		return "fluid"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}
