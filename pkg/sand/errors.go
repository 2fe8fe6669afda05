package sand

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("sand: coordinate out of bounds")
	// ErrDimensionMismatch is returned when a snapshot does not hold width*height cells.
	ErrDimensionMismatch = errors.New("sand: dimension mismatch")
	// ErrInvalidDimensions is returned for non-positive grid sizes.
	ErrInvalidDimensions = errors.New("sand: grid dimensions must be positive")
	// ErrUnknownKind is returned for kind codes or names outside the registry.
	ErrUnknownKind = errors.New("sand: unknown particle kind")
	// ErrNoStep is returned by next-buffer writes outside BeginStep/CommitStep.
	ErrNoStep = errors.New("sand: no step in progress")
	// ErrStepInProgress is returned by edits to the current buffer during a step.
	ErrStepInProgress = errors.New("sand: step in progress")
)

// BoundsError reports the coordinate that missed the grid.
type BoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("sand: (%d,%d) outside %dx%d grid", e.X, e.Y, e.Width, e.Height)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }
