package sand

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Policy decides which proposal wins when several cells target the same
// destination in one step.
type Policy uint8

const (
	// PolicyClaim lets the contender with the lowest interchange index move
	// (top row first, then lowest x). Losers stay where they are, so no
	// particle is ever lost.
	PolicyClaim Policy = iota
	// PolicyOverwrite lets the contender with the highest interchange index
	// land, as the last write of a top-down serial sweep would. Losers still
	// vacate their origin and are swallowed.
	PolicyOverwrite
)

func (p Policy) String() string {
	switch p {
	case PolicyClaim:
		return "claim"
	case PolicyOverwrite:
		return "overwrite"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParsePolicy resolves a policy by name.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "claim", "":
		return PolicyClaim, nil
	case "overwrite":
		return PolicyOverwrite, nil
	}
	return PolicyClaim, fmt.Errorf("sand: unknown conflict policy %q", s)
}

// DefaultBandRows matches the 8-row tiles the dispatcher hands to workers when
// no size is configured.
const DefaultBandRows = 8

// Options configures a Dispatcher.
type Options struct {
	// Workers bounds the number of bands evaluated concurrently. Zero means
	// GOMAXPROCS.
	Workers int
	// BandRows is the height of one work item. Zero means DefaultBandRows.
	BandRows int
	Policy   Policy
	Logger   *slog.Logger
}

const noMove = -1

type band struct{ lo, hi int } // interchange index range [lo, hi)

// Dispatcher advances a Grid one step at a time. Each step runs in two
// parallel phases separated by a barrier: every cell first records a proposal
// computed from the current buffer, then each proposal is written to the next
// buffer only if it wins its destination. Writes from different workers never
// share an address, and the outcome does not depend on Workers or BandRows.
type Dispatcher struct {
	mu    sync.Mutex
	g     *Grid
	opts  Options
	log   *slog.Logger
	bands []band
	plan  []int32
	moves []Move
	steps uint64
}

// NewDispatcher prepares a dispatcher for g. The grid must not be resized for
// the dispatcher's lifetime.
func NewDispatcher(g *Grid, opts Options) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.BandRows <= 0 {
		opts.BandRows = DefaultBandRows
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d := &Dispatcher{
		g:     g,
		opts:  opts,
		log:   logger,
		plan:  make([]int32, g.Len()),
		moves: make([]Move, g.Len()),
	}
	for row := 0; row < g.Height(); row += opts.BandRows {
		end := min(row+opts.BandRows, g.Height())
		d.bands = append(d.bands, band{lo: row * g.Width(), hi: end * g.Width()})
	}
	return d
}

// Grid returns the grid this dispatcher steps.
func (d *Dispatcher) Grid() *Grid { return d.g }

// Options returns the effective options.
func (d *Dispatcher) Options() Options { return d.opts }

// Steps returns the number of committed steps.
func (d *Dispatcher) Steps() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.steps
}

// Step evaluates every cell exactly once and commits the result. If ctx is
// cancelled before the commit the step is abandoned and the current buffer is
// left as it was.
func (d *Dispatcher) Step(ctx context.Context) (StepStats, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	g := d.g
	if g.Stepping() {
		return StepStats{}, ErrStepInProgress
	}
	start := time.Now()
	g.BeginStep()

	results := make([]StepStats, len(d.bands))
	if err := d.run(ctx, func(i int, b band) error {
		d.propose(b, &results[i])
		return nil
	}); err != nil {
		g.AbortStep()
		return StepStats{}, fmt.Errorf("step %d aborted: %w", d.steps+1, err)
	}
	if err := d.run(ctx, func(i int, b band) error {
		return d.resolve(b, &results[i])
	}); err != nil {
		g.AbortStep()
		return StepStats{}, fmt.Errorf("step %d aborted: %w", d.steps+1, err)
	}
	g.CommitStep()
	d.steps++

	stats := StepStats{Step: d.steps}
	for _, r := range results {
		stats.add(r)
	}
	stats.Duration = time.Since(start)
	d.log.Debug("step committed", "stats", stats, "policy", d.opts.Policy.String())
	return stats, nil
}

func (d *Dispatcher) run(ctx context.Context, fn func(int, band) error) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(d.opts.Workers)
	for i, b := range d.bands {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(i, b)
		})
	}
	return eg.Wait()
}

// propose records each cell's destination from current-buffer reads only.
func (d *Dispatcher) propose(b band, st *StepStats) {
	g := d.g
	for i := b.lo; i < b.hi; i++ {
		st.Visited++
		d.plan[i] = noMove
		d.moves[i] = Stayed
		x, y := g.Coords(i)
		dec := Decide(g, x, y)
		if !dec.Kind.Mobile() {
			continue
		}
		if !dec.Moved() {
			st.Stayed++
			continue
		}
		d.plan[i] = int32(g.Index(dec.ToX, dec.ToY))
		d.moves[i] = dec.Move
	}
}

// resolve writes the winning proposals of a band. A destination is written
// only by its single winner and a source only by itself, so bands can be
// resolved concurrently.
func (d *Dispatcher) resolve(b band, st *StepStats) error {
	g := d.g
	for i := b.lo; i < b.hi; i++ {
		t := d.plan[i]
		if t == noMove {
			continue
		}
		x, y := g.Coords(i)
		k := g.At(x, y)
		if d.winner(int(t)) == i {
			tx, ty := g.Coords(int(t))
			if err := commitMove(g, x, y, Decision{Kind: k, Move: d.moves[i], ToX: tx, ToY: ty}); err != nil {
				return err
			}
			st.count(d.moves[i])
			continue
		}
		st.Contended++
		if d.opts.Policy == PolicyOverwrite {
			if err := g.SetNext(x, y, Empty); err != nil {
				return err
			}
			st.Swallowed++
			continue
		}
		st.Stayed++
	}
	return nil
}

// winner returns the interchange index of the cell allowed to move into t.
// Only the cell above, the two above it diagonally and the two beside it can
// ever target t.
func (d *Dispatcher) winner(t int) int {
	g := d.g
	tx, ty := g.Coords(t)
	best := noMove
	for _, c := range [...][2]int{
		{tx, ty + 1}, {tx - 1, ty + 1}, {tx + 1, ty + 1}, {tx - 1, ty}, {tx + 1, ty},
	} {
		if !g.InBounds(c[0], c[1]) {
			continue
		}
		j := g.Index(c[0], c[1])
		if int(d.plan[j]) != t {
			continue
		}
		switch {
		case best == noMove:
			best = j
		case d.opts.Policy == PolicyOverwrite && j > best:
			best = j
		case d.opts.Policy != PolicyOverwrite && j < best:
			best = j
		}
	}
	return best
}
