// Package sandbox adapts the falling-sand kernel to the host Sim contract.
package sandbox

import (
	"context"
	"fmt"
	"log/slog"

	"fallsand/internal/core"
	"fallsand/internal/scenario"
	"fallsand/pkg/sand"
)

// World owns a grid, its dispatcher and the display buffer handed to renderers.
type World struct {
	cfg  Config
	scn  *scenario.Scenario
	opts sand.Options

	grid    *sand.Grid
	disp    *sand.Dispatcher
	display []uint8
	last    sand.StepStats
	spawned int
}

// New builds a world from the configuration.
func New(cfg Config) (*World, error) {
	scn, err := scenario.Load(cfg.Scenario)
	if err != nil {
		return nil, fmt.Errorf("loading scenario: %w", err)
	}
	return NewFromScenario(scn, cfg)
}

// NewFromScenario builds a world from an already loaded scenario. Non-zero
// fields of cfg override the scenario's settings.
func NewFromScenario(scn *scenario.Scenario, cfg Config) (*World, error) {
	s := *scn
	if cfg.Width > 0 {
		s.Width = cfg.Width
	}
	if cfg.Height > 0 {
		s.Height = cfg.Height
	}
	if (cfg.Width > 0 || cfg.Height > 0) && s.Layout != "" {
		return nil, fmt.Errorf("scenario %q has a fixed layout and cannot be resized: %w", s.Name, sand.ErrDimensionMismatch)
	}
	if cfg.Seed != 0 {
		s.Seed = cfg.Seed
	}
	if cfg.Workers > 0 {
		s.Workers = cfg.Workers
	}
	if cfg.BandRows > 0 {
		s.BandRows = cfg.BandRows
	}
	if cfg.Policy != "" {
		s.Policy = cfg.Policy
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}
	grid, err := s.Build()
	if err != nil {
		return nil, err
	}
	w := &World{
		cfg:     cfg,
		scn:     &s,
		opts:    opts,
		grid:    grid,
		display: make([]uint8, grid.Len()),
	}
	w.disp = sand.NewDispatcher(grid, opts)
	w.rebuildDisplay()
	return w, nil
}

// SetLogger routes dispatcher debug logs to logger.
func (w *World) SetLogger(logger *slog.Logger) {
	w.opts.Logger = logger
	w.disp = sand.NewDispatcher(w.grid, w.opts)
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sand" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.grid.Width(), H: w.grid.Height()} }

// Cells exposes the display buffer: kind codes, top row first.
func (w *World) Cells() []uint8 { return w.display }

// Grid exposes the underlying grid.
func (w *World) Grid() *sand.Grid { return w.grid }

// Scenario returns the effective scenario after overrides.
func (w *World) Scenario() *scenario.Scenario { return w.scn }

// Dispatcher returns the active dispatcher.
func (w *World) Dispatcher() *sand.Dispatcher { return w.disp }

// LastStats returns statistics for the most recent committed step.
func (w *World) LastStats() sand.StepStats { return w.last }

// Spawned returns the number of cells changed by painting since the last reset.
func (w *World) Spawned() int { return w.spawned }

// Reset repaints the scenario. A zero seed reuses the scenario seed.
func (w *World) Reset(seed int64) error {
	if seed != 0 {
		w.scn.Seed = seed
	}
	if err := w.scn.Paint(w.grid); err != nil {
		return err
	}
	w.disp = sand.NewDispatcher(w.grid, w.opts)
	w.last = sand.StepStats{}
	w.spawned = 0
	w.rebuildDisplay()
	return nil
}

// Step advances the grid by one step.
func (w *World) Step(ctx context.Context) error {
	st, err := w.disp.Step(ctx)
	if err != nil {
		return err
	}
	w.last = st
	w.rebuildDisplay()
	return nil
}

// Paint sets every cell within radius of (cx, cy) to k, where cy counts from
// the bottom row. It returns the number of cells that changed.
func (w *World) Paint(cx, cy, radius int, k sand.Kind) (int, error) {
	if radius < 0 {
		radius = 0
	}
	changed := 0
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			x, y := cx+dx, cy+dy
			if !w.grid.InBounds(x, y) || w.grid.At(x, y) == k {
				continue
			}
			if err := w.grid.Set(x, y, k); err != nil {
				return changed, err
			}
			changed++
		}
	}
	w.spawned += changed
	if changed > 0 {
		w.rebuildDisplay()
	}
	return changed, nil
}

func (w *World) rebuildDisplay() {
	w.grid.CopyTo(w.display)
}

func init() {
	core.Register("sand", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
