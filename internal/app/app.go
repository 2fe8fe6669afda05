//go:build ebiten

package app

import (
	"context"
	"log/slog"
	"time"

	"fallsand/internal/core"
	"fallsand/internal/render"
	"fallsand/internal/ui"
	"fallsand/pkg/sand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type brushPainter interface {
	Paint(cx, cy, radius int, k sand.Kind) (int, error)
}

type statsProvider interface {
	LastStats() sand.StepStats
	Grid() *sand.Grid
	Dispatcher() *sand.Dispatcher
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	log     *slog.Logger

	scale    int
	paused   bool
	tickOnce bool
	seed     int64

	brush  sand.Kind
	radius int
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(cfg.Panel, render.Palette()),
		log:     logger,
		scale:   cfg.Scale,
		seed:    cfg.Seed,
		brush:   sand.Sand,
		radius:  ClampBrush(cfg.Brush),
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	if err := g.sim.Reset(seed); err != nil {
		g.log.Error("reset failed", "seed", seed, "err", err)
	}
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	g.handleBrushKeys()

	size := g.sim.Size()
	if k, ok := g.hud.Update(size.W*g.scale, g.status()); ok {
		g.brush = k
	} else {
		g.handlePaint()
	}

	if (!g.paused) || g.tickOnce {
		if err := g.sim.Step(context.Background()); err != nil {
			return err
		}
		g.tickOnce = false
	}
	return nil
}

func (g *Game) handleBrushKeys() {
	keys := map[ebiten.Key]sand.Kind{
		ebiten.Key1: sand.Sand,
		ebiten.Key2: sand.Water,
		ebiten.Key3: sand.Stone,
		ebiten.Key0: sand.Empty,
	}
	for key, k := range keys {
		if inpututil.IsKeyJustPressed(key) {
			g.brush = k
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.radius = ClampBrush(g.radius + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.radius = ClampBrush(g.radius - 1)
	}
	if _, wy := ebiten.Wheel(); wy > 0 {
		g.radius = ClampBrush(g.radius + 1)
	} else if wy < 0 {
		g.radius = ClampBrush(g.radius - 1)
	}
}

func (g *Game) handlePaint() {
	p, ok := g.sim.(brushPainter)
	if !ok {
		return
	}
	kind := g.brush
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		kind = sand.Empty
	default:
		return
	}
	size := g.sim.Size()
	mx, my := ebiten.CursorPosition()
	x, y, ok := CellAt(mx, my, g.scale, size.W, size.H)
	if !ok {
		return
	}
	if _, err := p.Paint(x, y, g.radius, kind); err != nil {
		g.log.Warn("paint failed", "x", x, "y", y, "err", err)
	}
}

func (g *Game) status() ui.Status {
	st := ui.Status{
		Name:   g.sim.Name(),
		Paused: g.paused,
		Brush:  g.brush,
		Radius: g.radius,
	}
	if sp, ok := g.sim.(statsProvider); ok {
		st.Stats = sp.LastStats()
		st.Census = sp.Grid().Census()
		d := sp.Dispatcher()
		st.Steps = d.Steps()
		st.Policy = d.Options().Policy
	}
	return st
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), render.Palette(), g.scale)
	size := g.sim.Size()
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
