//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"fallsand/internal/app"
	"fallsand/internal/core"
	_ "fallsand/internal/sims/sandbox"

	"github.com/hajimehoshi/ebiten/v2"
)

type loggable interface {
	SetLogger(*slog.Logger)
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	debug := flag.Bool("debug", false, "log every step")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (have %v)", cfg.Sim, core.Names())
	}

	sim, err := factory(cfg.SimConfig())
	if err != nil {
		log.Fatalf("create %s: %v", cfg.Sim, err)
	}
	if l, ok := sim.(loggable); ok {
		l.SetLogger(logger)
	}
	if err := sim.Reset(cfg.Seed); err != nil {
		log.Fatalf("reset %s: %v", cfg.Sim, err)
	}

	game := app.New(sim, cfg, logger)
	size := sim.Size()

	ebiten.SetWindowTitle("fallsand - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.Panel, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
