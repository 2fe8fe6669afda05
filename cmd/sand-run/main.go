// Command sand-run steps a scenario headlessly and records per-step telemetry.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"fallsand/internal/core"
	"fallsand/internal/scenario"
	"fallsand/internal/sims/sandbox"
	"fallsand/internal/telemetry"
)

func main() {
	scenarioPath := flag.String("scenario", "", "scenario YAML file (empty uses the built-in shelf)")
	steps := flag.Int("steps", 500, "steps to run")
	workers := flag.Int("workers", 0, "step workers (0 uses the scenario or GOMAXPROCS)")
	policy := flag.String("policy", "", "conflict policy override: claim or overwrite")
	seed := flag.Int64("seed", 0, "seed override (0 keeps the scenario seed)")
	outputDir := flag.String("output-dir", "", "directory for steps.csv, summary.csv and scenario.yaml")
	tps := flag.Int("tps", 0, "ticks per second (0 runs unpaced)")
	logEvery := flag.Int("log-every", 100, "log a progress line every N steps (0 disables)")
	printGrid := flag.Bool("print", false, "print the final grid as ASCII")
	debug := flag.Bool("debug", false, "log every step")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := sandbox.FromMap(map[string]string{
		"scenario": *scenarioPath,
		"workers":  strconv.Itoa(*workers),
		"policy":   *policy,
		"seed":     strconv.FormatInt(*seed, 10),
	})
	if err := run(ctx, logger, cfg, options{
		steps:     *steps,
		outputDir: *outputDir,
		tps:       *tps,
		logEvery:  *logEvery,
		printGrid: *printGrid,
	}); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

type options struct {
	steps     int
	outputDir string
	tps       int
	logEvery  int
	printGrid bool
}

func run(ctx context.Context, logger *slog.Logger, cfg sandbox.Config, opts options) error {
	world, err := sandbox.New(cfg)
	if err != nil {
		return err
	}
	world.SetLogger(logger)

	out, err := telemetry.NewOutputManager(opts.outputDir)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			logger.Error("closing output", "err", cerr)
		}
	}()
	if err := out.WriteScenario(world.Scenario()); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}

	g := world.Grid()
	initial := g.Census()
	logger.Info("starting run",
		"scenario", world.Scenario().Name,
		"width", g.Width(),
		"height", g.Height(),
		"steps", opts.steps,
		"policy", world.Dispatcher().Options().Policy.String(),
		"output", out.Dir(),
	)

	var pace *core.FixedStep
	if opts.tps > 0 {
		pace = core.NewFixedStep(opts.tps)
	}

	collector := telemetry.NewCollector()
	completed := 0
	for i := 0; i < opts.steps; i++ {
		if pace != nil {
			if err := pace.Wait(ctx); err != nil {
				break
			}
		}
		if err := world.Step(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Warn("interrupted", "completed", completed)
				break
			}
			return err
		}
		completed++
		rec := collector.Observe(world.LastStats(), g.Census())
		if err := out.WriteStep(rec); err != nil {
			return fmt.Errorf("writing step: %w", err)
		}
		if opts.logEvery > 0 && completed%opts.logEvery == 0 {
			logger.Info("progress", "record", rec)
		}
	}

	summary := collector.Summary()
	if err := out.WriteSummary(summary); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	final := g.Census()
	lost := 0
	for k := range final {
		if k == 0 {
			continue
		}
		lost += initial[k] - final[k]
	}
	logger.Info("run complete",
		"steps", completed,
		"perf", summary,
		"swallowed", collector.Swallowed(),
		"particles_lost", lost,
	)

	if opts.printGrid {
		fmt.Print(scenario.FormatASCII(g))
	}
	return nil
}
