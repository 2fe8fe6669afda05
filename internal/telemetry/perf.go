package telemetry

import (
	"log/slog"
	"math"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// PerfSummary describes the distribution of step durations in microseconds.
type PerfSummary struct {
	Steps  int     `csv:"steps"`
	MeanUS float64 `csv:"mean_us"`
	StdUS  float64 `csv:"std_us"`
	P50US  float64 `csv:"p50_us"`
	P90US  float64 `csv:"p90_us"`
	P99US  float64 `csv:"p99_us"`
	MaxUS  float64 `csv:"max_us"`
}

// Summarize computes mean, standard deviation and quantiles of durations.
func Summarize(durations []time.Duration) PerfSummary {
	if len(durations) == 0 {
		return PerfSummary{}
	}
	xs := make([]float64, len(durations))
	for i, d := range durations {
		xs[i] = float64(d) / float64(time.Microsecond)
	}
	slices.Sort(xs)

	mean, std := stat.MeanStdDev(xs, nil)
	if len(xs) < 2 || math.IsNaN(std) {
		std = 0
	}
	return PerfSummary{
		Steps:  len(xs),
		MeanUS: mean,
		StdUS:  std,
		P50US:  stat.Quantile(0.5, stat.Empirical, xs, nil),
		P90US:  stat.Quantile(0.9, stat.Empirical, xs, nil),
		P99US:  stat.Quantile(0.99, stat.Empirical, xs, nil),
		MaxUS:  xs[len(xs)-1],
	}
}

// LogValue implements slog.LogValuer.
func (p PerfSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("steps", p.Steps),
		slog.Float64("mean_us", p.MeanUS),
		slog.Float64("std_us", p.StdUS),
		slog.Float64("p50_us", p.P50US),
		slog.Float64("p90_us", p.P90US),
		slog.Float64("p99_us", p.P99US),
		slog.Float64("max_us", p.MaxUS),
	)
}
