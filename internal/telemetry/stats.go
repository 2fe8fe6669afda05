// Package telemetry records per-step kernel statistics for headless runs.
package telemetry

import (
	"log/slog"
	"time"

	"fallsand/pkg/sand"
)

// StepRecord is one row of steps.csv.
type StepRecord struct {
	Step       uint64 `csv:"step"`
	DurationUS int64  `csv:"duration_us"`

	Visited   int `csv:"visited"`
	Down      int `csv:"down"`
	Diagonal  int `csv:"diagonal"`
	Lateral   int `csv:"lateral"`
	Stayed    int `csv:"stayed"`
	Contended int `csv:"contended"`
	Swallowed int `csv:"swallowed"`

	// Census after the step was committed
	Empty int `csv:"empty"`
	Sand  int `csv:"sand"`
	Water int `csv:"water"`
	Stone int `csv:"stone"`
}

// NewStepRecord combines step statistics with a post-commit census.
func NewStepRecord(st sand.StepStats, census [sand.NumKinds]int) StepRecord {
	return StepRecord{
		Step:       st.Step,
		DurationUS: st.Duration.Microseconds(),
		Visited:    st.Visited,
		Down:       st.Down,
		Diagonal:   st.Diagonal,
		Lateral:    st.Lateral,
		Stayed:     st.Stayed,
		Contended:  st.Contended,
		Swallowed:  st.Swallowed,
		Empty:      census[sand.Empty],
		Sand:       census[sand.Sand],
		Water:      census[sand.Water],
		Stone:      census[sand.Stone],
	}
}

// Moved returns the number of particles that changed cell.
func (r StepRecord) Moved() int { return r.Down + r.Diagonal + r.Lateral }

// LogValue implements slog.LogValuer for structured logging.
func (r StepRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("step", r.Step),
		slog.Int64("duration_us", r.DurationUS),
		slog.Int("moved", r.Moved()),
		slog.Int("contended", r.Contended),
		slog.Int("swallowed", r.Swallowed),
		slog.Int("sand", r.Sand),
		slog.Int("water", r.Water),
		slog.Int("stone", r.Stone),
	)
}

// Collector keeps step durations and the latest record for a run.
type Collector struct {
	durations []time.Duration
	swallowed int
	last      StepRecord
}

// NewCollector returns an empty collector.
func NewCollector() *Collector { return &Collector{} }

// Observe records one committed step and returns its CSV row.
func (c *Collector) Observe(st sand.StepStats, census [sand.NumKinds]int) StepRecord {
	c.durations = append(c.durations, st.Duration)
	c.swallowed += st.Swallowed
	c.last = NewStepRecord(st, census)
	return c.last
}

// Last returns the most recent record.
func (c *Collector) Last() StepRecord { return c.last }

// Swallowed returns the total number of particles lost to contention.
func (c *Collector) Swallowed() int { return c.swallowed }

// Summary summarizes the observed step durations.
func (c *Collector) Summary() PerfSummary { return Summarize(c.durations) }
