package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fallsand/internal/scenario"
	"fallsand/pkg/sand"
)

func TestSummarize(t *testing.T) {
	var ds []time.Duration
	for i := 1; i <= 100; i++ {
		ds = append(ds, time.Duration(i)*time.Microsecond)
	}
	p := Summarize(ds)
	if p.Steps != 100 {
		t.Fatalf("Steps = %d", p.Steps)
	}
	if math.Abs(p.MeanUS-50.5) > 1e-9 {
		t.Fatalf("MeanUS = %v", p.MeanUS)
	}
	if p.P50US != 50 || p.P90US != 90 || p.MaxUS != 100 {
		t.Fatalf("quantiles p50=%v p90=%v max=%v", p.P50US, p.P90US, p.MaxUS)
	}
	if p.StdUS <= 0 {
		t.Fatalf("StdUS = %v", p.StdUS)
	}
}

func TestSummarizeDegenerate(t *testing.T) {
	if p := Summarize(nil); p.Steps != 0 {
		t.Fatalf("empty summary = %+v", p)
	}
	p := Summarize([]time.Duration{3 * time.Microsecond})
	if p.StdUS != 0 || p.MeanUS != 3 || p.MaxUS != 3 {
		t.Fatalf("single-sample summary = %+v", p)
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	var census [sand.NumKinds]int
	census[sand.Sand] = 7
	c.Observe(sand.StepStats{Step: 1, Down: 2, Swallowed: 1, Duration: time.Millisecond}, census)
	rec := c.Observe(sand.StepStats{Step: 2, Lateral: 3, Swallowed: 2, Duration: 2 * time.Millisecond}, census)
	if rec.Step != 2 || rec.Moved() != 3 || rec.Sand != 7 || rec.DurationUS != 2000 {
		t.Fatalf("record = %+v", rec)
	}
	if c.Swallowed() != 3 {
		t.Fatalf("Swallowed = %d", c.Swallowed())
	}
	if s := c.Summary(); s.Steps != 2 {
		t.Fatalf("summary = %+v", s)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	if err := om.WriteStep(StepRecord{}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	for i := uint64(1); i <= 3; i++ {
		if err := om.WriteStep(StepRecord{Step: i, Down: int(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteSummary(PerfSummary{Steps: 3}); err != nil {
		t.Fatal(err)
	}
	s, _ := scenario.Default()
	if err := om.WriteScenario(s); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "steps.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("steps.csv has %d lines:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "step,duration_us,visited,down") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	for _, name := range []string{"summary.csv", "scenario.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}
