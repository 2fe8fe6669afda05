package sandbox

import (
	"context"
	"errors"
	"slices"
	"testing"

	"fallsand/internal/core"
	"fallsand/internal/scenario"
	"fallsand/pkg/sand"
)

func TestRegistered(t *testing.T) {
	factory, ok := core.Sims()["sand"]
	if !ok {
		t.Fatal("sand sim not registered")
	}
	sim, err := factory(map[string]string{"w": "40", "h": "30", "workers": "2"})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if sim.Name() != "sand" || sim.Size() != (core.Size{W: 40, H: 30}) {
		t.Fatalf("sim %s %+v", sim.Name(), sim.Size())
	}
	if len(sim.Cells()) != 40*30 {
		t.Fatalf("cells len = %d", len(sim.Cells()))
	}
}

func TestFromMapIgnoresMalformedValues(t *testing.T) {
	c := FromMap(map[string]string{"w": "-3", "h": "abc", "policy": "random", "workers": "4", "seed": "9"})
	if c.Width != 0 || c.Height != 0 || c.Policy != "" {
		t.Fatalf("malformed values applied: %+v", c)
	}
	if c.Workers != 4 || c.Seed != 9 {
		t.Fatalf("valid values dropped: %+v", c)
	}
}

func layoutWorld(t *testing.T, layout string) *World {
	t.Helper()
	scn, err := scenario.Parse([]byte("name: test\nlayout: |\n" + layout))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w, err := NewFromScenario(scn, Config{Workers: 2})
	if err != nil {
		t.Fatalf("NewFromScenario: %v", err)
	}
	return w
}

func TestStepUpdatesDisplay(t *testing.T) {
	w := layoutWorld(t, "  S\n  .\n")
	want := []uint8{uint8(sand.Sand), uint8(sand.Empty)}
	if !slices.Equal(w.Cells(), want) {
		t.Fatalf("initial cells = %v", w.Cells())
	}
	if err := w.Step(context.Background()); err != nil {
		t.Fatal(err)
	}
	want = []uint8{uint8(sand.Empty), uint8(sand.Sand)}
	if !slices.Equal(w.Cells(), want) {
		t.Fatalf("cells after step = %v", w.Cells())
	}
	if w.LastStats().Down != 1 || w.LastStats().Step != 1 {
		t.Fatalf("stats = %+v", w.LastStats())
	}
}

func TestLayoutCannotBeResized(t *testing.T) {
	scn, err := scenario.Parse([]byte("layout: |\n  ..\n  ##\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewFromScenario(scn, Config{Width: 10}); !errors.Is(err, sand.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestPaintAndReset(t *testing.T) {
	w := layoutWorld(t, "  .....\n  .....\n  .....\n  .....\n  .....\n")
	n, err := w.Paint(2, 2, 1, sand.Water)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Fatalf("radius-1 brush changed %d cells, want 5", n)
	}
	if again, _ := w.Paint(2, 2, 1, sand.Water); again != 0 {
		t.Fatalf("repainting changed %d cells", again)
	}
	// Brush partly outside the grid is clipped.
	if n, _ := w.Paint(0, 0, 1, sand.Stone); n != 3 {
		t.Fatalf("corner brush changed %d cells, want 3", n)
	}
	if w.Spawned() != 8 || w.Grid().Count(sand.Water) != 5 {
		t.Fatalf("spawned=%d water=%d", w.Spawned(), w.Grid().Count(sand.Water))
	}
	if w.Cells()[w.Grid().Index(2, 2)] != uint8(sand.Water) {
		t.Fatal("display not refreshed after painting")
	}

	if err := w.Reset(0); err != nil {
		t.Fatal(err)
	}
	if w.Grid().Count(sand.Empty) != 25 || w.Spawned() != 0 || w.Dispatcher().Steps() != 0 {
		t.Fatal("reset did not restore the scenario")
	}
}

func TestPolicyOverride(t *testing.T) {
	scn, _ := scenario.Default()
	w, err := NewFromScenario(scn, Config{Width: 20, Height: 20, Policy: "overwrite", BandRows: 3})
	if err != nil {
		t.Fatal(err)
	}
	opts := w.Dispatcher().Options()
	if opts.Policy != sand.PolicyOverwrite || opts.BandRows != 3 {
		t.Fatalf("options = %+v", opts)
	}
	if scn.Width == 20 {
		t.Fatal("overrides leaked into the source scenario")
	}
}
