package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"fallsand/pkg/sand"
)

func TestDefaultScenarioBuilds(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	g, err := s.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.Width() != s.Width || g.Height() != s.Height {
		t.Fatalf("grid %dx%d, scenario %dx%d", g.Width(), g.Height(), s.Width, s.Height)
	}
	c := g.Census()
	if c[sand.Stone] == 0 || c[sand.Sand] == 0 || c[sand.Water] == 0 {
		t.Fatalf("default scenario missing kinds: %v", c)
	}
	for x := 0; x < g.Width(); x++ {
		if g.At(x, 0) != sand.Stone {
			t.Fatalf("floor missing at x=%d", x)
		}
	}
}

func TestBuildDeterministicPerSeed(t *testing.T) {
	s, _ := Default()
	a, _ := s.Build()
	b, _ := s.Build()
	if !slices.Equal(a.Snapshot(), b.Snapshot()) {
		t.Fatal("same seed produced different grids")
	}
	s.Seed++
	c, _ := s.Build()
	if slices.Equal(a.Snapshot(), c.Snapshot()) {
		t.Fatal("different seeds produced identical sprinkles")
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	s, err := Parse([]byte(`
name: pit
width: 8
height: 6
policy: overwrite
layers:
  - kind: stone
    rect: {x: 0, y: 0, w: 100, h: 1}
  - kind: water
    rect: {x: 2, y: 3, w: 2, h: 2}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Seed != 1337 || s.BandRows != 8 {
		t.Fatalf("defaults not inherited: seed=%d band_rows=%d", s.Seed, s.BandRows)
	}
	opts, err := s.Options()
	if err != nil || opts.Policy != sand.PolicyOverwrite {
		t.Fatalf("Options = %+v, %v", opts, err)
	}
	g, err := s.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	c := g.Census()
	if c[sand.Stone] != 8 || c[sand.Water] != 4 || c[sand.Sand] != 0 {
		t.Fatalf("census = %v", c)
	}
	if g.At(2, 4) != sand.Water || g.At(3, 3) != sand.Water {
		t.Fatal("water rectangle misplaced")
	}
}

func TestLayoutDefinesSize(t *testing.T) {
	s, err := Parse([]byte(`
name: cup
layout: |
  ..S..
  #.~.#
  #####
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Width != 5 || s.Height != 3 {
		t.Fatalf("size %dx%d, want 5x3", s.Width, s.Height)
	}
	g, err := s.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := FormatASCII(g); got != "..S..\n#.~.#\n#####\n" {
		t.Fatalf("FormatASCII = %q", got)
	}
	if g.At(2, 2) != sand.Sand || g.At(2, 1) != sand.Water {
		t.Fatal("layout rows not mapped with y=0 at the bottom")
	}
}

func TestLayoutSizeConflict(t *testing.T) {
	_, err := Parse([]byte("width: 4\nlayout: |\n  ...\n  ###\n"))
	if !errors.Is(err, sand.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestValidateRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"size":    "width: 0\n",
		"policy":  "policy: random\n",
		"kind":    "layers:\n  - kind: lava\n",
		"density": "layers:\n  - kind: sand\n    density: 2\n",
		"fill":    "fill: mud\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParseASCIIErrors(t *testing.T) {
	if _, _, _, err := ParseASCII("..\n..."); !errors.Is(err, sand.ErrDimensionMismatch) {
		t.Fatalf("ragged rows: %v", err)
	}
	if _, _, _, err := ParseASCII(".?"); !errors.Is(err, sand.ErrUnknownKind) {
		t.Fatalf("bad glyph: %v", err)
	}
	if _, _, _, err := ParseASCII("\n\n"); !errors.Is(err, sand.ErrInvalidDimensions) {
		t.Fatalf("empty layout: %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	s, _ := Default()
	s.Name = "saved"
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := s.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "name: saved") {
		t.Fatalf("unexpected YAML:\n%s", data)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "saved" || len(loaded.Layers) != len(s.Layers) {
		t.Fatalf("loaded %+v", loaded)
	}
}
