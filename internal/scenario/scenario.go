// Package scenario loads initial grid contents and dispatcher settings from
// YAML files.
package scenario

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fallsand/pkg/core"
	"fallsand/pkg/sand"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Rect is a cell rectangle whose Y is its bottom row.
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Layer paints one kind over a rectangle (the whole grid when Rect is nil).
// Density is the fraction of covered cells that receive the kind; zero or one
// means every cell.
type Layer struct {
	Kind      string  `yaml:"kind"`
	Rect      *Rect   `yaml:"rect,omitempty"`
	Density   float64 `yaml:"density,omitempty"`
	OnlyEmpty bool    `yaml:"only_empty,omitempty"`
}

// Scenario describes a grid's size, initial contents and how it is stepped.
// Layers are applied in order after Fill; a non-empty Layout then replaces
// the whole grid.
type Scenario struct {
	Name     string  `yaml:"name"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Seed     int64   `yaml:"seed"`
	Workers  int     `yaml:"workers"`
	BandRows int     `yaml:"band_rows"`
	Policy   string  `yaml:"policy"`
	Fill     string  `yaml:"fill"`
	Layers   []Layer `yaml:"layers"`
	Layout   string  `yaml:"layout,omitempty"`
}

// Default returns the embedded default scenario.
func Default() (*Scenario, error) {
	return Parse(nil)
}

// Load reads a scenario file merged over the embedded defaults. An empty path
// yields the defaults.
func Load(path string) (*Scenario, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the embedded defaults. Fields absent from data keep
// their default values.
func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{}
	if err := yaml.Unmarshal(defaultsYAML, s); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parsing scenario: %w", err)
		}
		if err := s.sizeFromLayout(data); err != nil {
			return nil, err
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// sizeFromLayout lets a layout define the grid size. Explicit width or height
// keys must agree with it.
func (s *Scenario) sizeFromLayout(data []byte) error {
	if s.Layout == "" {
		return nil
	}
	w, h, _, err := ParseASCII(s.Layout)
	if err != nil {
		return fmt.Errorf("scenario %q layout: %w", s.Name, err)
	}
	var explicit struct {
		Width  *int `yaml:"width"`
		Height *int `yaml:"height"`
	}
	if err := yaml.Unmarshal(data, &explicit); err != nil {
		return fmt.Errorf("parsing scenario: %w", err)
	}
	if (explicit.Width != nil && *explicit.Width != w) || (explicit.Height != nil && *explicit.Height != h) {
		return fmt.Errorf("scenario %q layout is %dx%d, want %dx%d: %w",
			s.Name, w, h, s.Width, s.Height, sand.ErrDimensionMismatch)
	}
	s.Width, s.Height = w, h
	return nil
}

// Validate checks sizes, kind names and the policy name.
func (s *Scenario) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("scenario %q: %w: %dx%d", s.Name, sand.ErrInvalidDimensions, s.Width, s.Height)
	}
	if _, err := sand.ParsePolicy(s.Policy); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	if s.Fill != "" {
		if _, err := sand.ParseKind(s.Fill); err != nil {
			return fmt.Errorf("scenario %q fill: %w", s.Name, err)
		}
	}
	for i, l := range s.Layers {
		if _, err := sand.ParseKind(l.Kind); err != nil {
			return fmt.Errorf("scenario %q layer %d: %w", s.Name, i, err)
		}
		if l.Density < 0 || l.Density > 1 {
			return fmt.Errorf("scenario %q layer %d: density %v outside [0,1]", s.Name, i, l.Density)
		}
	}
	return nil
}

// Options returns dispatcher options for the scenario.
func (s *Scenario) Options() (sand.Options, error) {
	policy, err := sand.ParsePolicy(s.Policy)
	if err != nil {
		return sand.Options{}, err
	}
	return sand.Options{Workers: s.Workers, BandRows: s.BandRows, Policy: policy}, nil
}

// Build allocates a grid and paints the scenario into it.
func (s *Scenario) Build() (*sand.Grid, error) {
	g, err := sand.NewGrid(s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	if err := s.Paint(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Paint writes the scenario contents into an existing grid of matching size.
func (s *Scenario) Paint(g *sand.Grid) error {
	if g.Width() != s.Width || g.Height() != s.Height {
		return fmt.Errorf("scenario %q is %dx%d, grid is %dx%d: %w",
			s.Name, s.Width, s.Height, g.Width(), g.Height(), sand.ErrDimensionMismatch)
	}
	fill := sand.Empty
	if s.Fill != "" {
		k, err := sand.ParseKind(s.Fill)
		if err != nil {
			return err
		}
		fill = k
	}
	if err := g.Fill(fill); err != nil {
		return err
	}

	rng := core.NewRNG(s.Seed)
	for i, l := range s.Layers {
		if err := paintLayer(g, l, rng); err != nil {
			return fmt.Errorf("scenario %q layer %d: %w", s.Name, i, err)
		}
	}

	if s.Layout == "" {
		return nil
	}
	w, h, cells, err := ParseASCII(s.Layout)
	if err != nil {
		return fmt.Errorf("scenario %q layout: %w", s.Name, err)
	}
	if w != s.Width || h != s.Height {
		return fmt.Errorf("scenario %q layout is %dx%d, want %dx%d: %w",
			s.Name, w, h, s.Width, s.Height, sand.ErrDimensionMismatch)
	}
	return g.Load(cells)
}

func paintLayer(g *sand.Grid, l Layer, rng *core.RNG) error {
	k, err := sand.ParseKind(l.Kind)
	if err != nil {
		return err
	}
	r := Rect{W: g.Width(), H: g.Height()}
	if l.Rect != nil {
		r = *l.Rect
	}
	// Rectangles are clipped to the grid.
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.X+r.W, g.Width()), min(r.Y+r.H, g.Height())
	density := l.Density
	if density == 0 {
		density = 1
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if l.OnlyEmpty && g.At(x, y) != sand.Empty {
				continue
			}
			if !rng.Chance(density) {
				continue
			}
			if err := g.Set(x, y, k); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteYAML writes the scenario to a file.
func (s *Scenario) WriteYAML(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing scenario file: %w", err)
	}
	return nil
}
