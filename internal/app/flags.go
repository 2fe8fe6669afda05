package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim      string
	Scenario string
	Scale    int
	TPS      int
	Seed     int64
	Workers  int
	Policy   string
	Brush    int
	Panel    int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "sand", Scale: 4, TPS: 60, Seed: 1337, Brush: 3, Panel: 180}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "scenario YAML file (empty uses the built-in shelf)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Workers, "workers", c.Workers, "step workers (0 uses GOMAXPROCS)")
	fs.StringVar(&c.Policy, "policy", c.Policy, "conflict policy: claim or overwrite")
	fs.IntVar(&c.Brush, "brush", c.Brush, "brush radius in cells")
	fs.IntVar(&c.Panel, "panel", c.Panel, "status panel width in pixels (0 hides it)")
}

// SimConfig returns the factory parameters derived from the flags. Unset
// values are omitted so the scenario keeps its own.
func (c *Config) SimConfig() map[string]string {
	m := map[string]string{"seed": strconv.FormatInt(c.Seed, 10)}
	if c.Scenario != "" {
		m["scenario"] = c.Scenario
	}
	if c.Workers > 0 {
		m["workers"] = strconv.Itoa(c.Workers)
	}
	if c.Policy != "" {
		m["policy"] = c.Policy
	}
	return m
}
