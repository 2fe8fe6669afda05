package sandbox

import (
	"strconv"

	"fallsand/pkg/sand"
)

// Config controls how the sand simulation is built. Width, Height and Seed
// override the scenario when positive/non-zero.
type Config struct {
	Scenario string

	Width  int
	Height int
	Seed   int64

	Workers  int
	BandRows int
	Policy   string
}

// DefaultConfig returns the standard configuration: the embedded scenario with
// its own size, seed and dispatcher settings.
func DefaultConfig() Config {
	return Config{}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Malformed values are ignored, leaving the default in place.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["scenario"]; ok {
		c.Scenario = v
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["band_rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.BandRows = parsed
		}
	}
	if v, ok := cfg["policy"]; ok {
		if _, err := sand.ParsePolicy(v); err == nil {
			c.Policy = v
		}
	}
	return c
}
