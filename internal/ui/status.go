package ui

import (
	"fmt"
	"time"

	"fallsand/pkg/sand"
)

// Status is the per-frame state the HUD panel reports.
type Status struct {
	Name   string
	Paused bool
	Brush  sand.Kind
	Radius int
	Policy sand.Policy
	Steps  uint64
	Stats  sand.StepStats
	Census [sand.NumKinds]int
}

// Lines formats the status as the panel's text rows.
func (s Status) Lines() []string {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	brush := s.Brush.String()
	if s.Brush == sand.Empty {
		brush = "erase"
	}
	lines := []string{
		fmt.Sprintf("%s (%s)", s.Name, state),
		fmt.Sprintf("step    %d", s.Steps),
		fmt.Sprintf("policy  %s", s.Policy),
		fmt.Sprintf("brush   %s r=%d", brush, s.Radius),
		"",
		fmt.Sprintf("moved   %d", s.Stats.Moved()),
		fmt.Sprintf("blocked %d", s.Stats.Contended),
		fmt.Sprintf("lost    %d", s.Stats.Swallowed),
		fmt.Sprintf("took    %s", s.Stats.Duration.Round(time.Microsecond)),
		"",
	}
	for _, k := range sand.Kinds() {
		if k == sand.Empty {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-7s %d", k, s.Census[k]))
	}
	return lines
}

// Tool is a brush button on the panel.
type Tool struct {
	Key   string
	Label string
	Kind  sand.Kind
}

// Tools lists the brush buttons in panel order. Keys match the number row.
func Tools() []Tool {
	return []Tool{
		{Key: "1", Label: "sand", Kind: sand.Sand},
		{Key: "2", Label: "water", Kind: sand.Water},
		{Key: "3", Label: "stone", Kind: sand.Stone},
		{Key: "0", Label: "erase", Kind: sand.Empty},
	}
}
