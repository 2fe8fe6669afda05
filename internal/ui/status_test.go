package ui

import (
	"strings"
	"testing"
	"time"

	"fallsand/pkg/sand"
)

func TestStatusLines(t *testing.T) {
	var census [sand.NumKinds]int
	census[sand.Sand] = 12
	census[sand.Stone] = 3
	s := Status{
		Name:   "sand",
		Paused: true,
		Brush:  sand.Empty,
		Radius: 2,
		Policy: sand.PolicyOverwrite,
		Steps:  9,
		Stats:  sand.StepStats{Down: 2, Lateral: 1, Contended: 4, Swallowed: 1, Duration: 1500 * time.Microsecond},
		Census: census,
	}
	joined := strings.Join(s.Lines(), "\n")
	for _, want := range []string{"sand (paused)", "step    9", "policy  overwrite", "brush   erase r=2", "moved   3", "blocked 4", "lost    1", "sand    12", "stone   3"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("status missing %q:\n%s", want, joined)
		}
	}
	if strings.Contains(joined, "empty") {
		t.Fatalf("empty kind should not be listed:\n%s", joined)
	}
}

func TestToolsUniqueKeys(t *testing.T) {
	seen := map[string]bool{}
	kinds := map[sand.Kind]bool{}
	for _, tool := range Tools() {
		if seen[tool.Key] || kinds[tool.Kind] {
			t.Fatalf("duplicate tool %+v", tool)
		}
		seen[tool.Key] = true
		kinds[tool.Kind] = true
	}
	if len(kinds) != sand.NumKinds {
		t.Fatalf("tools cover %d kinds, want %d", len(kinds), sand.NumKinds)
	}
}
