//go:build !ebiten

package ui

import (
	"image/color"

	"fallsand/pkg/sand"
)

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(int, []color.RGBA) *HUD { return nil }

// Width is zero in the headless build.
func (h *HUD) Width() int { return 0 }

// Update is a no-op in the headless build.
func (h *HUD) Update(int, Status) (sand.Kind, bool) { return 0, false }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
