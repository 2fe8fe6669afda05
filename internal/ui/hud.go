//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"fallsand/pkg/sand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the status panel to the right of the simulation view.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int
	status     Status

	tools        []toolState
	palette      []color.RGBA
	panelOffsetX int

	pixel *ebiten.Image
}

type toolState struct {
	tool Tool
	rect image.Rectangle
}

// NewHUD constructs a HUD of the given panel width. Tool buttons are tinted
// with palette.
func NewHUD(width int, palette []color.RGBA) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{width: width, palette: palette}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	for _, t := range Tools() {
		h.tools = append(h.tools, toolState{tool: t})
	}
	h.layoutTools()
	return h
}

// Width reports the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update stores the status to draw and reports a brush picked by clicking a
// tool button.
func (h *HUD) Update(panelOffsetX int, st Status) (sand.Kind, bool) {
	if h == nil {
		return 0, false
	}
	h.panelOffsetX = panelOffsetX
	h.status = st
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return 0, false
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return 0, false
	}
	px := mx - h.panelOffsetX
	for _, ts := range h.tools {
		if pointInRect(px, my, ts.rect) {
			return ts.tool.Kind, true
		}
	}
	return 0, false
}

// Draw paints the panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	for _, line := range h.status.Lines() {
		if line != "" {
			text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		}
		y += textLine
	}
	for _, ts := range h.tools {
		h.drawButton(ts, ts.tool.Kind == h.status.Brush)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(ts toolState, selected bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	if int(ts.tool.Kind) < len(h.palette) {
		bg = h.palette[ts.tool.Kind]
	}
	fg := color.RGBA{R: 20, G: 20, B: 24, A: 255}
	if ts.tool.Kind == sand.Empty {
		fg = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	}
	rect := ts.rect
	if selected {
		h.fillRect(rect.Inset(-2), color.RGBA{R: 240, G: 240, B: 250, A: 255})
	}
	h.fillRect(rect, bg)

	face := basicfont.Face7x13
	label := ts.tool.Key + " " + ts.tool.Label
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) fillRect(rect image.Rectangle, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) layoutTools() {
	if h.width <= 0 {
		return
	}
	top := panelPadding + headerBaseline + textLine*(len(Status{}.Lines())) + panelPadding
	for i := range h.tools {
		y := top + i*(buttonSize+buttonGap)
		h.tools[i].rect = image.Rect(panelPadding, y, h.width-panelPadding, y+buttonSize)
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	textLine       = 16
	buttonSize     = 24
	buttonGap      = 8
	headerBaseline = 14
)
