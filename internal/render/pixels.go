package render

import (
	"image/color"

	"fallsand/pkg/sand"
)

// Background is drawn for Empty cells.
var Background = color.RGBA{R: 30, G: 30, B: 46, A: 255}

var kindPalette = buildKindPalette()

// Palette returns the colour for each kind code.
func Palette() []color.RGBA {
	return kindPalette
}

func buildKindPalette() []color.RGBA {
	palette := make([]color.RGBA, sand.NumKinds)
	for _, k := range sand.Kinds() {
		palette[k] = kindColor(k)
	}
	return palette
}

func kindColor(k sand.Kind) color.RGBA {
	switch k {
	case sand.Sand:
		return color.RGBA{R: 249, G: 226, B: 175, A: 255}
	case sand.Water:
		return color.RGBA{R: 100, G: 149, B: 237, A: 255}
	case sand.Stone:
		return color.RGBA{R: 169, G: 169, B: 169, A: 255}
	default:
		return Background
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Codes past
// the end of the palette use its last entry.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
