package app

// MaxBrush bounds the brush radius.
const MaxBrush = 16

// CellAt maps a cursor position in screen pixels to grid coordinates. Screen
// rows grow downward while grid rows grow upward from the floor.
func CellAt(px, py, scale, w, h int) (x, y int, ok bool) {
	if scale <= 0 || px < 0 || py < 0 {
		return 0, 0, false
	}
	x = px / scale
	y = h - 1 - py/scale
	if x >= w || y < 0 {
		return 0, 0, false
	}
	return x, y, true
}

// ClampBrush keeps a radius within [0, MaxBrush].
func ClampBrush(r int) int {
	switch {
	case r < 0:
		return 0
	case r > MaxBrush:
		return MaxBrush
	}
	return r
}
