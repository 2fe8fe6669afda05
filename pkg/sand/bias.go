package sand

// Bias maps a cell coordinate to a reproducible value in [0, 1). It depends on
// nothing but x and y, so every worker computes the same value for a cell no
// matter when or where it is evaluated.
func Bias(x, y int) float64 {
	h := uint64(uint32(x)) | uint64(uint32(y))<<32
	// splitmix64 finalizer
	h += 0x9e3779b97f4a7c15
	h = (h ^ (h >> 30)) * 0xbf58476d1ce4e5b9
	h = (h ^ (h >> 27)) * 0x94d049bb133111eb
	h ^= h >> 31
	return float64(h>>11) / (1 << 53)
}

// preferredDir is +1 (try right first) when the bias is above one half and -1
// otherwise.
func preferredDir(x, y int) int {
	if Bias(x, y) > 0.5 {
		return 1
	}
	return -1
}
