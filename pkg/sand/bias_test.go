package sand

import "testing"

func TestBiasDeterministicAndInRange(t *testing.T) {
	for y := -4; y < 64; y++ {
		for x := -4; x < 64; x++ {
			a, b := Bias(x, y), Bias(x, y)
			if a != b {
				t.Fatalf("Bias(%d,%d) not deterministic: %v vs %v", x, y, a, b)
			}
			if a < 0 || a >= 1 {
				t.Fatalf("Bias(%d,%d) = %v outside [0,1)", x, y, a)
			}
		}
	}
}

func TestBiasRoughlyUniform(t *testing.T) {
	const n = 128
	above := 0
	sum := 0.0
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := Bias(x, y)
			sum += v
			if v > 0.5 {
				above++
			}
		}
	}
	frac := float64(above) / (n * n)
	if frac < 0.45 || frac > 0.55 {
		t.Fatalf("fraction above 0.5 = %.3f", frac)
	}
	if mean := sum / (n * n); mean < 0.45 || mean > 0.55 {
		t.Fatalf("mean bias = %.3f", mean)
	}
}
