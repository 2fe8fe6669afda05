package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.IntN(1000) != b.IntN(1000) {
			t.Fatalf("draw %d differs for equal seeds", i)
		}
	}
}

func TestChanceBounds(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 50; i++ {
		if r.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
		if !r.Chance(1) {
			t.Fatal("Chance(1) returned false")
		}
	}
	if got := r.IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d", got)
	}
	if got := Pick(r, []string(nil)); got != "" {
		t.Fatalf("Pick(nil) = %q", got)
	}
}
