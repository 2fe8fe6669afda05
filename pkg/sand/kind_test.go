package sand

import (
	"errors"
	"testing"
)

func TestKindClasses(t *testing.T) {
	cases := []struct {
		kind   Kind
		class  Class
		mobile bool
	}{
		{Empty, Static, false},
		{Sand, Granular, true},
		{Water, Fluid, true},
		{Stone, Static, false},
		{Kind(200), Static, false},
	}
	for _, tc := range cases {
		if got := tc.kind.Class(); got != tc.class {
			t.Errorf("%v.Class() = %v, want %v", tc.kind, got, tc.class)
		}
		if got := tc.kind.Mobile(); got != tc.mobile {
			t.Errorf("%v.Mobile() = %v, want %v", tc.kind, got, tc.mobile)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
		got, err = ParseKind(string(k.Glyph()))
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", string(k.Glyph()), got, err)
		}
	}
	if _, err := ParseKind("lava"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestKindDensity(t *testing.T) {
	if Stone.Density() <= Sand.Density() || Sand.Density() <= Water.Density() {
		t.Fatalf("unexpected density ordering stone=%v sand=%v water=%v", Stone.Density(), Sand.Density(), Water.Density())
	}
	if Empty.Density() != 0 {
		t.Fatalf("empty density = %v", Empty.Density())
	}
}
