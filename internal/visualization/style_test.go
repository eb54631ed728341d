package visualization

import "testing"

func TestBlues(t *testing.T) {
	if got := Blues(1); got != "#08306b" {
		t.Errorf("Blues(1) = %s, want #08306b", got)
	}
	if got := Blues(2); got != "#08306b" {
		t.Errorf("Blues(2) = %s, want clamp to #08306b", got)
	}
	if Blues(0) == Blues(1) {
		t.Error("ramp ends should differ")
	}
	if Blues(-1) != Blues(0) {
		t.Error("negative input should clamp to 0")
	}
}

func TestNormalizeAndWidth(t *testing.T) {
	if got := Normalize(5, 5, 5); got != 1 {
		t.Errorf("degenerate range = %f, want 1", got)
	}
	if got := Normalize(3, 1, 5); got != 0.5 {
		t.Errorf("Normalize(3,1,5) = %f, want 0.5", got)
	}
	if EdgeWidth(0) != 1 || EdgeWidth(1) != 8 {
		t.Errorf("EdgeWidth range = %f..%f, want 1..8", EdgeWidth(0), EdgeWidth(1))
	}
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"bond":       "Bond",
		"well-known": "Well-Known",
		"café":       "Café",
	}
	for in, want := range tests {
		if got := Label(in); got != want {
			t.Errorf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStyle_ColorFor(t *testing.T) {
	s := DefaultStyle()
	if s.ColorFor(9) != "#478778" || s.ColorFor(10) != "#6a0dad" {
		t.Errorf("ColorFor threshold wrong: 9=%s 10=%s", s.ColorFor(9), s.ColorFor(10))
	}
}
