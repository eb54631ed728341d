package layout

import (
	"reflect"
	"slices"
	"testing"

	"github.com/nvandessel/cooccur/internal/cooccur"
)

func sub(sentences ...[]string) *cooccur.Subgraph {
	return cooccur.Whole(cooccur.Build(slices.Values(sentences), cooccur.CountOnce))
}

func TestCompute_Trivial(t *testing.T) {
	if got := Compute(sub(), DefaultOptions()); len(got) != 0 {
		t.Errorf("empty subgraph: got %d positions", len(got))
	}

	got := Compute(sub([]string{"bond"}), DefaultOptions())
	if got["bond"] != (Point{X: 0.5, Y: 0.5}) {
		t.Errorf("single node = %v, want centre", got["bond"])
	}
}

func TestCompute_UnitSquareAndDeterministic(t *testing.T) {
	s := sub(
		[]string{"bond", "tatiana", "kerim"},
		[]string{"grant", "bond"},
		[]string{"klebb", "kronsteen"},
	)

	opts := Options{Iterations: 50, Seed: 7}
	a := Compute(s, opts)
	b := Compute(s, opts)

	if len(a) != s.NodeCount() {
		t.Fatalf("got %d positions, want %d", len(a), s.NodeCount())
	}
	for word, p := range a {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			t.Errorf("%s at %v outside unit square", word, p)
		}
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("layout differs between runs with the same seed")
	}
}
