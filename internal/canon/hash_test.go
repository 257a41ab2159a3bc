package canon

import (
	"testing"

	"github.com/elevont/turtlefmt/pkg/rdf"
)

func TestHash128Deterministic(t *testing.T) {
	a := Hash128Hex("hello")
	b := Hash128Hex("hello")
	if a != b {
		t.Errorf("Hash128Hex not deterministic: %q != %q", a, b)
	}
	c := Hash128Hex("world")
	if a == c {
		t.Errorf("expected different inputs to hash differently")
	}
}

func TestTermIgnoresBlankNodeLabel(t *testing.T) {
	a := Term(rdf.NewBlankNode("b1"))
	b := Term(rdf.NewBlankNode("b2"))
	if a != b {
		t.Errorf("expected structural term rendering to ignore blank node labels, got %q vs %q", a, b)
	}
}

func TestStructuralKeyDistinguishesShape(t *testing.T) {
	byS := map[string][]rdf.Triple{
		"a": {rdf.NewTriple(rdf.NewBlankNode("a"), rdf.NewNamedNode("http://ex/p"), rdf.NewLiteral("1"))},
		"b": {
			rdf.NewTriple(rdf.NewBlankNode("b"), rdf.NewNamedNode("http://ex/p"), rdf.NewLiteral("1")),
			rdf.NewTriple(rdf.NewBlankNode("b"), rdf.NewNamedNode("http://ex/q"), rdf.NewLiteral("2")),
		},
	}
	ka := StructuralKey(byS, rdf.NewBlankNode("a"), 1)
	kb := StructuralKey(byS, rdf.NewBlankNode("b"), 1)
	if ka == kb {
		t.Error("expected structurally different blank nodes to hash differently")
	}
}

func TestStructuralKeyStableUnderRelabelling(t *testing.T) {
	byS1 := map[string][]rdf.Triple{
		"x": {rdf.NewTriple(rdf.NewBlankNode("x"), rdf.NewNamedNode("http://ex/p"), rdf.NewLiteral("1"))},
	}
	byS2 := map[string][]rdf.Triple{
		"y": {rdf.NewTriple(rdf.NewBlankNode("y"), rdf.NewNamedNode("http://ex/p"), rdf.NewLiteral("1"))},
	}
	kx := StructuralKey(byS1, rdf.NewBlankNode("x"), 1)
	ky := StructuralKey(byS2, rdf.NewBlankNode("y"), 1)
	if kx != ky {
		t.Errorf("expected structural key to be stable across relabelling, got %q vs %q", kx, ky)
	}
}
