package canon

import (
	"testing"

	"github.com/elevont/turtlefmt/pkg/rdf"
)

func mustDocument(t *testing.T, triples []rdf.Triple) *rdf.Document {
	t.Helper()
	doc, err := rdf.NewDocument("", nil, triples)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return doc
}

func TestCanonicalizeIsDeterministic(t *testing.T) {
	triples := []rdf.Triple{
		rdf.NewTriple(rdf.NewNamedNode("http://ex/s1"), rdf.NewNamedNode("http://ex/p"), rdf.NewBlankNode("z9")),
		rdf.NewTriple(rdf.NewBlankNode("z9"), rdf.NewNamedNode("http://ex/q"), rdf.NewLiteral("1")),
	}
	doc := mustDocument(t, triples)

	first, err := Canonicalize(doc)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	second, err := Canonicalize(doc)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	if first.Triples()[0].String() != second.Triples()[0].String() {
		t.Errorf("expected repeated canonicalization to assign the same label, got %q vs %q",
			first.Triples()[0].String(), second.Triples()[0].String())
	}
}

func TestCanonicalizeIsStableUnderInputRelabelling(t *testing.T) {
	docA := mustDocument(t, []rdf.Triple{
		rdf.NewTriple(rdf.NewNamedNode("http://ex/s"), rdf.NewNamedNode("http://ex/p"), rdf.NewBlankNode("a")),
		rdf.NewTriple(rdf.NewBlankNode("a"), rdf.NewNamedNode("http://ex/q"), rdf.NewLiteral("1")),
	})
	docB := mustDocument(t, []rdf.Triple{
		rdf.NewTriple(rdf.NewNamedNode("http://ex/s"), rdf.NewNamedNode("http://ex/p"), rdf.NewBlankNode("xyz")),
		rdf.NewTriple(rdf.NewBlankNode("xyz"), rdf.NewNamedNode("http://ex/q"), rdf.NewLiteral("1")),
	})

	canonA, err := Canonicalize(docA)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	canonB, err := Canonicalize(docB)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	if canonA.Triples()[0].Object.String() != canonB.Triples()[0].Object.String() {
		t.Errorf("expected the same graph shape to canonicalize to the same label regardless of input labels, got %q vs %q",
			canonA.Triples()[0].Object, canonB.Triples()[0].Object)
	}
}

func TestCanonicalizeIsNoopWithoutBlankNodes(t *testing.T) {
	doc := mustDocument(t, []rdf.Triple{
		rdf.NewTriple(rdf.NewNamedNode("http://ex/s"), rdf.NewNamedNode("http://ex/p"), rdf.NewLiteral("v")),
	})
	out, err := Canonicalize(doc)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	if len(out.Triples()) != 1 {
		t.Errorf("expected canonicalization to preserve triple count, got %d", len(out.Triples()))
	}
}
