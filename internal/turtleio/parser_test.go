package turtleio

import (
	"errors"
	"testing"

	"github.com/elevont/turtlefmt/pkg/rdf"
)

func TestParseBasicTriple(t *testing.T) {
	src := `@prefix ex: <http://example.org/> .
ex:s ex:p ex:o .`
	triples, base, prefixes, err := NewParser(src).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != "" {
		t.Errorf("base = %q, want empty", base)
	}
	if len(prefixes) != 1 || prefixes[0].Label != "ex" || prefixes[0].Namespace != "http://example.org/" {
		t.Errorf("prefixes = %v, want [{ex http://example.org/}]", prefixes)
	}
	if len(triples) != 1 {
		t.Fatalf("got %d triples, want 1", len(triples))
	}
	want := rdf.NewTriple(
		rdf.NewNamedNode("http://example.org/s"),
		rdf.NewNamedNode("http://example.org/p"),
		rdf.NewNamedNode("http://example.org/o"),
	)
	if !triples[0].Subject.Equal(want.Subject) || !triples[0].Predicate.Equal(want.Predicate) || !triples[0].Object.Equal(want.Object) {
		t.Errorf("got %v, want %v", triples[0], want)
	}
}

func TestParseAKeywordIsRDFType(t *testing.T) {
	src := `@prefix ex: <http://example.org/> .
ex:s a ex:Thing .`
	triples, _, _, err := NewParser(src).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !triples[0].Predicate.Equal(rdf.RDFType) {
		t.Errorf("predicate = %v, want rdf:type", triples[0].Predicate)
	}
}

func TestParsePredicateObjectListAndCommaList(t *testing.T) {
	src := `@prefix ex: <http://example.org/> .
ex:s ex:p ex:o1, ex:o2 ; ex:q ex:o3 .`
	triples, _, _, err := NewParser(src).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(triples) != 3 {
		t.Fatalf("got %d triples, want 3", len(triples))
	}
}

func TestParseBlankNodePropertyList(t *testing.T) {
	src := `@prefix ex: <http://example.org/> .
ex:s ex:p [ ex:q ex:r ] .`
	triples, _, _, err := NewParser(src).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(triples) != 2 {
		t.Fatalf("got %d triples, want 2", len(triples))
	}
	bn, ok := triples[0].Object.(*rdf.BlankNode)
	if !ok {
		t.Fatalf("object is %T, want *rdf.BlankNode", triples[0].Object)
	}
	if !triples[1].Subject.Equal(bn) {
		t.Errorf("nested triple subject %v does not match property list blank node %v", triples[1].Subject, bn)
	}
}

func TestParseEmptyCollection(t *testing.T) {
	src := `@prefix ex: <http://example.org/> .
ex:s ex:p () .`
	triples, _, _, err := NewParser(src).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(triples) != 1 {
		t.Fatalf("got %d triples, want 1", len(triples))
	}
	if !triples[0].Object.Equal(rdf.RDFNil) {
		t.Errorf("object = %v, want rdf:nil", triples[0].Object)
	}
}

func TestParseNonEmptyCollectionDesugarsToRDFList(t *testing.T) {
	src := `@prefix ex: <http://example.org/> .
ex:s ex:p ( ex:a ex:b ) .`
	triples, _, _, err := NewParser(src).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// One triple for `ex:s ex:p _:head`, then 2 rdf:first + 2 rdf:rest.
	if len(triples) != 5 {
		t.Fatalf("got %d triples, want 5: %v", len(triples), triples)
	}
	firstCount, restCount := 0, 0
	for _, tr := range triples {
		if tr.Predicate.Equal(rdf.RDFFirst) {
			firstCount++
		}
		if tr.Predicate.Equal(rdf.RDFRest) {
			restCount++
		}
	}
	if firstCount != 2 || restCount != 2 {
		t.Errorf("firstCount=%d restCount=%d, want 2 and 2", firstCount, restCount)
	}
}

func TestParseLiteralForms(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		lang   string
		dtIRI  string
		value  string
	}{
		{"plain", `ex:s ex:p "hello" .`, "", "", "hello"},
		{"lang tagged", `ex:s ex:p "hello"@en .`, "en", "", "hello"},
		{"integer", `ex:s ex:p 42 .`, "", rdf.XSDInteger.IRI, "42"},
		{"decimal", `ex:s ex:p 4.2 .`, "", rdf.XSDDecimal.IRI, "4.2"},
		{"double", `ex:s ex:p 4.2e1 .`, "", rdf.XSDDouble.IRI, "4.2e1"},
		{"boolean", `ex:s ex:p true .`, "", rdf.XSDBoolean.IRI, "true"},
		{"explicit datatype", `ex:s ex:p "1"^^ex:custom .`, "", "http://example.org/custom", "1"},
	}
	prefixHeader := "@prefix ex: <http://example.org/> .\n"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triples, _, _, err := NewParser(prefixHeader + tt.src).Parse()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			lit, ok := triples[0].Object.(*rdf.Literal)
			if !ok {
				t.Fatalf("object is %T, want *rdf.Literal", triples[0].Object)
			}
			if lit.Value != tt.value {
				t.Errorf("value = %q, want %q", lit.Value, tt.value)
			}
			if lit.Language != tt.lang {
				t.Errorf("language = %q, want %q", lit.Language, tt.lang)
			}
			gotDT := ""
			if lit.Datatype != nil {
				gotDT = lit.Datatype.IRI
			}
			if gotDT != tt.dtIRI {
				t.Errorf("datatype = %q, want %q", gotDT, tt.dtIRI)
			}
		})
	}
}

func TestParseTripleTerm(t *testing.T) {
	src := `@prefix ex: <http://example.org/> .
<< ex:s ex:p ex:o >> ex:certainty 0.9 .`
	triples, _, _, err := NewParser(src).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tt, ok := triples[0].Subject.(*rdf.TripleTerm)
	if !ok {
		t.Fatalf("subject is %T, want *rdf.TripleTerm", triples[0].Subject)
	}
	if !tt.Subject.Equal(rdf.NewNamedNode("http://example.org/s")) {
		t.Errorf("triple term subject = %v", tt.Subject)
	}
}

func TestParseUndefinedPrefixErrors(t *testing.T) {
	_, _, _, err := NewParser(`ex:s ex:p ex:o .`).Parse()
	if err == nil {
		t.Fatal("expected error for undefined prefix")
	}
}

func TestParseDuplicatePrefixIsFatal(t *testing.T) {
	src := `@prefix a: <http://example.org/u1> .
@prefix a: <http://example.org/u2> .
a:s a:p a:o .`
	_, _, _, err := NewParser(src).Parse()
	if err == nil {
		t.Fatal("expected error for re-bound prefix label")
	}
	if !errors.Is(err, rdf.ErrDuplicatePrefix) {
		t.Errorf("got %v, want error wrapping rdf.ErrDuplicatePrefix", err)
	}
}

func TestParseBaseRedefinitionIsFatal(t *testing.T) {
	src := `@base <http://example.org/one/> .
@base <http://example.org/two/> .
<s> <p> <o> .`
	_, _, _, err := NewParser(src).Parse()
	if err == nil {
		t.Fatal("expected error for redefined base IRI")
	}
}

func TestParseBaseRelativeIRI(t *testing.T) {
	src := "@base <http://example.org/base/> .\n<s> <p> <o> .\n"
	triples, base, _, err := NewParser(src).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != "http://example.org/base/" {
		t.Fatalf("base = %q", base)
	}
	want := "http://example.org/base/s"
	got := triples[0].Subject.(*rdf.NamedNode).IRI
	if got != want {
		t.Errorf("resolved subject IRI = %q, want %q", got, want)
	}
}
