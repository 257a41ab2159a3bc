package turtleio

import (
	"fmt"

	"github.com/elevont/turtlefmt/pkg/rdf"
)

// Load parses Turtle source text and freezes the result into an
// rdf.Document, running spec.md §7's document-consistency validation via
// rdf.NewDocument.
func Load(src string) (*rdf.Document, error) {
	triples, base, prefixBindings, err := NewParser(src).Parse()
	if err != nil {
		return nil, fmt.Errorf("turtleio: parse: %w", err)
	}
	doc, err := rdf.NewDocument(base, prefixBindings, triples)
	if err != nil {
		return nil, fmt.Errorf("turtleio: %w", err)
	}
	return doc, nil
}
