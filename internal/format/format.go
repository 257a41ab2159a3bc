package format

import "github.com/elevont/turtlefmt/pkg/rdf"

// Format renders doc as canonical Turtle text under opts. It is a pure
// function of its two arguments: the same (doc, opts) pair always
// produces byte-identical output (spec.md §5, §9).
func Format(doc *rdf.Document, opts Options) (string, error) {
	e := newEmitter(doc, opts)
	return e.Emit(), nil
}
