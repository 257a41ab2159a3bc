// Package format implements the Turtle pretty-printing engine: reference
// analysis, collection detection, deterministic sorting, literal
// normalization, and text emission (spec.md §4). It is a pure function of
// a frozen rdf.Document and an Options value — no global state, no I/O.
package format

// Options is the frozen configuration threaded by value through every
// pipeline stage (spec.md §9). Constructed once per run; never mutated.
//
// Field names and defaults are grounded on the original Rust
// options.rs::FormatOptions.
type Options struct {
	// Indentation is the whitespace unit used per nesting level. Default
	// two spaces.
	Indentation string
	// LabelAllBlankNodes forces every blank node to be emitted as a
	// labelled top-level subject (`_:b1`) rather than nested inline,
	// even when it would otherwise qualify as nestable.
	LabelAllBlankNodes bool
	// PrtrSorting enables prtr:sortingId-based ordering of blank-node
	// subject groups (spec.md §4.3); when false, blank nodes fall back to
	// their structural key.
	PrtrSorting bool
	// SparqlSyntax selects `BASE`/`PREFIX` (no trailing '.') over
	// `@base`/`@prefix` in the prologue.
	SparqlSyntax bool
	// SingleLeafedNewLines forces every predicate, object and nested `[`
	// onto its own line unconditionally, disabling the "single-leafed"
	// inlining optimization of spec.md §4.5 (CLI: -n/--single-leafed-new-lines).
	SingleLeafedNewLines bool
	// PredicateOrder is a priority list of predicate IRIs; predicates
	// named here sort before any predicate not named here, in list order.
	PredicateOrder []string
	// SubjectTypeOrder is a priority list of rdf:type object IRIs used to
	// group top-level subjects by their declared type before falling back
	// to term-order sorting.
	SubjectTypeOrder []string
}

// DefaultOptions returns the engine's defaults, matching the original
// Rust FormatOptions::default().
func DefaultOptions() Options {
	return Options{
		Indentation: "  ",
		PrtrSorting: true,
	}
}
