package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/elevont/turtlefmt/pkg/rdf"
)

// Grammar checks for Turtle's native numeric short forms, grounded on
// original_source/src/decoders.rs::is_turtle_integer/decimal/double.
var (
	reTurtleInteger = regexp.MustCompile(`^[+-]?[0-9]+$`)
	reTurtleDecimal = regexp.MustCompile(`^[+-]?[0-9]*\.[0-9]+$`)
	reTurtleDouble  = regexp.MustCompile(`^[+-]?([0-9]+\.[0-9]*|\.[0-9]+|[0-9]+)[eE][+-]?[0-9]+$`)
)

// literalForm is the fully-rendered text for a single literal object,
// ready to be written by the emitter. formatDatatype renders a datatype
// IRI (letting the caller apply its own prefix compression) and is only
// invoked when no round-trip-safe native short form applies.
func literalForm(lit *rdf.Literal, formatDatatype func(*rdf.NamedNode) string) string {
	if lit.Language != "" {
		return quoteString(lit.Value) + "@" + lit.Language
	}

	if lit.Datatype == nil || lit.Datatype.IRI == rdf.XSDString.IRI {
		return quoteString(lit.Value)
	}

	switch lit.Datatype.IRI {
	case rdf.XSDBoolean.IRI:
		if lit.Value == "true" || lit.Value == "false" {
			return lit.Value
		}
	case rdf.XSDInteger.IRI:
		if reTurtleInteger.MatchString(lit.Value) {
			return lit.Value
		}
	case rdf.XSDDecimal.IRI:
		if reTurtleDecimal.MatchString(lit.Value) {
			return lit.Value
		}
	case rdf.XSDDouble.IRI:
		if reTurtleDouble.MatchString(lit.Value) {
			return lit.Value
		}
	}

	// No round-trip-safe short form: fall back to quoted value + ^^datatype.
	return quoteString(lit.Value) + "^^" + formatDatatype(lit.Datatype)
}

// quoteString picks between single-quoted and triple-quoted rendering
// (Turtle STRING_LITERAL_QUOTE vs STRING_LITERAL_LONG_QUOTE) based on
// whether the value contains a bare newline, and applies minimal escaping
// for the chosen form. Grounded on original_source/src/formatter.rs::fmt_string.
func quoteString(s string) string {
	if strings.Contains(s, "\n") {
		return `"""` + escapeTripleQuoted(s) + `"""`
	}
	return `"` + escapeQuoted(s) + `"`
}

// isControlEscapeTarget reports whether r must be escaped as a control
// character per spec.md §4.4: U+0000-U+001F and U+007F.
func isControlEscapeTarget(r rune) bool {
	return r <= 0x1F || r == 0x7F
}

func escapeQuoted(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if isControlEscapeTarget(r) {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// escapeTripleQuoted escapes backslashes and control characters (raw
// newlines excepted — they are preserved unescaped per spec.md §4.4),
// then breaks up every run of three or more consecutive `"` characters,
// wherever it occurs, by escaping every third quote. A naive trailing-run
// check misses an interior `"""` run, which would otherwise prematurely
// close the long-quoted string just as surely as a trailing one.
func escapeTripleQuoted(s string) string {
	var b strings.Builder
	quoteRun := 0
	for _, r := range s {
		switch {
		case r == '\\':
			quoteRun = 0
			b.WriteString(`\\`)
		case r == '"':
			quoteRun++
			if quoteRun >= 3 {
				b.WriteString(`\"`)
				quoteRun = 0
				continue
			}
			b.WriteRune(r)
		case r == '\n':
			quoteRun = 0
			b.WriteRune(r)
		case r == '\t':
			quoteRun = 0
			b.WriteString(`\t`)
		case r == '\r':
			quoteRun = 0
			b.WriteString(`\r`)
		case r == '\b':
			quoteRun = 0
			b.WriteString(`\b`)
		case r == '\f':
			quoteRun = 0
			b.WriteString(`\f`)
		case isControlEscapeTarget(r):
			quoteRun = 0
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			quoteRun = 0
			b.WriteRune(r)
		}
	}
	return b.String()
}
