// Package canon computes canonical byte serializations and structural
// hashes of RDF terms, used by internal/format's sorter to give
// unlabelled ("anonymous") blank nodes a deterministic, content-derived
// ordering key (spec.md §4.3).
//
// Grounded on the teacher's pkg/rdf/canonical.go escaping routines and
// pkg/rdf/isomorphism.go's degree-based blank-node partitioning, with the
// N-Triples string builder replaced by zeebo/xxh3 hashing, mirroring
// internal/encoding/encoder.go's TermEncoder.Hash128 pattern.
package canon

import (
	"encoding/binary"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/elevont/turtlefmt/pkg/rdf"
)

// Hash128 computes a 128-bit xxh3 digest of s, returned as its 16 raw
// bytes in big-endian Hi:Lo order.
func Hash128(s string) [16]byte {
	h := xxh3.Hash128([]byte(s))
	var out [16]byte
	binary.BigEndian.PutUint64(out[0:8], h.Hi)
	binary.BigEndian.PutUint64(out[8:16], h.Lo)
	return out
}

// Hash128Hex is Hash128 rendered as a lowercase hex string, convenient as
// a sortable, comparable structural key.
func Hash128Hex(s string) string {
	h := Hash128(s)
	return hex.EncodeToString(h[:])
}

// Term renders a term into a canonical, escape-normalized string,
// suitable as hash input. It never looks at prefixes: every named node is
// rendered by its full IRI, so two documents with different prefix maps
// but the same underlying graph hash identically.
func Term(t rdf.Term) string {
	var b strings.Builder
	writeTerm(&b, t)
	return b.String()
}

func writeTerm(b *strings.Builder, t rdf.Term) {
	switch v := t.(type) {
	case *rdf.NamedNode:
		b.WriteByte('<')
		b.WriteString(escapeIRI(v.IRI))
		b.WriteByte('>')
	case *rdf.BlankNode:
		// Blank node labels are not stable across documents, so a
		// structural key must not depend on them; a placeholder keeps the
		// term slot present without leaking the label into the hash.
		b.WriteString("_:*")
	case *rdf.Literal:
		b.WriteByte('"')
		b.WriteString(escapeString(v.Value))
		b.WriteByte('"')
		switch {
		case v.Language != "":
			b.WriteByte('@')
			b.WriteString(v.Language)
		case v.Datatype != nil && v.Datatype.IRI != rdf.XSDString.IRI:
			b.WriteString("^^<")
			b.WriteString(escapeIRI(v.Datatype.IRI))
			b.WriteByte('>')
		}
	case *rdf.TripleTerm:
		b.WriteString("<<(")
		writeTerm(b, v.Subject)
		b.WriteByte(' ')
		writeTerm(b, v.Predicate)
		b.WriteByte(' ')
		writeTerm(b, v.Object)
		b.WriteString(")>>")
	default:
		b.WriteString(t.String())
	}
}

func escapeString(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\", "\"", "\\\"", "\t", "\\t", "\b", "\\b",
		"\n", "\\n", "\r", "\\r", "\f", "\\f",
	)
	return replacer.Replace(s)
}

func escapeIRI(s string) string { return s }

// StructuralKey computes a deterministic ordering key for a blank node
// based on the sorted canonical form of its outgoing triples, following
// the recursion depth given (0 = do not descend into blank-node objects,
// which is sufficient to break ties between structurally distinct nodes
// without risking infinite recursion through cycles).
func StructuralKey(triplesBySubject map[string][]rdf.Triple, node *rdf.BlankNode, depth int) string {
	return Hash128Hex(structuralString(triplesBySubject, node, depth, make(map[string]bool)))
}

func structuralString(triplesBySubject map[string][]rdf.Triple, node *rdf.BlankNode, depth int, visiting map[string]bool) string {
	if visiting[node.ID] {
		return "<cycle>"
	}
	visiting[node.ID] = true
	defer delete(visiting, node.ID)

	triples := triplesBySubject[node.ID]
	parts := make([]string, 0, len(triples))
	for _, tr := range triples {
		obj := Term(tr.Object)
		if depth > 0 {
			if childBN, ok := tr.Object.(*rdf.BlankNode); ok {
				obj = structuralString(triplesBySubject, childBN, depth-1, visiting)
			}
		}
		parts = append(parts, Term(tr.Predicate)+"="+obj)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}
