package rdf

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors surfaced during document construction (spec.md §7).
var (
	ErrDuplicatePrefix    = errors.New("rdf: prefix label declared more than once")
	ErrNamespaceCollision = errors.New("rdf: two prefixes share the same namespace")
	ErrBaseCollision      = errors.New("rdf: base IRI shares a namespace with a declared prefix")
)

// Document is the frozen result of parsing (or otherwise constructing) a
// Turtle graph: a base IRI, a prefix map, and a triple set. It is built
// once via NewDocument and never mutated afterward — every downstream
// stage of the formatting pipeline treats it as read-only (spec.md §3, §5).
type Document struct {
	base     string
	prefixes map[string]string // prefix label -> namespace IRI
	triples  []Triple
}

// PrefixBinding is a single `@prefix label: <namespace>` declaration as
// encountered in source order. NewDocument takes a slice of these rather
// than a map so that the same label appearing twice — even bound to the
// same namespace both times — is visible to validation instead of being
// silently collapsed by map-key uniqueness before it ever reaches here.
type PrefixBinding struct {
	Label     string
	Namespace string
}

// NewDocument validates and freezes a Document. It rejects:
//   - the same prefix label declared more than once,
//   - two different prefix labels bound to the same namespace,
//   - a base IRI equal to a declared prefix's namespace.
func NewDocument(base string, prefixes []PrefixBinding, triples []Triple) (*Document, error) {
	seenNamespace := make(map[string]string, len(prefixes))
	frozenPrefixes := make(map[string]string, len(prefixes))
	for _, b := range prefixes {
		if other, ok := frozenPrefixes[b.Label]; ok {
			return nil, fmt.Errorf("%w: %q already bound to %q, cannot rebind to %q", ErrDuplicatePrefix, b.Label, other, b.Namespace)
		}
		if otherLabel, ok := seenNamespace[b.Namespace]; ok && otherLabel != b.Label {
			return nil, fmt.Errorf("%w: %q namespace used by both %q and %q", ErrNamespaceCollision, b.Namespace, otherLabel, b.Label)
		}
		frozenPrefixes[b.Label] = b.Namespace
		seenNamespace[b.Namespace] = b.Label
	}
	if base != "" {
		if label, ok := seenNamespace[base]; ok {
			return nil, fmt.Errorf("%w: base %q also bound to prefix %q", ErrBaseCollision, base, label)
		}
	}

	frozenTriples := make([]Triple, len(triples))
	copy(frozenTriples, triples)

	return &Document{base: base, prefixes: frozenPrefixes, triples: frozenTriples}, nil
}

// Base returns the document's base IRI, or "" if none was declared.
func (d *Document) Base() string { return d.base }

// Prefixes returns a copy of the prefix map (label -> namespace).
func (d *Document) Prefixes() map[string]string {
	cp := make(map[string]string, len(d.prefixes))
	for k, v := range d.prefixes {
		cp[k] = v
	}
	return cp
}

// SortedPrefixLabels returns the document's prefix labels in lexical
// order, for deterministic prologue emission.
func (d *Document) SortedPrefixLabels() []string {
	labels := make([]string, 0, len(d.prefixes))
	for l := range d.prefixes {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Triples returns the document's triples in ingestion order. Callers must
// not mutate the returned slice's backing array in place; the pipeline
// stages copy what they reorder.
func (d *Document) Triples() []Triple { return d.triples }

// NamespaceOf resolves the namespace IRI bound to a prefix label, or
// reports found=false when the label is undeclared.
func (d *Document) NamespaceOf(label string) (namespace string, found bool) {
	namespace, found = d.prefixes[label]
	return
}
