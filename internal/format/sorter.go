package format

import (
	"sort"
	"strconv"
	"strings"

	"github.com/elevont/turtlefmt/pkg/rdf"

	"github.com/elevont/turtlefmt/internal/canon"
)

// termRank orders term *kinds* before falling back to a same-kind
// comparator, per spec.md §4.3: named nodes first, then triple terms,
// then literals, then collections, then anonymous (nestable) blank
// nodes, and finally labelled blank nodes. Telling a collection-head or
// nestable blank node apart from a labelled one needs the graph's
// reference counts, so this is a sortContext method rather than a bare
// function over term values.
func (ctx *sortContext) termRank(t rdf.Term) int {
	switch v := t.(type) {
	case *rdf.NamedNode:
		return 1
	case *rdf.TripleTerm:
		return 2
	case *rdf.Literal:
		return 3
	case *rdf.Collection:
		return 4
	case *rdf.BlankNode:
		if _, isHead := ctx.collectionHeads[v.ID]; isHead {
			return 4
		}
		if ctx.g.role(v.ID, ctx.opts) == roleNestable {
			return 5
		}
		return 6
	default:
		return 7
	}
}

// sortContext caches per-run state needed while comparing terms:
// prtr:sortingId lookups and the predicate/subject-type preset indices.
// Grounded on original_source/src/compare.rs::SortingContext.
type sortContext struct {
	g               *graph
	opts            Options
	sortingIDCache  map[string]*uint64
	predicateOrder  map[string]int
	subjectTypeRank map[string]int
	collectionHeads map[string][]rdf.Term
}

func newSortContext(g *graph, opts Options) *sortContext {
	ctx := &sortContext{
		g:               g,
		opts:            opts,
		sortingIDCache:  make(map[string]*uint64),
		predicateOrder:  make(map[string]int),
		subjectTypeRank: make(map[string]int),
	}
	// Entries may be absolute IRIs or prefixed names; a prefixed name is
	// expanded with the document's own prefix map.
	resolve := func(s string) string {
		if i := strings.IndexByte(s, ':'); i >= 0 && !strings.Contains(s, "://") {
			if ns, ok := g.doc.NamespaceOf(s[:i]); ok {
				return ns + s[i+1:]
			}
		}
		return s
	}
	for i, p := range opts.PredicateOrder {
		ctx.predicateOrder[resolve(p)] = i
	}
	for i, tIRI := range opts.SubjectTypeOrder {
		ctx.subjectTypeRank[resolve(tIRI)] = i
	}
	return ctx
}

// prtrSortingID returns the parsed prtr:sortingId of a blank node, caching
// the (possibly absent) result for the lifetime of the sort.
// Grounded on original_source/src/compare.rs::fetch_prtyr_sorting_id.
func (ctx *sortContext) prtrSortingID(id string) *uint64 {
	if v, ok := ctx.sortingIDCache[id]; ok {
		return v
	}
	var result *uint64
	for _, t := range ctx.g.triplesBySubj[id] {
		if !t.Predicate.Equal(rdf.PrtrSortID) {
			continue
		}
		lit, ok := t.Object.(*rdf.Literal)
		if !ok {
			continue
		}
		if n, err := strconv.ParseUint(lit.Value, 10, 64); err == nil {
			result = &n
		}
		break
	}
	ctx.sortingIDCache[id] = result
	return result
}

// compareTerms totally orders two terms for deterministic output
// (spec.md §4.3). Equal-kind terms defer to type-specific comparators;
// mismatched kinds fall back to termRank.
func (ctx *sortContext) compareTerms(a, b rdf.Term) int {
	ra, rb := ctx.termRank(a), ctx.termRank(b)
	if ra != rb {
		return ra - rb
	}
	switch av := a.(type) {
	case *rdf.NamedNode:
		return ctx.compareNamedNodes(av, b.(*rdf.NamedNode))
	case *rdf.BlankNode:
		return ctx.compareBlankNodes(av, b.(*rdf.BlankNode))
	case *rdf.Literal:
		return ctx.compareLiterals(av, b.(*rdf.Literal))
	case *rdf.TripleTerm:
		return ctx.compareTripleTerms(av, b.(*rdf.TripleTerm))
	case *rdf.Collection:
		return ctx.compareCollections(av, b.(*rdf.Collection))
	default:
		return 0
	}
}

// compareNamedNodes always sorts rdf:type first (compare.rs::named_nodes),
// then applies the named-node sub-rank spec.md §4.3 lists ahead of plain
// lexicographic order — empty-prefix-prefixed, then any other prefixed
// name, then an IRI resolvable against the declared base, then a plain
// absolute IRI — before falling back to comparing the full IRI text.
func (ctx *sortContext) compareNamedNodes(a, b *rdf.NamedNode) int {
	aIsType := a.IRI == rdf.RDFType.IRI
	bIsType := b.IRI == rdf.RDFType.IRI
	if aIsType != bIsType {
		if aIsType {
			return -1
		}
		return 1
	}
	if ra, rb := ctx.namedNodeSubRank(a), ctx.namedNodeSubRank(b); ra != rb {
		return ra - rb
	}
	return strings.Compare(a.IRI, b.IRI)
}

// namedNodeSubRank buckets a named node by the document's prefixes and
// base: an empty-prefix prefixed name (rank 0), any other prefixed name
// (rank 1), an IRI falling under the declared base (rank 2), or a plain
// absolute IRI with no applicable prefix or base (rank 3). The emitter
// writes rank 2 IRIs in full, not relative to the base.
func (ctx *sortContext) namedNodeSubRank(nn *rdf.NamedNode) int {
	bestLabel, bestNS := "", ""
	found := false
	for label, ns := range ctx.g.doc.Prefixes() {
		if !strings.HasPrefix(nn.IRI, ns) {
			continue
		}
		local := nn.IRI[len(ns):]
		if local == "" || !rePNLocalSimple.MatchString(local) {
			continue
		}
		if len(ns) > len(bestNS) {
			bestNS, bestLabel, found = ns, label, true
		}
	}
	if found {
		if bestLabel == "" {
			return 0
		}
		return 1
	}
	if base := ctx.g.doc.Base(); base != "" && strings.HasPrefix(nn.IRI, base) {
		return 2
	}
	return 3
}

// comparePredicates applies the configured predicate-order preset before
// falling back to compareNamedNodes, per spec.md §4.3's "configurable
// predicate-order presets".
func (ctx *sortContext) comparePredicates(a, b *rdf.NamedNode) int {
	ai, aok := ctx.predicateOrder[a.IRI]
	bi, bok := ctx.predicateOrder[b.IRI]
	switch {
	case aok && bok:
		return ai - bi
	case aok:
		return -1
	case bok:
		return 1
	default:
		return ctx.compareNamedNodes(a, b)
	}
}

// compareBlankNodes is only reached for two blank nodes already known (by
// termRank) to share the same tier: both collection heads, both
// anonymous/nestable, or both labelled. Collection heads compare
// element-by-element; anonymous nestable nodes compare by a structural
// key derived from their own triples (spec.md §4.3's "stable structural
// key"); labelled nodes compare by prtr:sortingId ascending — present
// sorting before absent, per compare.rs::blank_node_refs_with_prtyr —
// or, with PrtrSorting off, by structural key; either way falling back
// to their identifier.
func (ctx *sortContext) compareBlankNodes(a, b *rdf.BlankNode) int {
	if elemsA, aIsHead := ctx.collectionHeads[a.ID]; aIsHead {
		elemsB := ctx.collectionHeads[b.ID]
		return ctx.compareCollections(rdf.NewCollection(elemsA), rdf.NewCollection(elemsB))
	}
	if ctx.g.role(a.ID, ctx.opts) == roleNestable {
		ka := canon.StructuralKey(ctx.g.triplesBySubj, a, 2)
		kb := canon.StructuralKey(ctx.g.triplesBySubj, b, 2)
		return strings.Compare(ka, kb)
	}
	if ctx.opts.PrtrSorting {
		sa, sb := ctx.prtrSortingID(a.ID), ctx.prtrSortingID(b.ID)
		switch {
		case sa != nil && sb != nil:
			if *sa != *sb {
				if *sa < *sb {
					return -1
				}
				return 1
			}
		case sa != nil:
			return -1
		case sb != nil:
			return 1
		}
	} else {
		ka := canon.StructuralKey(ctx.g.triplesBySubj, a, 2)
		kb := canon.StructuralKey(ctx.g.triplesBySubj, b, 2)
		if c := strings.Compare(ka, kb); c != 0 {
			return c
		}
	}
	return strings.Compare(a.ID, b.ID)
}

// compareLiterals compares value, then whether a "nice" (non-string,
// non-langString) datatype is present, then the raw datatype, then
// language — grounded on compare.rs::literals.
func (ctx *sortContext) compareLiterals(a, b *rdf.Literal) int {
	if c := strings.Compare(a.Value, b.Value); c != 0 {
		return c
	}
	aNice, bNice := niceDatatype(a), niceDatatype(b)
	if aNice != bNice {
		if aNice != "" {
			return -1
		}
		return 1
	}
	if c := strings.Compare(aNice, bNice); c != 0 {
		return c
	}
	return strings.Compare(a.Language, b.Language)
}

func niceDatatype(l *rdf.Literal) string {
	if l.Datatype == nil {
		return ""
	}
	if l.Datatype.IRI == rdf.XSDString.IRI || l.Datatype.IRI == rdf.RDFLangStr.IRI {
		return ""
	}
	return l.Datatype.IRI
}

func (ctx *sortContext) compareTripleTerms(a, b *rdf.TripleTerm) int {
	if c := ctx.compareTerms(a.Subject, b.Subject); c != 0 {
		return c
	}
	if c := ctx.compareTerms(a.Predicate, b.Predicate); c != 0 {
		return c
	}
	return ctx.compareTerms(a.Object, b.Object)
}

// compareCollections compares element-by-element; the shorter list sorts
// first when it is a strict prefix of the longer one.
func (ctx *sortContext) compareCollections(a, b *rdf.Collection) int {
	for i := 0; i < len(a.Elements) && i < len(b.Elements); i++ {
		if c := ctx.compareTerms(a.Elements[i], b.Elements[i]); c != 0 {
			return c
		}
	}
	return len(a.Elements) - len(b.Elements)
}

// subjectTypeOf returns the first rdf:type object IRI for a subject, if
// any triple in the given set declares one, for SubjectTypeOrder grouping.
func subjectTypeOf(triples []rdf.Triple) (string, bool) {
	for _, t := range triples {
		if t.Predicate.Equal(rdf.RDFType) {
			if nn, ok := t.Object.(*rdf.NamedNode); ok {
				return nn.IRI, true
			}
		}
	}
	return "", false
}

// compareSubjects orders top-level subject groups: first by the
// SubjectTypeOrder preset, keyed on each subject's first rdf:type object
// (subjects whose first type is listed sort by its preset index, ahead of
// all others), then by ordinary term order. Further rdf:type triples of a
// subject are not consulted.
func (ctx *sortContext) compareSubjects(a, b rdf.Term, triplesA, triplesB []rdf.Triple) int {
	if len(ctx.subjectTypeRank) > 0 {
		ta, aok := subjectTypeOf(triplesA)
		tb, bok := subjectTypeOf(triplesB)
		ra, raok := ctx.subjectTypeRank[ta]
		rb, rbok := ctx.subjectTypeRank[tb]
		switch {
		case aok && raok && bok && rbok:
			if ra != rb {
				return ra - rb
			}
		case aok && raok:
			return -1
		case bok && rbok:
			return 1
		}
	}
	if c := ctx.compareTerms(a, b); c != 0 {
		return c
	}
	// Deterministic tie-break: two structurally-tied top-level subjects
	// (e.g. isomorphic anonymous blank nodes) must still sort the same way
	// on every run, so fall back to the (per-run stable) subject key
	// instead of leaving the outcome to map iteration order.
	return strings.Compare(subjectKey(a), subjectKey(b))
}

// sortTerms sorts a slice of terms in place using compareTerms.
func (ctx *sortContext) sortTerms(terms []rdf.Term) {
	sort.SliceStable(terms, func(i, j int) bool {
		return ctx.compareTerms(terms[i], terms[j]) < 0
	})
}
