package format

import (
	"regexp"
	"strings"

	"github.com/elevont/turtlefmt/pkg/rdf"
)

var rePNLocalSimple = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// emitter walks the sorted, role-classified graph and writes Turtle text.
// Grounded on original_source/src/formatter.rs::TurtleFormatter, adapted
// from a mutable-writer struct into a value-returning recursive renderer
// (idiomatic for a pure Format(doc, opts) function, spec.md §9).
type emitter struct {
	doc             *rdf.Document
	g               *graph
	opts            Options
	sortCtx         *sortContext
	collectionHeads map[string][]rdf.Term
	consumed        map[string]bool
	byKey           map[string][]rdf.Triple
	termByKey       map[string]rdf.Term
}

func subjectKey(t rdf.Term) string {
	switch v := t.(type) {
	case *rdf.NamedNode:
		return "N:" + v.IRI
	case *rdf.BlankNode:
		return "B:" + v.ID
	case *rdf.TripleTerm:
		return "T:" + v.String()
	default:
		return t.String()
	}
}

func newEmitter(doc *rdf.Document, opts Options) *emitter {
	g := newGraph(doc)
	heads, consumed := detectCollections(g)
	sortCtx := newSortContext(g, opts)
	sortCtx.collectionHeads = heads

	byKey := make(map[string][]rdf.Triple)
	termByKey := make(map[string]rdf.Term)
	for _, t := range doc.Triples() {
		k := subjectKey(t.Subject)
		byKey[k] = append(byKey[k], t)
		termByKey[k] = t.Subject
	}

	return &emitter{
		doc:             doc,
		g:               g,
		opts:            opts,
		sortCtx:         sortCtx,
		collectionHeads: heads,
		consumed:        consumed,
		byKey:           byKey,
		termByKey:       termByKey,
	}
}

// Emit produces the full formatted document text.
func (e *emitter) Emit() string {
	var b strings.Builder
	e.writePrologue(&b)

	topKeys := e.topLevelSubjectKeys()
	e.sortSubjectKeys(topKeys)

	for i, k := range topKeys {
		if i > 0 {
			b.WriteByte('\n')
		}
		e.writeSubjectBlock(&b, e.termByKey[k], e.byKey[k])
	}

	out := b.String()
	out = strings.TrimRight(out, "\n") + "\n"
	return out
}

func (e *emitter) writePrologue(b *strings.Builder) {
	wroteAny := false
	if e.doc.Base() != "" {
		if e.opts.SparqlSyntax {
			b.WriteString("BASE <" + e.doc.Base() + ">\n")
		} else {
			b.WriteString("@base <" + e.doc.Base() + "> .\n")
		}
		wroteAny = true
	}
	for _, label := range e.doc.SortedPrefixLabels() {
		ns := e.doc.Prefixes()[label]
		if e.opts.SparqlSyntax {
			b.WriteString("PREFIX " + label + ": <" + ns + ">\n")
		} else {
			b.WriteString("@prefix " + label + ": <" + ns + "> .\n")
		}
		wroteAny = true
	}
	if wroteAny {
		b.WriteByte('\n')
	}
}

// topLevelSubjectKeys collects every subject key that must be rendered as
// its own statement group: everything except blank nodes that are either
// nestable (inlined at their referrer) or consumed as an interior
// collection cell that is still referenced from elsewhere.
func (e *emitter) topLevelSubjectKeys() []string {
	var keys []string
	for k, term := range e.termByKey {
		bn, isBlank := term.(*rdf.BlankNode)
		if !isBlank {
			keys = append(keys, k)
			continue
		}
		if e.consumed[bn.ID] && e.g.inDegree[bn.ID] > 0 {
			continue // folded into a `( ... )` at its point of reference
		}
		if e.g.role(bn.ID, e.opts) == roleNestable {
			continue // folded into a `[ ... ]` at its point of reference
		}
		keys = append(keys, k)
	}
	return keys
}

func (e *emitter) sortSubjectKeys(keys []string) {
	for i := 1; i < len(keys); i++ {
		j := i
		for j > 0 && e.sortCtx.compareSubjects(e.termByKey[keys[j-1]], e.termByKey[keys[j]], e.byKey[keys[j-1]], e.byKey[keys[j]]) > 0 {
			keys[j-1], keys[j] = keys[j], keys[j-1]
			j--
		}
	}
}

func (e *emitter) writeSubjectBlock(b *strings.Builder, subject rdf.Term, triples []rdf.Triple) {
	subjText := e.subjectText(subject)

	preds := e.groupByPredicate(triples)
	e.sortPredicateGroups(preds)

	if len(preds) == 1 && len(preds[0].objects) == 1 && !e.opts.SingleLeafedNewLines {
		objText := e.renderObject(preds[0].objects[0], 1)
		if !strings.Contains(objText, "\n") {
			b.WriteString(subjText + " " + e.predicateText(preds[0].predicate) + " " + objText + " .\n")
			return
		}
	}

	b.WriteString(subjText + "\n")
	e.writePredicateGroups(b, preds, 1)
	b.WriteString(e.indentUnit(1) + ".\n")
}

// writePredicateGroups writes every predicate group at the given depth,
// terminating each one — including the last — with " ;\n", per
// formatter.rs::fmt_predicates: the calling context appends whatever
// closes the block (a bare "." line for a subject statement, "]" for a
// nested blank node). A predicate with exactly one object that neither
// spans multiple lines nor has single-leafed-new-lines forced stays on
// the predicate's own line; otherwise every object gets its own line,
// indented one level past the predicate, separated by " ,\n".
func (e *emitter) writePredicateGroups(b *strings.Builder, groups []*predicateGroup, depth int) {
	indent := e.indentUnit(depth)
	for _, pg := range groups {
		b.WriteString(indent + e.predicateText(pg.predicate))
		if len(pg.objects) == 1 && !e.opts.SingleLeafedNewLines {
			objText := e.renderObject(pg.objects[0], depth)
			if !strings.Contains(objText, "\n") {
				b.WriteString(" " + objText + " ;\n")
				continue
			}
		}
		objIndent := e.indentUnit(depth + 1)
		b.WriteByte('\n')
		for i, o := range pg.objects {
			if i > 0 {
				b.WriteString(" ,\n")
			}
			b.WriteString(objIndent + e.renderObject(o, depth+1))
		}
		b.WriteString(" ;\n")
	}
}

type predicateGroup struct {
	predicate *rdf.NamedNode
	objects   []rdf.Term
}

func (e *emitter) groupByPredicate(triples []rdf.Triple) []*predicateGroup {
	order := make([]*rdf.NamedNode, 0)
	byPred := make(map[string]*predicateGroup)
	for _, t := range triples {
		nn, ok := t.Predicate.(*rdf.NamedNode)
		if !ok {
			continue
		}
		pg, exists := byPred[nn.IRI]
		if !exists {
			pg = &predicateGroup{predicate: nn}
			byPred[nn.IRI] = pg
			order = append(order, nn)
		}
		pg.objects = append(pg.objects, t.Object)
	}
	groups := make([]*predicateGroup, 0, len(order))
	seen := make(map[string]bool)
	for _, nn := range order {
		if seen[nn.IRI] {
			continue
		}
		seen[nn.IRI] = true
		groups = append(groups, byPred[nn.IRI])
	}
	return groups
}

func (e *emitter) sortPredicateGroups(groups []*predicateGroup) {
	for i := 1; i < len(groups); i++ {
		j := i
		for j > 0 && e.sortCtx.comparePredicates(groups[j-1].predicate, groups[j].predicate) > 0 {
			groups[j-1], groups[j] = groups[j], groups[j-1]
			j--
		}
	}
	for _, g := range groups {
		e.sortCtx.sortTerms(g.objects)
	}
}

func (e *emitter) subjectText(t rdf.Term) string {
	switch v := t.(type) {
	case *rdf.NamedNode:
		if v.IRI == rdf.RDFNil.IRI {
			return "()"
		}
		return e.namedNodeText(v)
	case *rdf.BlankNode:
		if elems, ok := e.collectionHeads[v.ID]; ok {
			return e.renderCollection(elems, 0)
		}
		return "_:" + v.ID
	case *rdf.TripleTerm:
		return e.renderTripleTerm(v, 0)
	default:
		return t.String()
	}
}

func (e *emitter) predicateText(nn *rdf.NamedNode) string {
	if nn.IRI == rdf.RDFType.IRI {
		return "a"
	}
	return e.namedNodeText(nn)
}

// namedNodeText prefers the document's own prefix declarations, falling
// back to a full IRI when no declared prefix cleanly covers it.
func (e *emitter) namedNodeText(nn *rdf.NamedNode) string {
	var bestLabel, bestNS string
	for label, ns := range e.doc.Prefixes() {
		if !strings.HasPrefix(nn.IRI, ns) {
			continue
		}
		local := nn.IRI[len(ns):]
		if local == "" || !rePNLocalSimple.MatchString(local) {
			continue
		}
		if len(ns) > len(bestNS) {
			bestNS, bestLabel = ns, label
		}
	}
	if bestLabel != "" {
		return bestLabel + ":" + nn.IRI[len(bestNS):]
	}
	return "<" + nn.IRI + ">"
}

func (e *emitter) renderObject(t rdf.Term, depth int) string {
	switch v := t.(type) {
	case *rdf.NamedNode:
		if v.IRI == rdf.RDFNil.IRI {
			return "()"
		}
		return e.namedNodeText(v)
	case *rdf.Literal:
		return e.literalText(v)
	case *rdf.TripleTerm:
		return e.renderTripleTerm(v, depth)
	case *rdf.BlankNode:
		if elems, ok := e.collectionHeads[v.ID]; ok {
			return e.renderCollection(elems, depth)
		}
		if e.g.role(v.ID, e.opts) == roleNestable {
			return e.renderNestedBlankNode(v, depth)
		}
		return "_:" + v.ID
	default:
		return t.String()
	}
}

func (e *emitter) literalText(lit *rdf.Literal) string {
	return literalForm(lit, e.namedNodeText)
}

func (e *emitter) renderTripleTerm(tt *rdf.TripleTerm, depth int) string {
	pred := "?"
	if nn, ok := tt.Predicate.(*rdf.NamedNode); ok {
		pred = e.predicateText(nn)
	}
	return "<< " + e.renderObject(tt.Subject, depth) + " " + pred + " " + e.renderObject(tt.Object, depth) + " >>"
}

func (e *emitter) renderCollection(elems []rdf.Term, depth int) string {
	if len(elems) == 0 {
		return "()"
	}
	parts := make([]string, len(elems))
	multiline := false
	combinedWidth := 0
	for i, el := range elems {
		parts[i] = e.renderObject(el, depth+1)
		if strings.Contains(parts[i], "\n") {
			multiline = true
		}
		combinedWidth += len(parts[i])
	}
	if !multiline && combinedWidth <= 40 {
		return "( " + strings.Join(parts, " ") + " )"
	}
	indent := e.indentUnit(depth + 1)
	var b strings.Builder
	b.WriteString("(\n")
	for _, part := range parts {
		b.WriteString(indent + part + "\n")
	}
	b.WriteString(e.indentUnit(depth) + ")")
	return b.String()
}

func (e *emitter) renderNestedBlankNode(bn *rdf.BlankNode, depth int) string {
	triples := e.g.triplesBySubj[bn.ID]
	if len(triples) == 0 {
		return "[]"
	}
	groups := e.groupByPredicate(triples)
	e.sortPredicateGroups(groups)

	if len(groups) == 1 && len(groups[0].objects) == 1 && !e.opts.SingleLeafedNewLines {
		objText := e.renderObject(groups[0].objects[0], depth+1)
		if !strings.Contains(objText, "\n") {
			return "[ " + e.predicateText(groups[0].predicate) + " " + objText + " ]"
		}
	}

	var b strings.Builder
	b.WriteString("[\n")
	e.writePredicateGroups(&b, groups, depth+1)
	b.WriteString(e.indentUnit(depth) + "]")
	return b.String()
}

func (e *emitter) indentUnit(depth int) string {
	return strings.Repeat(e.opts.Indentation, depth)
}
