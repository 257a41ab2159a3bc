package format

import "github.com/elevont/turtlefmt/pkg/rdf"

// blankRole classifies how a blank node subject is rendered (spec.md §4.1).
type blankRole byte

const (
	// roleLabelled subjects always get their own top-level `_:id` block.
	roleLabelled blankRole = iota
	// roleNestable subjects are inlined as `[ ... ]` inside their sole
	// referrer.
	roleNestable
)

// graph is the shared, precomputed view over a Document that every
// pipeline stage consults: adjacency by subject, and blank-node reference
// counts. Built once per Format call.
type graph struct {
	doc            *rdf.Document
	triplesBySubj  map[string][]rdf.Triple // blank node ID -> its triples as subject
	inDegree       map[string]int          // blank node ID -> number of times it appears as an object
	referencedFrom map[string][]string     // blank node ID -> subjects (blank node IDs) that reference it, "" for non-blank referrers
}

func newGraph(doc *rdf.Document) *graph {
	g := &graph{
		doc:            doc,
		triplesBySubj:  make(map[string][]rdf.Triple),
		inDegree:       make(map[string]int),
		referencedFrom: make(map[string][]string),
	}
	for _, t := range doc.Triples() {
		if bn, ok := t.Subject.(*rdf.BlankNode); ok {
			g.triplesBySubj[bn.ID] = append(g.triplesBySubj[bn.ID], t)
		}
		walkBlankRefs(t.Object, func(bn *rdf.BlankNode) {
			g.inDegree[bn.ID]++
			from := ""
			if sbn, ok := t.Subject.(*rdf.BlankNode); ok {
				from = sbn.ID
			}
			g.referencedFrom[bn.ID] = append(g.referencedFrom[bn.ID], from)
		})
	}
	return g
}

// walkBlankRefs visits every blank node reachable as a direct term (not
// recursing into other blank nodes' own triples — this only concerns
// terms embedded directly in the triple, i.e. triple-term payloads).
func walkBlankRefs(t rdf.Term, visit func(*rdf.BlankNode)) {
	switch v := t.(type) {
	case *rdf.BlankNode:
		visit(v)
	case *rdf.TripleTerm:
		walkBlankRefs(v.Subject, visit)
		walkBlankRefs(v.Object, visit)
	}
}

// isCyclic reports whether starting a depth-first walk of subject ->
// blank-object edges from start ever returns to start.
func (g *graph) isCyclic(start string) bool {
	visited := make(map[string]bool)
	var visit func(id string) bool
	visit = func(id string) bool {
		if id == start && visited[id] {
			return true
		}
		if visited[id] {
			return false
		}
		visited[id] = true
		for _, t := range g.triplesBySubj[id] {
			if bn, ok := t.Object.(*rdf.BlankNode); ok {
				if bn.ID == start || visit(bn.ID) {
					return true
				}
			}
		}
		return false
	}
	for _, t := range g.triplesBySubj[start] {
		if bn, ok := t.Object.(*rdf.BlankNode); ok {
			if bn.ID == start || visit(bn.ID) {
				return true
			}
		}
	}
	return false
}

// role classifies a blank node per spec.md §4.1: nestable requires
// exactly one incoming reference, no incoming cycle back to itself, and
// (unless overridden) is not forced labelled by configuration.
func (g *graph) role(id string, opts Options) blankRole {
	if opts.LabelAllBlankNodes {
		return roleLabelled
	}
	if g.inDegree[id] != 1 {
		return roleLabelled
	}
	if g.isCyclic(id) {
		return roleLabelled
	}
	return roleNestable
}

// isReferenced reports whether a blank node ID is ever used as an object
// anywhere in the document.
func (g *graph) isReferenced(id string) bool {
	return g.inDegree[id] > 0
}
