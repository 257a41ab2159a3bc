package format

import "github.com/elevont/turtlefmt/pkg/rdf"

// detectCollections finds every well-formed rdf:first/rdf:rest chain in
// the graph and returns, per chain head blank node ID, the ordered list
// of elements it encodes (spec.md §4.2). It also returns the set of
// blank node IDs consumed by some chain — every list cell, head included —
// which are not emitted as their own subject group while referenced as an
// object, being folded into a `( ... )` collection there.
//
// Grounded on original_source/src/ast.rs::extract_collection: a chain
// cell must carry exactly one rdf:first and one rdf:rest triple and no
// other predicates except prtr:sortingId, which is dropped when the cell
// is folded (interior cells must also have in-degree exactly one,
// i.e. be referenced only by the previous cell's rdf:rest), and the walk
// stops at rdf:nil.
func detectCollections(g *graph) (heads map[string][]rdf.Term, consumed map[string]bool) {
	heads = make(map[string][]rdf.Term)
	consumed = make(map[string]bool)

	for id := range g.triplesBySubj {
		if consumed[id] {
			continue
		}
		if !isListCell(g, id) {
			continue
		}
		elements, cellIDs, ok := walkChain(g, id)
		if !ok {
			continue
		}
		if g.inDegree[id] > 1 {
			continue // referenced from more than one place, cannot fold without duplicating the list
		}
		heads[id] = elements
		for _, cid := range cellIDs {
			consumed[cid] = true
		}
	}

	return heads, consumed
}

// isListCell reports whether blank node id carries exactly one rdf:first
// and one rdf:rest triple and, besides prtr:sortingId, no other predicate
// as subject.
func isListCell(g *graph, id string) bool {
	hasFirst, hasRest := false, false
	for _, t := range g.triplesBySubj[id] {
		switch {
		case t.Predicate.Equal(rdf.RDFFirst) && !hasFirst:
			hasFirst = true
		case t.Predicate.Equal(rdf.RDFRest) && !hasRest:
			hasRest = true
		case t.Predicate.Equal(rdf.PrtrSortID):
			// collection rendering wins over a sorting ID on a list cell
		default:
			return false
		}
	}
	return hasFirst && hasRest
}

// walkChain follows rdf:first/rdf:rest starting at head, requiring every
// cell after the first to be referenced exactly once (by the previous
// cell), and terminating at rdf:nil. It fails (ok=false) on a malformed
// or cyclic chain, leaving the nodes to fall back to ordinary blank-node
// rendering.
func walkChain(g *graph, head string) (elements []rdf.Term, cellIDs []string, ok bool) {
	visited := make(map[string]bool)
	current := head
	first := true
	for {
		if visited[current] {
			return nil, nil, false // cyclic list, bail out
		}
		visited[current] = true
		if !first && g.inDegree[current] != 1 {
			return nil, nil, false // shared interior cell, cannot fold safely
		}
		first = false

		triples := g.triplesBySubj[current]
		var elem, rest rdf.Term
		for _, t := range triples {
			switch {
			case t.Predicate.Equal(rdf.RDFFirst):
				elem = t.Object
			case t.Predicate.Equal(rdf.RDFRest):
				rest = t.Object
			}
		}
		if elem == nil || rest == nil {
			return nil, nil, false
		}
		elements = append(elements, elem)
		cellIDs = append(cellIDs, current)

		if rest.Equal(rdf.RDFNil) {
			return elements, cellIDs, true
		}
		nextBN, ok := rest.(*rdf.BlankNode)
		if !ok {
			return nil, nil, false
		}
		if !isListCell(g, nextBN.ID) {
			return nil, nil, false
		}
		current = nextBN.ID
	}
}
