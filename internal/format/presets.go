package format

// Presets ship ready-made PredicateOrder/SubjectTypeOrder values for
// common vocabularies (spec.md §9 Open Question: "exact contents ... are
// shipped configuration"). Each ordering starts with rdf:type's
// vocabulary-specific identifying predicates, then structural predicates,
// then everything else falls back to term-order sorting.
var PredicateOrderPresets = map[string][]string{
	"rdf": {
		"http://www.w3.org/1999/02/22-rdf-syntax-ns#type",
	},
	"rdfs": {
		"http://www.w3.org/1999/02/22-rdf-syntax-ns#type",
		"http://www.w3.org/2000/01/rdf-schema#label",
		"http://www.w3.org/2000/01/rdf-schema#comment",
		"http://www.w3.org/2000/01/rdf-schema#subClassOf",
	},
	"owl": {
		"http://www.w3.org/1999/02/22-rdf-syntax-ns#type",
		"http://www.w3.org/2000/01/rdf-schema#label",
		"http://www.w3.org/2000/01/rdf-schema#comment",
		"http://www.w3.org/2002/07/owl#equivalentClass",
		"http://www.w3.org/2000/01/rdf-schema#subClassOf",
		"http://www.w3.org/2002/07/owl#onProperty",
		"http://www.w3.org/2002/07/owl#someValuesFrom",
		"http://www.w3.org/2002/07/owl#allValuesFrom",
	},
	"skos": {
		"http://www.w3.org/1999/02/22-rdf-syntax-ns#type",
		"http://www.w3.org/2004/02/skos/core#prefLabel",
		"http://www.w3.org/2004/02/skos/core#altLabel",
		"http://www.w3.org/2004/02/skos/core#definition",
		"http://www.w3.org/2004/02/skos/core#broader",
		"http://www.w3.org/2004/02/skos/core#narrower",
		"http://www.w3.org/2004/02/skos/core#related",
		"http://www.w3.org/2004/02/skos/core#inScheme",
	},
	"shacl": {
		"http://www.w3.org/1999/02/22-rdf-syntax-ns#type",
		"http://www.w3.org/ns/shacl#targetClass",
		"http://www.w3.org/ns/shacl#path",
		"http://www.w3.org/ns/shacl#property",
		"http://www.w3.org/ns/shacl#datatype",
		"http://www.w3.org/ns/shacl#minCount",
		"http://www.w3.org/ns/shacl#maxCount",
	},
	"shex": {
		"http://www.w3.org/1999/02/22-rdf-syntax-ns#type",
		"http://www.w3.org/ns/shex#shapeExpr",
		"http://www.w3.org/ns/shex#expression",
		"http://www.w3.org/ns/shex#predicate",
		"http://www.w3.org/ns/shex#valueExpr",
	},
}

// SubjectTypeOrderPresets groups top-level subjects by rdf:type before
// falling back to term-order sorting, mirroring PredicateOrderPresets'
// per-vocabulary priority.
var SubjectTypeOrderPresets = map[string][]string{
	"owl": {
		"http://www.w3.org/2002/07/owl#Ontology",
		"http://www.w3.org/2002/07/owl#Class",
		"http://www.w3.org/2002/07/owl#ObjectProperty",
		"http://www.w3.org/2002/07/owl#DatatypeProperty",
		"http://www.w3.org/2002/07/owl#NamedIndividual",
	},
	"skos": {
		"http://www.w3.org/2004/02/skos/core#ConceptScheme",
		"http://www.w3.org/2004/02/skos/core#Collection",
		"http://www.w3.org/2004/02/skos/core#Concept",
	},
	"shacl": {
		"http://www.w3.org/ns/shacl#NodeShape",
		"http://www.w3.org/ns/shacl#PropertyShape",
	},
	"shex": {
		"http://www.w3.org/ns/shex#Schema",
		"http://www.w3.org/ns/shex#ShapeDecl",
	},
	"rdf": {
		"http://www.w3.org/1999/02/22-rdf-syntax-ns#List",
	},
}
