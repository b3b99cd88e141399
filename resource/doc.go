// Package resource implements spec §3's Resource Graph View: the
// read-only-after-mutation projection of a parsed RDF graph that
// registry, preprocess, construct, and pool all traverse.
//
// # Overview
//
//	store := resource.NewStore()
//	lexer := store.NewNamedNode("urn:config:lexer")
//	_ = lexer.SetProperty(vocabulary.PredRequireName, resource.NewLiteral("n3", ""))
//
//	if lexer.IsA(vocabulary.ClassComponentInstance) {
//	    // ...
//	}
//
// # Identity
//
// NamedNode and BlankNode resources are arena-addressable: Store.NewNamedNode
// and Store.BlankNodeByLabel are get-or-create, so two references to the
// same identifier always resolve to the same *Resource pointer.
// Store.NewBlankNode mints a fresh blank node on every call.
// Literal and Variable resources carry no identifier and are never
// registered in the Store; they are only reachable through a property
// list that holds them.
//
// # Mutation
//
// Preprocessors mutate a config Resource in place (spec §3: "Config
// resources are mutated only by preprocessors and only on the first
// visit"). Because every reference to a given identifier is the same
// pointer, that mutation is immediately visible to every other
// property list referencing it — there is no separate "commit" step.
//
// # RDF Lists
//
// Resource.List walks an rdf:first/rdf:rest chain into an ordered
// slice; NewList does the reverse, minting the intermediate blank-node
// cells through a Store. An empty list is the resource.Store.RDFNil()
// sentinel, shared across the whole arena.
package resource
