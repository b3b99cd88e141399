// Package loader turns externally-sourced triples into the resource
// graph the registry and pool operate on. Loader is the narrow
// contract the rest of the engine depends on (spec §9's "RDF object
// loader" collaborator); RDFAdapter is this module's concrete default,
// wrapping a streaming RDF parser so that Turtle/N-Triples/N-Quads
// input becomes populated resource.Resource values without the engine
// itself ever touching a parser library.
//
// JSON-LD context expansion is explicitly out of scope (SPEC_FULL §7):
// RDFAdapter consumes triples whose terms are already expanded IRIs,
// literals, or blank-node labels.
package loader
