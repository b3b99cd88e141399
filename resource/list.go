package resource

import (
	"fmt"

	componentsgoerrors "github.com/jeswr/components-go/errors"
)

// RDF list predicates (spec §6 GLOSSARY: "RDF resource").
const (
	rdfFirst = "http://www.w3.org/1999/02/22-rdf-syntax-ns#first"
	rdfRest  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#rest"
	rdfNil   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil"
)

// IsRDFNil reports whether r is the rdf:nil terminator.
func IsRDFNil(r *Resource) bool {
	return r != nil && r.Kind == NamedNode && r.ID == rdfNil
}

// List walks the rdf:first/rdf:rest chain starting at r and returns
// its members in order (spec §3: "A distinguished list projection
// exposes RDF-list semantics"). r itself must either be rdf:nil (empty
// list) or carry exactly one rdf:first and one rdf:rest.
func (r *Resource) List() ([]*Resource, error) {
	var out []*Resource
	cur := r
	for {
		if cur == nil || IsRDFNil(cur) {
			return out, nil
		}
		first, ok := cur.First(rdfFirst)
		if !ok {
			return nil, componentsgoerrors.WrapInvalid(
				fmt.Errorf("list node %s missing rdf:first", cur.ID),
				"Resource", "List", "malformed RDF list")
		}
		rest, ok := cur.First(rdfRest)
		if !ok {
			return nil, componentsgoerrors.WrapInvalid(
				fmt.Errorf("list node %s missing rdf:rest", cur.ID),
				"Resource", "List", "malformed RDF list")
		}
		out = append(out, first)
		cur = rest
	}
}

// NewList builds an RDF list resource out of items, using store to mint
// the intermediate blank-node list cells. An empty items slice returns
// the shared rdf:nil resource.
func NewList(store *Store, items []*Resource) *Resource {
	if len(items) == 0 {
		return store.RDFNil()
	}
	head := store.NewBlankNode()
	cur := head
	for i, item := range items {
		_ = cur.SetProperty(rdfFirst, item)
		if i == len(items)-1 {
			_ = cur.SetProperty(rdfRest, store.RDFNil())
			break
		}
		next := store.NewBlankNode()
		_ = cur.SetProperty(rdfRest, next)
		cur = next
	}
	return head
}
