package resource

import (
	"sync"

	"github.com/google/uuid"
)

// Store is the arena that owns every Resource reachable from a parsed
// graph: it hands out NamedNode/BlankNode resources by identifier and
// is the single place new blank-node labels are minted, grounding the
// uuid-minting idiom the corpus uses for entity identifiers. Resources
// are mutated in place during preprocessing (spec §3, §9); the Store
// only ever hands back the same pointer for the same identifier, so
// that mutation is visible through every property list referencing it.
type Store struct {
	mu    sync.RWMutex
	byID  map[string]*Resource
	nilID *Resource
}

// NewStore creates an empty arena.
func NewStore() *Store {
	s := &Store{byID: make(map[string]*Resource)}
	s.nilID = &Resource{ID: rdfNil, Kind: NamedNode, properties: make(map[string][]*Resource)}
	s.byID[rdfNil] = s.nilID
	return s
}

// RDFNil returns the shared rdf:nil resource.
func (s *Store) RDFNil() *Resource {
	return s.nilID
}

// NewNamedNode returns the Resource registered under iri, minting one
// on first use (get-or-create, so two references to the same IRI
// always resolve to the same *Resource).
func (s *Store) NewNamedNode(iri string) *Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.byID[iri]; ok {
		return r
	}
	r := NewResource(iri, NamedNode)
	s.byID[iri] = r
	return r
}

// BlankNodeByLabel returns the Resource registered under a parser-
// supplied blank node label, get-or-create like NewNamedNode, so that
// repeated mentions of the same label within an input stream resolve
// to the same *Resource while still reporting Kind == BlankNode.
func (s *Store) BlankNodeByLabel(label string) *Resource {
	id := "_:" + label
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.byID[id]; ok {
		return r
	}
	r := NewResource(id, BlankNode)
	s.byID[id] = r
	return r
}

// NewBlankNode mints a fresh blank node with a document-unique label.
func (s *Store) NewBlankNode() *Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := "_:b" + uuid.NewString()
	r := NewResource(id, BlankNode)
	s.byID[id] = r
	return r
}

// Get resolves a previously-registered NamedNode or BlankNode by identifier.
func (s *Store) Get(id string) (*Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	return r, ok
}

// MustGet is Get but panics if the identifier is unknown; useful for
// tests and for code paths that already verified the identifier exists.
func (s *Store) MustGet(id string) *Resource {
	r, ok := s.Get(id)
	if !ok {
		panic("resource: unknown identifier " + id)
	}
	return r
}

// All returns every addressable resource in the arena (NamedNode and
// BlankNode; Literal and Variable resources are never arena-registered).
func (s *Store) All() []*Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Resource, 0, len(s.byID))
	for _, r := range s.byID {
		out = append(out, r)
	}
	return out
}

// Len reports how many resources are registered in the arena.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
