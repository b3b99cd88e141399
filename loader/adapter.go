package loader

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/geoknoesis/rdf-go"

	componentsgoerrors "github.com/jeswr/components-go/errors"
	"github.com/jeswr/components-go/resource"
)

// RDFAdapter is the default Loader, grounded on rdf-go's streaming
// rdf.Parse. It turns each rdf.Statement into the corresponding
// resource.Resource values in store, using store's get-or-create
// identity semantics so repeated mentions of the same IRI or blank
// node label in subject or object position resolve to the same
// *resource.Resource.
type RDFAdapter struct {
	store  *resource.Store
	format rdf.Format

	mu   sync.Mutex
	seen map[string]*resource.Resource
}

// NewRDFAdapter builds an RDFAdapter writing into store. format
// selects the input serialization; rdf.FormatAuto detects it from the
// stream.
func NewRDFAdapter(store *resource.Store, format rdf.Format) *RDFAdapter {
	return &RDFAdapter{store: store, format: format, seen: make(map[string]*resource.Resource)}
}

// Import parses r as a stream of statements, translating each into
// subject.AddProperty(predicate, object) on store. Parsing runs on the
// calling goroutine's behalf in a background goroutine so Import can
// return its result channel immediately, matching Loader's contract.
func (a *RDFAdapter) Import(ctx context.Context, r io.Reader) <-chan error {
	result := make(chan error, 1)
	go func() {
		defer close(result)
		err := rdf.Parse(ctx, r, a.format, func(stmt rdf.Statement) error {
			return a.handle(stmt)
		})
		if err != nil {
			result <- componentsgoerrors.InvalidConfig("", "triples", err.Error())
			return
		}
		result <- nil
	}()
	return result
}

// Resources returns every subject and object resource (IRI or blank
// node) touched so far, keyed by IRI or blank-node label. Predicates
// are not included.
func (a *RDFAdapter) Resources() map[string]*resource.Resource {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]*resource.Resource, len(a.seen))
	for id, res := range a.seen {
		out[id] = res
	}
	return out
}

func (a *RDFAdapter) handle(stmt rdf.Statement) error {
	subject, err := a.termToResource(stmt.S)
	if err != nil {
		return err
	}
	predicate, ok := stmt.P.(rdf.IRI)
	if !ok {
		return componentsgoerrors.MalformedObjectMapping(fmt.Sprintf("%v", stmt.P), "predicate term is not an IRI")
	}
	object, err := a.termToResource(stmt.O)
	if err != nil {
		return err
	}
	subject.AddProperty(predicate.Value, object)
	return nil
}

// termToResource resolves an rdf.Term into a *resource.Resource,
// reusing store's get-or-create identity for IRIs and blank-node
// labels and minting a fresh Literal for every literal term, matching
// resource.Resource's own "literals carry no identity" rule.
func (a *RDFAdapter) termToResource(t rdf.Term) (*resource.Resource, error) {
	switch v := t.(type) {
	case rdf.IRI:
		return a.named(v.Value), nil
	case rdf.BlankNode:
		return a.blank(v.Value), nil
	case rdf.Literal:
		return resource.NewLiteral(v.Value, v.Datatype), nil
	default:
		return nil, componentsgoerrors.MalformedObjectMapping(fmt.Sprintf("%v", t), "unsupported RDF term kind for this engine's resource model")
	}
}

func (a *RDFAdapter) named(id string) *resource.Resource {
	res := a.store.NewNamedNode(id)
	a.mu.Lock()
	a.seen[id] = res
	a.mu.Unlock()
	return res
}

func (a *RDFAdapter) blank(label string) *resource.Resource {
	res := a.store.BlankNodeByLabel(label)
	a.mu.Lock()
	a.seen[res.ID] = res
	a.mu.Unlock()
	return res
}
