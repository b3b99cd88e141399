package loader

import (
	"context"
	"io"

	"github.com/jeswr/components-go/resource"
)

// Loader is the collaborator spec §9 calls the "RDF object loader": it
// turns a triple stream into resources addressable by IRI, without the
// registry or pool needing to know how the stream was produced or
// parsed. Import may be called more than once against the same Loader;
// a concrete implementation decides whether later calls merge into or
// replace its resource set.
type Loader interface {
	// Import ingests triples read from r and returns a channel that
	// receives at most one error (nil on success) and is then closed,
	// mirroring spec §9's "import(triples) -> Future<()>" shape as an
	// idiomatic Go result channel instead of a bespoke future type.
	Import(ctx context.Context, r io.Reader) <-chan error

	// Resources returns every resource imported so far, keyed by its
	// IRI or blank-node label. The returned map must not be mutated by
	// the caller; Import may still be populating it concurrently with a
	// Resources call that raced a prior Import's completion.
	Resources() map[string]*resource.Resource
}
