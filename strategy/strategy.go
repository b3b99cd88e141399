// Package strategy defines the Construction Strategy interface (spec
// §4.5): the pluggable back end that turns resolved arguments into a
// concrete artifact, whether a live runtime object or emitted source.
// The core (registry, preprocess, construct, pool) depends only on
// this interface; concrete strategies are collaborators, per spec §1.
package strategy

import (
	"context"

	"github.com/jeswr/components-go/argtree"
)

// Instance is the opaque artifact a Strategy produces: a live object, a
// primitive value, a composite, or a source-code string, depending on
// the concrete strategy in use.
type Instance = argtree.Value

// CreateInstanceRequest carries everything the terminal construction
// step needs (spec §4.5's create_instance parameter list).
type CreateInstanceRequest struct {
	RequireName          string
	RequireElement       string // empty if not present
	RequireNoConstructor bool
	Args                 map[string]Instance
	PositionalArgs       []Instance // used when the component has no keyword mapping
	IRI                  string
	Settings             Settings
}

// Strategy is the Construction Strategy interface (spec §4.5). All
// operations are total on well-typed inputs; errors surface through
// the returned error or the Future's rejected branch.
type Strategy interface {
	// CreateUndefined returns the placeholder instance for blacklisted
	// cycle points (spec §4.4 step 1).
	CreateUndefined() Instance

	// ResolveVariable looks up name in settings.variables.
	ResolveVariable(ctx context.Context, name string, settings Settings) (Instance, error)

	// CreatePrimitive materialises a literal's lexical form and datatype.
	CreatePrimitive(value, datatype string) (Instance, error)

	// CreateArray builds a composite from an ordered sequence of items.
	CreateArray(items []Instance) (Instance, error)

	// CreateHash builds a composite from string-keyed entries.
	CreateHash(entries map[string]Instance) (Instance, error)

	// CreateInstance is the terminal step: build the concrete artifact
	// named by req, returning a Future that settles once construction
	// completes (which may suspend arbitrarily, spec §5).
	CreateInstance(ctx context.Context, req CreateInstanceRequest) (*Future, error)
}
