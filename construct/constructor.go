// Package construct implements the Config Constructor (spec §4.3): it
// walks a canonical config produced by the preprocess chain, resolves
// every parameter value into a strategy-neutral argument tree, and
// asks the Construction Strategy to build the final artifact.
package construct

import (
	"context"

	componentsgoerrors "github.com/jeswr/components-go/errors"
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/strategy"
	"github.com/jeswr/components-go/vocabulary"
)

// Instantiator is the subset of the Constructor Pool's contract the
// constructor needs to recurse into for nested config references
// (spec §4.3: "NamedNode/BlankNode that is another config -> Recursive
// call into the Pool"). Defined here, not imported from package pool,
// so pool can depend on construct without an import cycle.
type Instantiator interface {
	Instantiate(ctx context.Context, config *resource.Resource, settings strategy.Settings) (*strategy.Future, error)
}

// Constructor is the Config Constructor (spec §4.3).
type Constructor struct {
	strategy strategy.Strategy
	pool     Instantiator
}

// New builds a Constructor delegating artifact creation to strat and
// nested-reference resolution to pool.
func New(strat strategy.Strategy, pool Instantiator) *Constructor {
	return &Constructor{strategy: strat, pool: pool}
}

// CreateInstance resolves raw's constructor arguments and asks the
// strategy to build the artifact (spec §4.3's final step, §4.4 step 7).
func (c *Constructor) CreateInstance(ctx context.Context, raw *resource.Resource, settings strategy.Settings) (*strategy.Future, error) {
	req := strategy.CreateInstanceRequest{
		IRI:      raw.ID,
		Settings: settings,
	}
	if name, ok := raw.First(vocabulary.PredRequireName); ok {
		req.RequireName = name.Value
	}
	if element, ok := raw.First(vocabulary.PredRequireElement); ok {
		req.RequireElement = element.Value
	}
	if noCtor, ok := raw.First(vocabulary.PredRequireNoConstructor); ok {
		req.RequireNoConstructor = noCtor.Value == "true"
	}

	args, positional, err := c.resolveConstructorArguments(ctx, raw, settings)
	if err != nil {
		return nil, err
	}
	req.Args = args
	req.PositionalArgs = positional

	return c.strategy.CreateInstance(ctx, req)
}

// resolveConstructorArguments resolves every member of raw's
// constructorArguments property (one resolved value per positional
// argument slot). When the config resolves to exactly one member and
// that member is itself a fields-object, its resolved map is exposed
// as keyword Args for strategy convenience in addition to being the
// sole positional value.
func (c *Constructor) resolveConstructorArguments(ctx context.Context, raw *resource.Resource, settings strategy.Settings) (map[string]strategy.Instance, []strategy.Instance, error) {
	members, ok := raw.Property(vocabulary.PredConstructorArguments)
	if !ok {
		return nil, nil, nil
	}

	resolved := make([]strategy.Instance, 0, len(members))
	for _, member := range members {
		v, err := c.resolveValue(ctx, member, settings)
		if err != nil {
			return nil, nil, err
		}
		resolved = append(resolved, v)
	}

	if len(resolved) == 1 {
		if asMap, ok := resolved[0].(map[string]strategy.Instance); ok {
			return asMap, resolved, nil
		}
	}
	return nil, resolved, nil
}

// resolveValue translates a single value node per the §4.3 value-shape
// table, recursing into the pool for nested config references.
func (c *Constructor) resolveValue(ctx context.Context, node *resource.Resource, settings strategy.Settings) (strategy.Instance, error) {
	switch {
	case node.IsLiteral():
		return c.strategy.CreatePrimitive(node.Value, node.Datatype)

	case node.IsVariable():
		return c.strategy.ResolveVariable(ctx, node.Value, settings)

	case resource.IsRDFNil(node):
		return c.strategy.CreateArray(nil)

	default:
		if fields, ok := node.Property(vocabulary.PredFields); ok {
			return c.resolveFields(ctx, node, fields, settings)
		}
		if elements, ok := node.Property(vocabulary.PredElements); ok {
			return c.resolveSequence(ctx, elements, settings)
		}
		if _, ok := node.First(vocabulary.RDFFirst); ok {
			members, err := node.List()
			if err != nil {
				return nil, err
			}
			return c.resolveSequence(ctx, members, settings)
		}

		// Plain NamedNode/BlankNode: another config resource, resolved by
		// recursing into the pool (spec §4.3).
		future, err := c.pool.Instantiate(ctx, node, settings)
		if err != nil {
			return nil, err
		}
		return future.Get(ctx)
	}
}

func (c *Constructor) resolveFields(ctx context.Context, node *resource.Resource, fields []*resource.Resource, settings strategy.Settings) (strategy.Instance, error) {
	out := make(map[string]strategy.Instance, len(fields))
	for _, entry := range fields {
		key, ok := entry.First(vocabulary.PredKey)
		if !ok {
			return nil, componentsgoerrors.MalformedMappingKey(node.ID, "fields entry missing key")
		}
		if !key.IsLiteral() {
			return nil, componentsgoerrors.MalformedMappingKey(node.ID, "fields entry key must be a Literal")
		}
		value, ok := entry.First(vocabulary.PredValue)
		if !ok {
			continue
		}
		v, err := c.resolveValue(ctx, value, settings)
		if err != nil {
			return nil, err
		}
		out[key.Value] = v
	}
	return c.strategy.CreateHash(out)
}

func (c *Constructor) resolveSequence(ctx context.Context, items []*resource.Resource, settings strategy.Settings) (strategy.Instance, error) {
	out := make([]strategy.Instance, 0, len(items))
	for _, item := range items {
		v, err := c.resolveValue(ctx, item, settings)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return c.strategy.CreateArray(out)
}
