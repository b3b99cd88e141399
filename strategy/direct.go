package strategy

import (
	"context"
	"fmt"
	"sync"

	componentsgoerrors "github.com/jeswr/components-go/errors"
)

// Factory builds a live object from resolved, keyword-mapped
// arguments. Factories are registered under a require name (optionally
// qualified by a require element) the way the teacher's
// componentregistry wired concrete handlers under a type string.
type Factory func(ctx context.Context, args map[string]Instance, positional []Instance) (Instance, error)

// DirectStrategy is the in-process Construction Strategy: it calls a
// registered Go constructor function directly rather than emitting
// source, the mode spec §8's end-to-end scenarios exercise (e.g.
// "instantiate(C1) -> new N3.Lexer({comments: true})").
type DirectStrategy struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewDirectStrategy returns a DirectStrategy with no factories registered.
func NewDirectStrategy() *DirectStrategy {
	return &DirectStrategy{factories: make(map[string]Factory)}
}

// key combines requireName and requireElement the way spec §4.5
// addresses a single export out of a module (requireName#requireElement).
func factoryKey(requireName, requireElement string) string {
	if requireElement == "" {
		return requireName
	}
	return requireName + "#" + requireElement
}

// Register binds a Factory to a require name (and optional require
// element). Re-registering the same key replaces the previous factory.
func (d *DirectStrategy) Register(requireName, requireElement string, f Factory) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.factories[factoryKey(requireName, requireElement)] = f
}

func (d *DirectStrategy) lookup(requireName, requireElement string) (Factory, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	f, ok := d.factories[factoryKey(requireName, requireElement)]
	return f, ok
}

// CreateUndefined returns nil, the direct strategy's placeholder for a
// blacklisted cycle point.
func (d *DirectStrategy) CreateUndefined() Instance {
	return nil
}

// ResolveVariable returns the bound string value, or
// componentsgoerrors.UndefinedVariable if unbound.
func (d *DirectStrategy) ResolveVariable(_ context.Context, name string, settings Settings) (Instance, error) {
	v, ok := settings.Variable(name)
	if !ok {
		return nil, componentsgoerrors.UndefinedVariable(name)
	}
	return v, nil
}

// CreatePrimitive parses value according to datatype, falling back to
// the raw lexical string for datatypes it doesn't special-case.
func (d *DirectStrategy) CreatePrimitive(value, datatype string) (Instance, error) {
	switch datatype {
	case "http://www.w3.org/2001/XMLSchema#boolean":
		return value == "true", nil
	case "http://www.w3.org/2001/XMLSchema#integer", "http://www.w3.org/2001/XMLSchema#int":
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
			return nil, componentsgoerrors.WrapInvalid(err, "strategy", "CreatePrimitive", fmt.Sprintf("parse integer %q", value))
		}
		return n, nil
	default:
		return value, nil
	}
}

// CreateArray returns items unchanged as a []Instance.
func (d *DirectStrategy) CreateArray(items []Instance) (Instance, error) {
	return items, nil
}

// CreateHash returns entries unchanged as a map[string]Instance.
func (d *DirectStrategy) CreateHash(entries map[string]Instance) (Instance, error) {
	return entries, nil
}

// CreateInstance looks up a Factory by req.RequireName/RequireElement
// and invokes it, wrapping the outcome as a settled Future. Invocation
// runs synchronously: the concurrency (and memoization) is the pool's
// responsibility, not the strategy's.
func (d *DirectStrategy) CreateInstance(ctx context.Context, req CreateInstanceRequest) (*Future, error) {
	f, ok := d.lookup(req.RequireName, req.RequireElement)
	if !ok {
		return nil, componentsgoerrors.UnknownComponent(req.IRI)
	}
	if req.RequireNoConstructor {
		return ResolvedFuture(f), nil
	}
	future := NewFuture()
	value, err := f(ctx, req.Args, req.PositionalArgs)
	if err != nil {
		future.Reject(err)
		return future, nil
	}
	future.Resolve(value)
	return future, nil
}
