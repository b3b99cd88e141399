// Package argtree defines the generic value type the config
// constructor builds while walking a canonical config into a
// strategy-neutral argument tree (spec §4.3). It is intentionally a
// single type alias: the constructor never interprets a resolved value
// further than handing it back to the Construction Strategy, so there
// is nothing for this package to validate or branch on.
package argtree

// Value is an already-resolved, strategy-neutral argument: whatever a
// Construction Strategy returned from CreatePrimitive, CreateArray,
// CreateHash, CreateUndefined, ResolveVariable, or the awaited result
// of a nested pool instantiation. The constructor passes it through
// opaquely; only the strategy that produced it knows its concrete shape.
type Value = any
