// Package pool memoises constructed instances by config IRI and breaks
// self-referential recursion via a per-call blacklist, implementing
// spec §4.4's "instantiate(config, settings) -> Future<Instance>"
// contract. A Pool is the sole owner of its instance cache; there is
// no external eviction and no attempt to cancel an in-flight
// construction.
package pool
