// Package strategy separates "what to build" (registry, preprocess,
// construct) from "how to realise it" (this package). A Strategy turns
// a resolved argument tree into a concrete artifact: a live object for
// DirectStrategy, emitted source for a serializing strategy.
//
// # Futures
//
// CreateInstance returns a *Future rather than a settled value: the
// pool may suspend a construction (e.g. waiting on a sibling instance)
// and needs a handle other goroutines can await without re-invoking
// the strategy. Future.Resolve/Reject are each safe to call exactly
// once; later calls are silently ignored, matching the cache-slot
// state machine the pool builds on top of this package.
//
// # Settings
//
// Settings is immutable. WithBlacklisted returns an extended copy
// rather than mutating the receiver, since the pool shares a base
// Settings across sibling parameters and must not let one branch's
// cycle-guard leak into another.
package strategy
