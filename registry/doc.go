// Package registry implements the two-phase builder/frozen-handle
// pattern for component and module registration (spec §4.1, §9).
//
// # Overview
//
//	r := registry.New()
//	_ = r.RegisterModule(moduleResource)
//	frozen, err := r.Finalize()
//	if err != nil {
//	    // inheritance or type-validation failure
//	}
//	component, ok := frozen.Lookup("urn:components:lexer")
//
// # Two Phases
//
// Registry is the mutable builder: RegisterModule and
// RegisterModuleFromStream may be called any number of times before
// Finalize. Finalize runs parameter and constructor-argument
// inheritance once, then returns a *Frozen handle; all further
// registration calls on the same Registry fail with RegistryFrozen.
// EnsureFinalized makes this idempotent for callers that don't track
// whether Finalize has already run.
//
// # Concurrency
//
// RegisterModulesFromStreams ingests multiple triple streams
// concurrently via errgroup; each individual RegisterModuleFromStream
// call is mutex-guarded, and this is only ever safe before Finalize —
// once the Frozen handle exists, the registry is read-only and no
// further locking is required.
package registry
