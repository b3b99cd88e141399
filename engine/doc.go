// Package engine wires registry, preprocess, construct, pool, and
// strategy into the four operations a host application calls: register
// a module (by resource or by stream), finalize registration, and
// instantiate (by config resource or manually by component IRI and a
// string parameter map). See spec.md §6.
package engine
