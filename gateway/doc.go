// Package gateway is an optional introspection surface over the
// frozen registry and live constructor-pool cache: a hand-rolled (no
// codegen) GraphQL-flavored query executor plus a websocket stream of
// pool lifecycle events. It is a debugging/operational surface only
// and is never on the instantiation critical path — engine.Engine
// works without a gateway attached.
package gateway
