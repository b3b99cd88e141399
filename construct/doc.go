// Package construct walks a canonical config into a resolved argument
// tree, translating each value node per spec §4.3:
//
//	Literal                       -> strategy.CreatePrimitive
//	Variable                      -> strategy.ResolveVariable
//	object with fields            -> strategy.CreateHash
//	object with elements, or list -> strategy.CreateArray
//	anything else (a NamedNode/BlankNode) -> recurse into the pool
//
// The constructor never interprets the resulting strategy.Instance
// values further; it only assembles them into the CreateInstanceRequest
// the strategy's terminal CreateInstance step consumes.
package construct
