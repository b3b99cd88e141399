// Package preprocess turns a raw config resource into canonical form
// (spec §4.2): requireName materialised as a Literal, parameter values
// laid out per the owning component's constructor mapping (or its
// parameter declaration order, for unmapped components), defaults
// filled, and list overrides applied.
//
// Built-ins, in NewDefaultChain's order:
//
//   - Override: structural list edits (insert/remove/replace/clear).
//   - Generics: binds a generic component's type parameters.
//   - ComponentMapped: lays out arguments per a declared constructor mapping.
//   - ComponentUnmapped: lays out arguments from declared parameters directly.
//   - ParameterDefault: fills missing defaults for configs the two above skip.
//
// Only the first preprocessor whose CanHandle matches runs (spec §8
// Invariant 3); ComponentMapped and ComponentUnmapped are mutually
// exclusive by construction (one requires constructorArguments, the
// other its absence), so ordering between those two never matters in
// practice, but Override and Generics are deliberately checked first
// since they rewrite inputs the layout preprocessors then consume.
package preprocess
