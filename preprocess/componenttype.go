package preprocess

import (
	"github.com/jeswr/components-go/registry"
	"github.com/jeswr/components-go/resource"
)

// resolveComponentType returns the single registered component config
// resolves to via its rdf:type values, plus how many registered
// components it matched. Exactly one match is the only usable outcome
// (spec §4.1, §7 AmbiguousComponentTypes); callers decide how to react
// to 0 or >=2 matches.
func resolveComponentType(config *resource.Resource, reg *registry.Frozen) (component *resource.Resource, matches int) {
	for _, t := range config.Types() {
		if c, ok := reg.Lookup(t.ID); ok {
			component = c
			matches++
		}
	}
	return component, matches
}
