package registry

import (
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/vocabulary"
)

// Frozen is the immutable handle produced by Registry.Finalize. Every
// downstream component (preprocess, construct, pool) depends only on
// Frozen, never on the mutable Registry builder, so the registry is
// read-only after finalisation (spec §5 "Shared resources").
type Frozen struct {
	components map[string]*resource.Resource
	modules    map[string]*resource.Resource
	state      ModuleState
}

// Lookup resolves a component definition by IRI.
func (f *Frozen) Lookup(iri string) (*resource.Resource, bool) {
	c, ok := f.components[iri]
	return c, ok
}

// ListAvailable returns every registered component IRI, mirroring the
// teacher's componentregistry.Registry.ListAvailable introspection
// surface (spec §9 supplemented feature).
func (f *Frozen) ListAvailable() []string {
	out := make([]string, 0, len(f.components))
	for iri := range f.components {
		out = append(out, iri)
	}
	return out
}

// ListComponentTypes returns the distinct rdf:type IRIs declared across
// every registered component.
func (f *Frozen) ListComponentTypes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range f.components {
		for _, t := range c.Types() {
			if !seen[t.ID] {
				seen[t.ID] = true
				out = append(out, t.ID)
			}
		}
	}
	return out
}

// ModuleState returns the read-only bundle of require-name overrides
// and import paths discovered from registered modules (spec §6).
func (f *Frozen) ModuleState() ModuleState {
	return f.state
}

// ModuleState is a read-only bundle of discovered require-name
// overrides and import paths (spec §6 "Collaborator interfaces
// consumed by the core").
type ModuleState interface {
	// RequireNameOverride returns the module-declared override for a
	// component's require name, if one was declared on the module.
	RequireNameOverride(componentIRI string) (string, bool)
	// ImportPaths lists every import path declared by a registered module.
	ImportPaths() []string
}

type moduleState struct {
	overrides map[string]string
	paths     []string
}

func (m *moduleState) RequireNameOverride(componentIRI string) (string, bool) {
	v, ok := m.overrides[componentIRI]
	return v, ok
}

func (m *moduleState) ImportPaths() []string {
	return m.paths
}

// buildModuleState scans every registered module for an importPath
// literal and a per-component requireName override declared on the
// module itself (as opposed to the component's own requireName).
func buildModuleState(modules map[string]*resource.Resource) ModuleState {
	state := &moduleState{overrides: make(map[string]string)}
	for _, mod := range modules {
		if path, ok := mod.First(vocabulary.PredImportPath); ok && path.IsLiteral() {
			state.paths = append(state.paths, path.Value)
		}
		components, _ := mod.Property(vocabulary.PredComponents)
		for _, c := range components {
			if rn, ok := c.First(vocabulary.PredRequireName); ok && rn.IsLiteral() {
				state.overrides[c.ID] = rn.Value
			}
		}
	}
	return state
}
