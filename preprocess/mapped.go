package preprocess

import (
	componentsgoerrors "github.com/jeswr/components-go/errors"
	"github.com/jeswr/components-go/registry"
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/vocabulary"
)

type mappedHandle struct {
	component *resource.Resource
}

// ComponentMapped triggers when config's types resolve to exactly one
// registered component declaring constructorArguments, and lays out
// the config's parameter values according to that mapping (spec §4.2).
type ComponentMapped struct {
	registry *registry.Frozen
	store    *resource.Store
}

// NewComponentMapped builds a ComponentMapped preprocessor.
func NewComponentMapped(reg *registry.Frozen, store *resource.Store) *ComponentMapped {
	return &ComponentMapped{registry: reg, store: store}
}

func (p *ComponentMapped) CanHandle(config *resource.Resource) (Handle, bool) {
	component, matches := resolveComponentType(config, p.registry)
	if matches != 1 {
		return nil, false
	}
	if _, ok := component.Property(vocabulary.PredConstructorArguments); !ok {
		return nil, false
	}
	return mappedHandle{component: component}, true
}

// Transform copies the component's requireName/requireElement/
// requireNoConstructor onto config, fills missing parameter defaults,
// then resolves constructorArguments into a per-instance "arguments"
// list with every onParameter reference substituted for the matching
// value(s) already present on config.
func (p *ComponentMapped) Transform(config *resource.Resource, handle Handle) (*resource.Resource, error) {
	h := handle.(mappedHandle)
	component := h.component

	if err := copyRequireDirectives(config, component); err != nil {
		return nil, err
	}
	fillParameterDefaults(config, component)

	argsList, _ := component.Property(vocabulary.PredConstructorArguments)
	members, err := argsList[0].List()
	if err != nil {
		return nil, componentsgoerrors.InvalidConstructorArguments(component.ID, err.Error())
	}

	resolved := make([]*resource.Resource, 0, len(members))
	for _, member := range members {
		out, err := resolveMappingNode(p.store, member, config)
		if err != nil {
			return nil, err
		}
		if out == nil {
			continue
		}
		resolved = append(resolved, out)
	}

	if len(resolved) == 0 {
		config.RemoveProperty(vocabulary.PredConstructorArguments)
	} else {
		_ = config.SetProperty(vocabulary.PredConstructorArguments, resolved...)
	}
	return config, nil
}

// copyRequireDirectives copies the component's requireName,
// requireElement, and requireNoConstructor onto config, unless config
// already declares its own (an explicit override by the instance).
func copyRequireDirectives(config, component *resource.Resource) error {
	for _, pred := range []string{vocabulary.PredRequireName, vocabulary.PredRequireElement, vocabulary.PredRequireNoConstructor} {
		if _, present := config.Property(pred); present {
			continue
		}
		if v, ok := component.First(pred); ok {
			config.AddProperty(pred, v)
		}
	}
	return nil
}

// resolveMappingNode substitutes onParameter references inside a
// constructorArguments mapping node against the instance config's
// parameter values, recursing through fields/elements/nested-list
// structure. Plain values (Literal, Variable, config references) pass
// through unchanged, matching the §4.3 value-shape table the
// constructor walks afterward. A nil result means "no value available,
// skip this entry".
func resolveMappingNode(store *resource.Store, node *resource.Resource, config *resource.Resource) (*resource.Resource, error) {
	if node == nil {
		return nil, nil
	}

	if param, ok := node.First(vocabulary.PredOnParameter); ok {
		values, ok := config.Property(param.ID)
		if !ok || len(values) == 0 {
			return nil, nil
		}
		if isUniqueParameter(param) {
			return values[0], nil
		}
		return resource.NewList(store, values), nil
	}

	if fields, ok := node.Property(vocabulary.PredFields); ok {
		resolvedFields := make([]*resource.Resource, 0, len(fields))
		for _, entry := range fields {
			key, ok := entry.First(vocabulary.PredKey)
			if !ok {
				return nil, componentsgoerrors.MalformedMappingKey(node.ID, "fields entry missing key")
			}
			if !key.IsLiteral() {
				return nil, componentsgoerrors.MalformedMappingKey(node.ID, "fields entry key must be a Literal")
			}
			val, ok := entry.First(vocabulary.PredValue)
			if !ok {
				continue
			}
			resolvedVal, err := resolveMappingNode(store, val, config)
			if err != nil {
				return nil, err
			}
			if resolvedVal == nil {
				continue
			}
			newEntry := store.NewBlankNode()
			newEntry.AddProperty(vocabulary.PredKey, key)
			newEntry.AddProperty(vocabulary.PredValue, resolvedVal)
			resolvedFields = append(resolvedFields, newEntry)
		}
		out := store.NewBlankNode()
		if len(resolvedFields) > 0 {
			out.SetProperty(vocabulary.PredFields, resolvedFields...)
		}
		return out, nil
	}

	if elements, ok := node.Property(vocabulary.PredElements); ok {
		resolvedElements := make([]*resource.Resource, 0, len(elements))
		for _, el := range elements {
			resolvedEl, err := resolveMappingNode(store, el, config)
			if err != nil {
				return nil, err
			}
			if resolvedEl == nil {
				continue
			}
			resolvedElements = append(resolvedElements, resolvedEl)
		}
		out := store.NewBlankNode()
		if len(resolvedElements) > 0 {
			out.SetProperty(vocabulary.PredElements, resolvedElements...)
		}
		return out, nil
	}

	if _, ok := node.First(vocabulary.RDFFirst); ok {
		members, err := node.List()
		if err != nil {
			return nil, err
		}
		resolvedMembers := make([]*resource.Resource, 0, len(members))
		for _, m := range members {
			resolvedM, err := resolveMappingNode(store, m, config)
			if err != nil {
				return nil, err
			}
			if resolvedM == nil {
				continue
			}
			resolvedMembers = append(resolvedMembers, resolvedM)
		}
		return resource.NewList(store, resolvedMembers), nil
	}

	return node, nil
}

func isUniqueParameter(param *resource.Resource) bool {
	unique, ok := param.First(vocabulary.PredParameterUnique)
	return ok && unique.IsLiteral() && unique.Value == "true"
}
