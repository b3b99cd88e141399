package preprocess

import (
	"github.com/jeswr/components-go/registry"
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/vocabulary"
)

// ComponentUnmapped triggers when config's types resolve to exactly
// one registered component that declares no constructorArguments
// mapping; its raw config arguments list is the component's parameter
// list in declaration order (spec §4.2).
type ComponentUnmapped struct {
	registry *registry.Frozen
	store    *resource.Store
}

// NewComponentUnmapped builds a ComponentUnmapped preprocessor.
func NewComponentUnmapped(reg *registry.Frozen, store *resource.Store) *ComponentUnmapped {
	return &ComponentUnmapped{registry: reg, store: store}
}

func (p *ComponentUnmapped) CanHandle(config *resource.Resource) (Handle, bool) {
	component, matches := resolveComponentType(config, p.registry)
	if matches != 1 {
		return nil, false
	}
	if _, ok := component.Property(vocabulary.PredConstructorArguments); ok {
		return nil, false
	}
	return mappedHandle{component: component}, true
}

// Transform copies the component's require directives, fills
// parameter defaults, then builds an arguments list of {fields:[{key,
// value}]} wrapping each declared parameter's own value(s) under its
// own IRI as key, so the constructor's keyword path resolves it the
// same way a mapped component's fields entries would. When no declared
// parameter has a value, constructorArguments is removed instead.
func (p *ComponentUnmapped) Transform(config *resource.Resource, handle Handle) (*resource.Resource, error) {
	h := handle.(mappedHandle)
	component := h.component

	if err := copyRequireDirectives(config, component); err != nil {
		return nil, err
	}
	fillParameterDefaults(config, component)

	params, _ := component.Property(vocabulary.PredParameters)
	fields := make([]*resource.Resource, 0, len(params))
	for _, param := range params {
		values, ok := config.Property(param.ID)
		if !ok || len(values) == 0 {
			continue
		}
		var value *resource.Resource
		if isUniqueParameter(param) {
			value = values[0]
		} else {
			value = resource.NewList(p.store, values)
		}
		entry := p.store.NewBlankNode()
		entry.AddProperty(vocabulary.PredKey, resource.NewLiteral(param.ID, ""))
		entry.AddProperty(vocabulary.PredValue, value)
		fields = append(fields, entry)
	}

	if len(fields) == 0 {
		config.RemoveProperty(vocabulary.PredConstructorArguments)
		return config, nil
	}

	obj := p.store.NewBlankNode()
	_ = obj.SetProperty(vocabulary.PredFields, fields...)
	_ = config.SetProperty(vocabulary.PredConstructorArguments, obj)
	return config, nil
}
