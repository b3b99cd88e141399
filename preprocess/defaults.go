package preprocess

import (
	"github.com/jeswr/components-go/registry"
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/vocabulary"
)

// fillParameterDefaults copies component's declared parameter defaults
// onto config wherever config has no value for that parameter's
// predicate. It is called as a normalisation sub-step by both
// ComponentMapped and ComponentUnmapped, since defaulting is
// orthogonal to which of the two wins the chain (see DESIGN.md).
func fillParameterDefaults(config, component *resource.Resource) {
	params, ok := component.Property(vocabulary.PredParameters)
	if !ok {
		return
	}
	for _, param := range params {
		if _, present := config.Property(param.ID); present {
			continue
		}
		def, ok := param.First(vocabulary.PredParameterDefault)
		if !ok {
			continue
		}
		config.AddProperty(param.ID, def)
	}
}

// defaultHandle carries the resolved component across CanHandle -> Transform.
type defaultHandle struct {
	component *resource.Resource
}

// ParameterDefault is the standalone, independently testable form of
// the parameter-defaulting behaviour (spec §4.2 "Parameter-default"),
// for configs whose type resolves to exactly one component but whose
// requireName is not yet a Literal (so neither ComponentMapped nor
// ComponentUnmapped has run for it yet).
type ParameterDefault struct {
	registry *registry.Frozen
}

// NewParameterDefault builds a ParameterDefault preprocessor bound to reg.
func NewParameterDefault(reg *registry.Frozen) *ParameterDefault {
	return &ParameterDefault{registry: reg}
}

func (p *ParameterDefault) CanHandle(config *resource.Resource) (Handle, bool) {
	if name, ok := config.First(vocabulary.PredRequireName); ok && name.IsLiteral() {
		return nil, false
	}
	component, matches := resolveComponentType(config, p.registry)
	if matches != 1 {
		return nil, false
	}
	return defaultHandle{component: component}, true
}

func (p *ParameterDefault) Transform(config *resource.Resource, handle Handle) (*resource.Resource, error) {
	h := handle.(defaultHandle)
	fillParameterDefaults(config, h.component)
	return config, nil
}
