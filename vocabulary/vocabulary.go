// Package vocabulary defines the JSON-LD context terms the engine
// recognises when reading component, module, and config resources, per
// spec §6. It is a pure constant registry: no parsing, no network
// calls, nothing that touches a graph.
package vocabulary

// Namespace is the base IRI for the components vocabulary used by this
// engine's own built-in terms (override steps, parameter shapes). User
// modules are free to describe components under any namespace; the
// engine only cares about the type IRIs and predicates listed below.
const Namespace = "https://w3id.org/components-go#"

// Class IRIs recognised by the registry when registering modules and
// components (spec §4.1, §6).
const (
	ClassModule           = Namespace + "Module"
	ClassAbstractClass     = Namespace + "AbstractClass"
	ClassClass             = Namespace + "Class"
	ClassComponentInstance = Namespace + "ComponentInstance"
	ClassVariable          = Namespace + "Variable"
	ClassObjectMapping     = Namespace + "ObjectMapping"
)

// RecognisedComponentTypes lists the type IRIs register_module accepts
// for a component resource (spec §4.1: "Fails with InvalidComponent if
// a component is not of one of the recognised type IRIs").
var RecognisedComponentTypes = []string{ClassAbstractClass, ClassClass, ClassComponentInstance}

// Predicate IRIs carrying component/config structure.
const (
	PredParameters            = Namespace + "parameters"
	PredParameterDefault       = Namespace + "default"
	PredParameterRange         = Namespace + "range"
	PredParameterUnique        = Namespace + "unique"
	PredConstructorArguments   = Namespace + "constructorArguments"
	PredModule                 = Namespace + "module"
	PredInheritValues          = Namespace + "inheritValues"
	PredRequireName            = Namespace + "requireName"
	PredRequireElement         = Namespace + "requireElement"
	PredRequireNoConstructor   = Namespace + "requireNoConstructor"
	PredOnParameter            = Namespace + "onParameter"
	PredFields                 = Namespace + "fields"
	PredKey                    = Namespace + "key"
	PredValue                  = Namespace + "value"
	PredElements               = Namespace + "elements"
	PredComponents             = Namespace + "components"
	PredImportPath             = Namespace + "importPath"
	PredGenericTypeParameters      = Namespace + "genericTypeParameters"
	PredGenericTypeParameterValues = Namespace + "genericTypeParameterValues"
)

// Override-step type IRIs and their predicates (spec §4.2 "Override steps").
const (
	ClassOverrideListInsertBefore = Namespace + "OverrideListInsertBefore"
	ClassOverrideListInsertAfter  = Namespace + "OverrideListInsertAfter"
	ClassOverrideListInsertAt     = Namespace + "OverrideListInsertAt"
	ClassOverrideListRemove       = Namespace + "OverrideListRemove"
	ClassOverrideReplace          = Namespace + "OverrideReplace"
	ClassOverrideClear            = Namespace + "OverrideClear"

	PredOverrideParameter = Namespace + "overrideParameter"
	PredOverrideTarget    = Namespace + "overrideTarget"
	PredOverrideValue     = Namespace + "overrideValue"
	PredOverrideIndex     = Namespace + "overrideIndex"
)

// RDF core terms the resource package and preprocessors consult directly.
const (
	RDFType  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	RDFFirst = "http://www.w3.org/1999/02/22-rdf-syntax-ns#first"
	RDFRest  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#rest"
	RDFNil   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil"
)

// RequiredContextTerms is the minimum set of JSON-LD context terms an
// authoring context must define for this engine to make sense of a
// config graph, per spec §6. It is exposed for loader implementations
// that validate a context before accepting a document; the engine
// itself only consults the expanded IRIs above.
var RequiredContextTerms = []string{
	"Module",
	"Component",
	"AbstractClass",
	"Class",
	"ComponentInstance",
	"Variable",
	"ObjectMapping",
	"parameters",
	"constructorArguments",
	"requireName",
	"requireElement",
	"requireNoConstructor",
	"inheritValues",
	"default",
}

// Term is a single vocabulary entry, consulted by gateway's
// introspection endpoint to describe the terms it understands without
// shipping a JSON-LD context file.
type Term struct {
	IRI         string
	Label       string
	Description string
}

// Registry is a functional-options-built, read-only lookup from a
// short label to its Term, used by gateway's introspection surface.
type Registry struct {
	terms map[string]Term
}

// Option configures a Registry during construction.
type Option func(*Registry)

// WithTerm adds a vocabulary term under the given label.
func WithTerm(label string, term Term) Option {
	return func(r *Registry) {
		r.terms[label] = term
	}
}

// NewRegistry builds a Registry pre-populated with the built-in terms
// this engine recognises, then applies any additional options.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{terms: map[string]Term{
		"Module":                {ClassModule, "Module", "a bundle of component definitions"},
		"AbstractClass":         {ClassAbstractClass, "AbstractClass", "a non-instantiable component definition"},
		"Class":                 {ClassClass, "Class", "an instantiable component definition"},
		"ComponentInstance":     {ClassComponentInstance, "ComponentInstance", "a pre-built component instance"},
		"Variable":              {ClassVariable, "Variable", "a placeholder resolved against settings.variables"},
		"ObjectMapping":         {ClassObjectMapping, "ObjectMapping", "a constructor-argument field mapping object"},
		"parameters":            {PredParameters, "parameters", "a component's declared parameters"},
		"constructorArguments":  {PredConstructorArguments, "constructorArguments", "positional/keyword constructor argument mapping"},
		"requireName":           {PredRequireName, "requireName", "the module-relative name the strategy requires"},
		"requireElement":        {PredRequireElement, "requireElement", "a named export within the required module"},
		"requireNoConstructor":  {PredRequireNoConstructor, "requireNoConstructor", "skip invoking a constructor function"},
		"inheritValues":         {PredInheritValues, "inheritValues", "other components to inherit parameters/fields from"},
		"default":               {PredParameterDefault, "default", "a parameter's default value"},
	}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lookup returns the Term registered under label, if any.
func (r *Registry) Lookup(label string) (Term, bool) {
	t, ok := r.terms[label]
	return t, ok
}

// Terms returns every registered term, in no particular order.
func (r *Registry) Terms() []Term {
	out := make([]Term, 0, len(r.terms))
	for _, t := range r.terms {
		out = append(out, t)
	}
	return out
}
