// Package resource is the read-only-after-mutation projection of a
// parsed RDF graph that the rest of the engine builds on: nodes
// addressable by IRI, each with typed properties and ordered lists,
// per spec §3. It models the "cyclic resource graph with GC'd shared
// references" design note (spec §9) as an arena: Store holds every
// Resource by identifier; a property stores *Resource pointers that
// always resolve back into the same Store, never an owning copy, so
// mutating a Resource in place (as preprocessors do) is visible to
// every other property list that references it.
package resource

import (
	"fmt"

	componentsgoerrors "github.com/jeswr/components-go/errors"
)

// TermKind classifies a Resource the way an RDF term is classified,
// plus the engine's own Variable kind (spec §3).
type TermKind int

const (
	// NamedNode is a resource identified by an absolute IRI.
	NamedNode TermKind = iota
	// BlankNode is a resource identified by a document-scoped blank node label.
	BlankNode
	// Literal is a value resource: a lexical form plus an optional datatype IRI.
	Literal
	// Variable is a placeholder resource resolved at instantiation time
	// against the caller-supplied variable bindings (spec §3).
	Variable
)

// String renders the TermKind for logging and error messages.
func (k TermKind) String() string {
	switch k {
	case NamedNode:
		return "NamedNode"
	case BlankNode:
		return "BlankNode"
	case Literal:
		return "Literal"
	case Variable:
		return "Variable"
	default:
		return "Unknown"
	}
}

// IRI rdf:type, used pervasively for component-type and list-traversal checks.
const rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// Resource is a node in the RDF graph view, or a literal value. Its
// identity (for NamedNode/BlankNode) is the ID field; Literal and
// Variable resources are not arena-addressable by identifier, only
// reachable through a property list that holds them.
type Resource struct {
	ID         string // IRI (NamedNode), blank-node label (BlankNode), empty otherwise
	Kind       TermKind
	Value      string // lexical form (Literal) or variable name (Variable); empty otherwise
	Datatype   string // literal datatype IRI, empty if untyped/non-literal

	// properties maps predicate IRI to an ordered, non-empty list of
	// Resources. A predicate is either wholly absent or holds >=1 value;
	// SetProperty enforces this so callers never observe an empty slice.
	properties map[string][]*Resource
}

// NewResource is the zero-argument constructor used internally by Store
// and by tests that build a graph fragment without a Store (e.g. a
// synthetic manually-instantiated config, spec §9 "instantiate_manually").
func NewResource(id string, kind TermKind) *Resource {
	return &Resource{ID: id, Kind: kind, properties: make(map[string][]*Resource)}
}

// NewLiteral builds a Literal Resource. Literals carry no identity and
// are never registered in a Store; they live only inside a property list.
func NewLiteral(value, datatype string) *Resource {
	return &Resource{Kind: Literal, Value: value, Datatype: datatype, properties: make(map[string][]*Resource)}
}

// NewVariableResource builds a Variable Resource whose Value is the
// name looked up in settings.variables at instantiation time.
func NewVariableResource(name string) *Resource {
	return &Resource{Kind: Variable, Value: name, properties: make(map[string][]*Resource)}
}

// IsLiteral, IsVariable, IsNamedNode, IsBlankNode report the Resource's kind.
func (r *Resource) IsLiteral() bool    { return r.Kind == Literal }
func (r *Resource) IsVariable() bool   { return r.Kind == Variable }
func (r *Resource) IsNamedNode() bool  { return r.Kind == NamedNode }
func (r *Resource) IsBlankNode() bool  { return r.Kind == BlankNode }

// SetProperty replaces the predicate's value list. values must be
// non-empty; this keeps the "absent or non-empty" invariant from spec §3.
func (r *Resource) SetProperty(predicate string, values ...*Resource) error {
	if len(values) == 0 {
		return componentsgoerrors.WrapInvalid(
			fmt.Errorf("predicate %q requires at least one value", predicate),
			"Resource", "SetProperty", "empty value list")
	}
	if r.properties == nil {
		r.properties = make(map[string][]*Resource)
	}
	r.properties[predicate] = values
	return nil
}

// AddProperty appends a single value to the predicate's list, creating
// it if absent. Used by preprocessors splicing override values in place.
func (r *Resource) AddProperty(predicate string, value *Resource) {
	if r.properties == nil {
		r.properties = make(map[string][]*Resource)
	}
	r.properties[predicate] = append(r.properties[predicate], value)
}

// RemoveProperty deletes the predicate entirely.
func (r *Resource) RemoveProperty(predicate string) {
	delete(r.properties, predicate)
}

// Property returns the ordered value list for predicate, and whether it
// is present at all.
func (r *Resource) Property(predicate string) ([]*Resource, bool) {
	values, ok := r.properties[predicate]
	return values, ok
}

// First returns the first value of predicate's list, if present.
func (r *Resource) First(predicate string) (*Resource, bool) {
	values, ok := r.properties[predicate]
	if !ok || len(values) == 0 {
		return nil, false
	}
	return values[0], true
}

// Properties returns every predicate currently set on the resource, for
// iteration (e.g. the gateway's introspection surface). The returned
// map shares the underlying slices with the resource; callers must
// treat it as read-only.
func (r *Resource) Properties() map[string][]*Resource {
	return r.properties
}

// Types returns the NamedNode values of rdf:type, i.e. the declared
// types this resource claims membership in.
func (r *Resource) Types() []*Resource {
	values, ok := r.properties[rdfType]
	if !ok {
		return nil
	}
	return values
}

// IsA tests type membership over the union of declared rdf:type values
// (spec §3: "Type membership is tested via an isA(typeIri) predicate
// over the union of declared rdf:type values").
func (r *Resource) IsA(typeIRI string) bool {
	for _, t := range r.Types() {
		if t.ID == typeIRI {
			return true
		}
	}
	return false
}

// String renders a short debug form: IRI/blank label for nodes, a
// quoted lexical form for literals, "?name" for variables.
func (r *Resource) String() string {
	switch r.Kind {
	case Literal:
		if r.Datatype != "" {
			return fmt.Sprintf("%q^^%s", r.Value, r.Datatype)
		}
		return fmt.Sprintf("%q", r.Value)
	case Variable:
		return "?" + r.Value
	default:
		return r.ID
	}
}
