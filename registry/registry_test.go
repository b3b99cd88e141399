package registry

import (
	"context"
	"testing"

	componentsgoerrors "github.com/jeswr/components-go/errors"
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classComponent(store *resource.Store, iri string) *resource.Resource {
	c := store.NewNamedNode(iri)
	_ = c.SetProperty("http://www.w3.org/1999/02/22-rdf-syntax-ns#type", store.NewNamedNode(vocabulary.ClassClass))
	return c
}

func newModuleWithComponents(store *resource.Store, moduleIRI string, components ...*resource.Resource) *resource.Resource {
	mod := store.NewNamedNode(moduleIRI)
	_ = mod.SetProperty("http://www.w3.org/1999/02/22-rdf-syntax-ns#type", store.NewNamedNode(vocabulary.ClassModule))
	vals := make([]*resource.Resource, 0, len(components))
	for _, c := range components {
		vals = append(vals, c)
	}
	_ = mod.SetProperty(vocabulary.PredComponents, vals...)
	return mod
}

func TestRegistry_RegisterModule_InvalidComponent(t *testing.T) {
	store := resource.NewStore()
	bogus := store.NewNamedNode("urn:components:bogus")
	// no rdf:type at all, so not recognised
	mod := newModuleWithComponents(store, "urn:modules:m1", bogus)

	r := New()
	err := r.RegisterModule(mod)

	require.Error(t, err)
	assert.True(t, componentsgoerrors.IsKind(err, componentsgoerrors.KindInvalidComponent))
}

func TestRegistry_RegisterModule_SetsModuleBackReference(t *testing.T) {
	store := resource.NewStore()
	c := classComponent(store, "urn:components:lexer")
	mod := newModuleWithComponents(store, "urn:modules:m1", c)

	r := New()
	require.NoError(t, r.RegisterModule(mod))

	backRef, ok := c.First(vocabulary.PredModule)
	require.True(t, ok)
	assert.Equal(t, mod, backRef)
}

func TestRegistry_Finalize_FreezesRegistry(t *testing.T) {
	store := resource.NewStore()
	c := classComponent(store, "urn:components:lexer")
	mod := newModuleWithComponents(store, "urn:modules:m1", c)

	r := New()
	require.NoError(t, r.RegisterModule(mod))

	frozen, err := r.Finalize()
	require.NoError(t, err)

	_, ok := frozen.Lookup("urn:components:lexer")
	assert.True(t, ok)

	// Invariant 5: after Finalize, registration fails with RegistryFrozen
	// and the component map is not further mutated.
	other := classComponent(store, "urn:components:other")
	mod2 := newModuleWithComponents(store, "urn:modules:m2", other)

	err = r.RegisterModule(mod2)
	require.Error(t, err)
	assert.True(t, componentsgoerrors.IsKind(err, componentsgoerrors.KindRegistryFrozen))

	_, ok = frozen.Lookup("urn:components:other")
	assert.False(t, ok, "component map must not mutate after Finalize")
}

func TestRegistry_EnsureFinalized_Idempotent(t *testing.T) {
	store := resource.NewStore()
	c := classComponent(store, "urn:components:lexer")
	mod := newModuleWithComponents(store, "urn:modules:m1", c)

	r := New()
	require.NoError(t, r.RegisterModule(mod))

	f1, err := r.EnsureFinalized()
	require.NoError(t, err)
	f2, err := r.EnsureFinalized()
	require.NoError(t, err)

	assert.Same(t, f1, f2)
}

func TestRegistry_ParameterInheritance(t *testing.T) {
	store := resource.NewStore()

	base := classComponent(store, "urn:components:base")
	pBase := resource.NewResource("urn:params:host", resource.BlankNode)
	require.NoError(t, base.SetProperty(vocabulary.PredParameters, pBase))

	child := classComponent(store, "urn:components:child")
	pChild := resource.NewResource("urn:params:port", resource.BlankNode)
	require.NoError(t, child.SetProperty(vocabulary.PredParameters, pChild))
	require.NoError(t, child.SetProperty(vocabulary.PredInheritValues, base))

	mod := newModuleWithComponents(store, "urn:modules:m1", base, child)

	r := New()
	require.NoError(t, r.RegisterModule(mod))
	_, err := r.Finalize()
	require.NoError(t, err)

	params, ok := child.Property(vocabulary.PredParameters)
	require.True(t, ok)
	assert.Len(t, params, 2, "child should inherit base's parameter in addition to its own")
}

func TestRegistry_ParameterInheritance_IdentityNotDuplicated(t *testing.T) {
	store := resource.NewStore()

	base := classComponent(store, "urn:components:base")
	shared := resource.NewResource("urn:params:shared", resource.BlankNode)
	require.NoError(t, base.SetProperty(vocabulary.PredParameters, shared))

	child := classComponent(store, "urn:components:child")
	require.NoError(t, child.SetProperty(vocabulary.PredParameters, shared))
	require.NoError(t, child.SetProperty(vocabulary.PredInheritValues, base))

	mod := newModuleWithComponents(store, "urn:modules:m1", base, child)

	r := New()
	require.NoError(t, r.RegisterModule(mod))
	_, err := r.Finalize()
	require.NoError(t, err)

	params, _ := child.Property(vocabulary.PredParameters)
	assert.Len(t, params, 1, "identical parameter already present by identity must not be duplicated")
}

func TestRegistry_ConstructorArguments_MalformedInheritTarget(t *testing.T) {
	store := resource.NewStore()

	malformedTarget := store.NewBlankNode() // no ObjectMapping type, no fields/inheritValues/onParameter

	obj := store.NewBlankNode()
	require.NoError(t, obj.SetProperty(vocabulary.PredInheritValues, malformedTarget))

	c := classComponent(store, "urn:components:broken")
	argsList := resource.NewList(store, []*resource.Resource{obj})
	require.NoError(t, c.SetProperty(vocabulary.PredConstructorArguments, argsList))

	mod := newModuleWithComponents(store, "urn:modules:m1", c)

	r := New()
	require.NoError(t, r.RegisterModule(mod))

	_, err := r.Finalize()
	require.Error(t, err)
	assert.True(t, componentsgoerrors.IsKind(err, componentsgoerrors.KindMalformedObjectMapping))
}

func TestRegistry_RegisterModulesFromStreams_Concurrent(t *testing.T) {
	store1 := resource.NewStore()
	c1 := classComponent(store1, "urn:components:a")
	newModuleWithComponents(store1, "urn:modules:a", c1)

	store2 := resource.NewStore()
	c2 := classComponent(store2, "urn:components:b")
	newModuleWithComponents(store2, "urn:modules:b", c2)

	r := New()
	err := r.RegisterModulesFromStreams(context.Background(), store1, store2)
	require.NoError(t, err)

	frozen, err := r.Finalize()
	require.NoError(t, err)

	_, ok := frozen.Lookup("urn:components:a")
	assert.True(t, ok)
	_, ok = frozen.Lookup("urn:components:b")
	assert.True(t, ok)
}
