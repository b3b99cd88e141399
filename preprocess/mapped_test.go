package preprocess

import (
	"testing"

	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentMapped_LeafLiteral(t *testing.T) {
	store := resource.NewStore()

	lexer := classComponent(store, "urn:components:lexer")
	require.NoError(t, lexer.SetProperty(vocabulary.PredRequireName, resource.NewLiteral("n3", "")))
	require.NoError(t, lexer.SetProperty(vocabulary.PredRequireElement, resource.NewLiteral("Lexer", "")))

	paramComments := resource.NewResource("urn:params:comments", resource.BlankNode)
	require.NoError(t, paramComments.SetProperty(vocabulary.PredParameterUnique, resource.NewLiteral("true", "")))
	require.NoError(t, lexer.SetProperty(vocabulary.PredParameters, paramComments))

	entry := store.NewBlankNode()
	entry.AddProperty(vocabulary.PredKey, resource.NewLiteral("comments", ""))
	onParamValue := store.NewBlankNode()
	onParamValue.AddProperty(vocabulary.PredOnParameter, paramComments)
	entry.AddProperty(vocabulary.PredValue, onParamValue)

	mappingObj := store.NewBlankNode()
	require.NoError(t, mappingObj.SetProperty(vocabulary.PredFields, entry))

	argsList := resource.NewList(store, []*resource.Resource{mappingObj})
	require.NoError(t, lexer.SetProperty(vocabulary.PredConstructorArguments, argsList))

	frozen := newFrozenRegistry(t, store, lexer)

	config := store.NewNamedNode("urn:configs:c1")
	require.NoError(t, config.SetProperty(vocabulary.RDFType, lexer))
	require.NoError(t, config.SetProperty(paramComments.ID, resource.NewLiteral("true", "")))

	mp := NewComponentMapped(frozen, store)
	handle, ok := mp.CanHandle(config)
	require.True(t, ok)

	raw, err := mp.Transform(config, handle)
	require.NoError(t, err)

	name, ok := raw.First(vocabulary.PredRequireName)
	require.True(t, ok)
	assert.Equal(t, "n3", name.Value)
	element, ok := raw.First(vocabulary.PredRequireElement)
	require.True(t, ok)
	assert.Equal(t, "Lexer", element.Value)

	argsProp, ok := raw.Property(vocabulary.PredConstructorArguments)
	require.True(t, ok)
	require.Len(t, argsProp, 1)

	members := argsProp
	_, isListCell := members[0].First(vocabulary.RDFFirst)
	require.False(t, isListCell)
	require.Len(t, members, 1)

	fields, ok := members[0].Property(vocabulary.PredFields)
	require.True(t, ok)
	require.Len(t, fields, 1)

	key, _ := fields[0].First(vocabulary.PredKey)
	assert.Equal(t, "comments", key.Value)
	val, _ := fields[0].First(vocabulary.PredValue)
	assert.Equal(t, "true", val.Value)
}

func TestComponentUnmapped_UsesDeclarationOrder(t *testing.T) {
	store := resource.NewStore()

	comp := classComponent(store, "urn:components:plain")
	require.NoError(t, comp.SetProperty(vocabulary.PredRequireName, resource.NewLiteral("plain-thing", "")))

	pHost := resource.NewResource("urn:params:host", resource.BlankNode)
	require.NoError(t, pHost.SetProperty(vocabulary.PredParameterUnique, resource.NewLiteral("true", "")))
	pPort := resource.NewResource("urn:params:port", resource.BlankNode)
	require.NoError(t, pPort.SetProperty(vocabulary.PredParameterUnique, resource.NewLiteral("true", "")))
	require.NoError(t, comp.SetProperty(vocabulary.PredParameters, pHost, pPort))

	frozen := newFrozenRegistry(t, store, comp)

	config := store.NewNamedNode("urn:configs:c1")
	require.NoError(t, config.SetProperty(vocabulary.RDFType, comp))
	require.NoError(t, config.SetProperty(pHost.ID, resource.NewLiteral("localhost", "")))
	require.NoError(t, config.SetProperty(pPort.ID, resource.NewLiteral("8080", "")))

	up := NewComponentUnmapped(frozen, store)
	handle, ok := up.CanHandle(config)
	require.True(t, ok)

	raw, err := up.Transform(config, handle)
	require.NoError(t, err)

	argsProp, ok := raw.Property(vocabulary.PredConstructorArguments)
	require.True(t, ok)
	require.Len(t, argsProp, 1)

	fields, ok := argsProp[0].Property(vocabulary.PredFields)
	require.True(t, ok)
	require.Len(t, fields, 2)

	key0, _ := fields[0].First(vocabulary.PredKey)
	assert.Equal(t, pHost.ID, key0.Value)
	key1, _ := fields[1].First(vocabulary.PredKey)
	assert.Equal(t, pPort.ID, key1.Value)
}

func TestComponentMapped_And_ComponentUnmapped_MutuallyExclusive(t *testing.T) {
	store := resource.NewStore()

	withArgs := classComponent(store, "urn:components:withargs")
	argsList := resource.NewList(store, []*resource.Resource{store.NewBlankNode()})
	require.NoError(t, withArgs.SetProperty(vocabulary.PredConstructorArguments, argsList))

	withoutArgs := classComponent(store, "urn:components:withoutargs")

	frozen := newFrozenRegistry(t, store, withArgs, withoutArgs)

	mp := NewComponentMapped(frozen, store)
	up := NewComponentUnmapped(frozen, store)

	c1 := store.NewNamedNode("urn:configs:c1")
	require.NoError(t, c1.SetProperty(vocabulary.RDFType, withArgs))
	_, ok := mp.CanHandle(c1)
	assert.True(t, ok)
	_, ok = up.CanHandle(c1)
	assert.False(t, ok)

	c2 := store.NewNamedNode("urn:configs:c2")
	require.NoError(t, c2.SetProperty(vocabulary.RDFType, withoutArgs))
	_, ok = mp.CanHandle(c2)
	assert.False(t, ok)
	_, ok = up.CanHandle(c2)
	assert.True(t, ok)
}
