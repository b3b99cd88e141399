package preprocess

import (
	"testing"

	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerics_CanHandle_RequiresBindings(t *testing.T) {
	store := resource.NewStore()
	config := store.NewNamedNode("urn:configs:c1")

	g := NewGenerics()
	_, ok := g.CanHandle(config)
	assert.False(t, ok)

	binding := store.NewNamedNode("urn:bindings:T=string")
	require.NoError(t, config.SetProperty(vocabulary.PredGenericTypeParameterValues, binding))

	_, ok = g.CanHandle(config)
	assert.True(t, ok)
}

func TestGenerics_Transform_LeavesConfigOtherwiseIntact(t *testing.T) {
	store := resource.NewStore()
	config := store.NewNamedNode("urn:configs:c1")
	binding := store.NewNamedNode("urn:bindings:T=string")
	require.NoError(t, config.SetProperty(vocabulary.PredGenericTypeParameterValues, binding))
	require.NoError(t, config.SetProperty(vocabulary.PredRequireName, resource.NewLiteral("generic-thing", "")))

	g := NewGenerics()
	handle, ok := g.CanHandle(config)
	require.True(t, ok)

	raw, err := g.Transform(config, handle)
	require.NoError(t, err)
	assert.Same(t, config, raw)
	name, _ := raw.First(vocabulary.PredRequireName)
	assert.Equal(t, "generic-thing", name.Value)
}
