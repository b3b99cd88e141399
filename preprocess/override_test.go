package preprocess

import (
	"testing"

	componentsgoerrors "github.com/jeswr/components-go/errors"
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overrideStep(store *resource.Store, class string, target, value *resource.Resource, index string) *resource.Resource {
	step := store.NewBlankNode()
	_ = step.SetProperty(vocabulary.RDFType, store.NewNamedNode(class))
	if target != nil {
		step.AddProperty(vocabulary.PredOverrideTarget, target)
	}
	if value != nil {
		step.AddProperty(vocabulary.PredOverrideValue, value)
	}
	if index != "" {
		step.AddProperty(vocabulary.PredOverrideIndex, resource.NewLiteral(index, ""))
	}
	return step
}

func namedItems(store *resource.Store, names ...string) []*resource.Resource {
	out := make([]*resource.Resource, 0, len(names))
	for _, n := range names {
		out = append(out, store.NewNamedNode(n))
	}
	return out
}

func TestOverride_ListInsertAfter(t *testing.T) {
	store := resource.NewStore()
	items := namedItems(store, "l1", "l2", "l3", "l4")
	newItem := store.NewNamedNode("new")

	step := overrideStep(store, vocabulary.ClassOverrideListInsertAfter, items[1], newItem, "")

	config := store.NewNamedNode("urn:configs:c1")
	values := append(append([]*resource.Resource{}, items...), step)
	require.NoError(t, config.SetProperty("urn:params:pList", values...))
	require.NoError(t, config.SetProperty(vocabulary.PredRequireName, resource.NewLiteral("n", "")))

	p := NewOverride(store)
	handle, ok := p.CanHandle(config)
	require.True(t, ok)
	raw, err := p.Transform(config, handle)
	require.NoError(t, err)

	result, _ := raw.Property("urn:params:pList")
	require.Len(t, result, 5)
	assert.Equal(t, []string{"l1", "l2", "new", "l3", "l4"}, ids(result))
}

func TestOverride_ListInsertAfter_MultiValueSplice(t *testing.T) {
	store := resource.NewStore()
	items := namedItems(store, "l1", "l2", "l3", "l4")
	newA := store.NewNamedNode("newA")
	newB := store.NewNamedNode("newB")
	valueList := resource.NewList(store, []*resource.Resource{newA, newB})

	step := overrideStep(store, vocabulary.ClassOverrideListInsertAfter, items[3], valueList, "")

	config := store.NewNamedNode("urn:configs:c1")
	values := append(append([]*resource.Resource{}, items...), step)
	require.NoError(t, config.SetProperty("urn:params:pList", values...))
	require.NoError(t, config.SetProperty(vocabulary.PredRequireName, resource.NewLiteral("n", "")))

	p := NewOverride(store)
	handle, ok := p.CanHandle(config)
	require.True(t, ok)
	raw, err := p.Transform(config, handle)
	require.NoError(t, err)

	result, _ := raw.Property("urn:params:pList")
	assert.Equal(t, []string{"l1", "l2", "l3", "l4", "newA", "newB"}, ids(result))
}

func TestOverride_ListInsertAt_OutOfRange(t *testing.T) {
	store := resource.NewStore()
	items := namedItems(store, "l1", "l2")
	newItem := store.NewNamedNode("new")

	step := overrideStep(store, vocabulary.ClassOverrideListInsertAt, nil, newItem, "99")

	config := store.NewNamedNode("urn:configs:c1")
	values := append(append([]*resource.Resource{}, items...), step)
	require.NoError(t, config.SetProperty("urn:params:pList", values...))

	p := NewOverride(store)
	handle, ok := p.CanHandle(config)
	require.True(t, ok)
	_, err := p.Transform(config, handle)
	require.Error(t, err)
	assert.True(t, componentsgoerrors.IsKind(err, componentsgoerrors.KindOverrideIndexOutOfRange))
}

func TestOverride_ListRemove(t *testing.T) {
	store := resource.NewStore()
	items := namedItems(store, "l1", "l2", "l3")
	step := overrideStep(store, vocabulary.ClassOverrideListRemove, nil, items[1], "")

	config := store.NewNamedNode("urn:configs:c1")
	values := append(append([]*resource.Resource{}, items...), step)
	require.NoError(t, config.SetProperty("urn:params:pList", values...))

	p := NewOverride(store)
	handle, ok := p.CanHandle(config)
	require.True(t, ok)
	raw, err := p.Transform(config, handle)
	require.NoError(t, err)

	result, _ := raw.Property("urn:params:pList")
	assert.Equal(t, []string{"l1", "l3"}, ids(result))
}

func TestOverride_Clear(t *testing.T) {
	store := resource.NewStore()
	items := namedItems(store, "l1", "l2")
	step := overrideStep(store, vocabulary.ClassOverrideClear, nil, nil, "")

	config := store.NewNamedNode("urn:configs:c1")
	values := append(append([]*resource.Resource{}, items...), step)
	require.NoError(t, config.SetProperty("urn:params:pList", values...))

	p := NewOverride(store)
	handle, ok := p.CanHandle(config)
	require.True(t, ok)
	raw, err := p.Transform(config, handle)
	require.NoError(t, err)

	_, ok = raw.Property("urn:params:pList")
	assert.False(t, ok, "Clear must remove the predicate entirely")
}

func ids(list []*resource.Resource) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.ID
	}
	return out
}
