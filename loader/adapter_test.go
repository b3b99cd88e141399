package loader

import (
	"context"
	"strings"
	"testing"

	"github.com/geoknoesis/rdf-go"

	"github.com/jeswr/components-go/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const turtleFixture = `
@prefix ex: <http://example.org/> .
ex:widget ex:label "hello" .
ex:widget ex:next _:b1 .
_:b1 ex:label "again" .
`

func TestRDFAdapter_Import_PopulatesStore(t *testing.T) {
	store := resource.NewStore()
	adapter := NewRDFAdapter(store, rdf.FormatTurtle)

	errCh := adapter.Import(context.Background(), strings.NewReader(turtleFixture))
	require.NoError(t, <-errCh)

	widget, ok := store.Get("http://example.org/widget")
	require.True(t, ok)

	values, ok := widget.Property("http://example.org/label")
	require.True(t, ok)
	require.Len(t, values, 1)
	assert.Equal(t, "hello", values[0].Value)

	nextValues, ok := widget.Property("http://example.org/next")
	require.True(t, ok)
	require.Len(t, nextValues, 1)
	blank := nextValues[0]
	assert.True(t, blank.IsBlankNode())

	blankValues, ok := blank.Property("http://example.org/label")
	require.True(t, ok)
	require.Len(t, blankValues, 1)
	assert.Equal(t, "again", blankValues[0].Value)

	resources := adapter.Resources()
	assert.Contains(t, resources, "http://example.org/widget")
}

func TestRDFAdapter_Import_PropagatesParseError(t *testing.T) {
	store := resource.NewStore()
	adapter := NewRDFAdapter(store, rdf.FormatTurtle)

	errCh := adapter.Import(context.Background(), strings.NewReader("not valid turtle {{{"))
	err := <-errCh
	assert.Error(t, err)
}
