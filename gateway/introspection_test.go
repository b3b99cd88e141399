package gateway

import (
	"encoding/json"
	"testing"

	"github.com/jeswr/components-go/engine"
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/strategy"
	"github.com/jeswr/components-go/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widgetEngine(t *testing.T) *engine.Engine {
	t.Helper()
	store := resource.NewStore()

	component := store.NewNamedNode("urn:components:widget")
	require.NoError(t, component.SetProperty(vocabulary.RDFType, store.NewNamedNode(vocabulary.ClassClass)))
	component.AddProperty(vocabulary.PredRequireName, resource.NewLiteral("widget", ""))

	mod := store.NewNamedNode("urn:modules:m1")
	require.NoError(t, mod.SetProperty(vocabulary.RDFType, store.NewNamedNode(vocabulary.ClassModule)))
	require.NoError(t, mod.SetProperty(vocabulary.PredComponents, component))

	direct := strategy.NewDirectStrategy()
	e := engine.New(direct, engine.WithStore(store))
	require.NoError(t, e.RegisterModuleResource(mod))
	require.NoError(t, e.FinalizeRegistration())
	return e
}

func TestIntrospection_Execute_Components(t *testing.T) {
	e := widgetEngine(t)
	in, err := NewIntrospection(e, nil)
	require.NoError(t, err)

	resp := in.Execute("{ components { iri } }")
	require.Empty(t, resp.Errors)

	var out struct {
		Components []struct{ IRI string `json:"iri"` } `json:"components"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	require.Len(t, out.Components, 1)
	assert.Equal(t, "urn:components:widget", out.Components[0].IRI)
}

func TestIntrospection_Execute_Health(t *testing.T) {
	e := widgetEngine(t)
	in, err := NewIntrospection(e, nil)
	require.NoError(t, err)

	resp := in.Execute("{ health { healthy degraded cacheSize rejectedCount cacheHitRatio connectedClients droppedEvents } }")
	require.Empty(t, resp.Errors)

	var out struct {
		Health struct {
			Healthy          bool    `json:"healthy"`
			Degraded         bool    `json:"degraded"`
			CacheSize        int     `json:"cacheSize"`
			RejectedCount    int     `json:"rejectedCount"`
			CacheHitRatio    float64 `json:"cacheHitRatio"`
			ConnectedClients int     `json:"connectedClients"`
			DroppedEvents    int     `json:"droppedEvents"`
		} `json:"health"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	assert.True(t, out.Health.Healthy)
	assert.False(t, out.Health.Degraded)
	assert.Equal(t, 0, out.Health.ConnectedClients)
	assert.Equal(t, 0, out.Health.DroppedEvents)
}

// With a broadcaster attached, health surfaces its connected-client
// and dropped-event counters.
func TestIntrospection_Execute_Health_WithBroadcaster(t *testing.T) {
	e := widgetEngine(t)
	b := NewEventBroadcaster(nil)
	in, err := NewIntrospection(e, b)
	require.NoError(t, err)

	resp := in.Execute("{ health { connectedClients droppedEvents } }")
	require.Empty(t, resp.Errors)

	var out struct {
		Health struct {
			ConnectedClients int `json:"connectedClients"`
			DroppedEvents    int `json:"droppedEvents"`
		} `json:"health"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	assert.Equal(t, 0, out.Health.ConnectedClients)
	assert.Equal(t, 0, out.Health.DroppedEvents)
}

func TestIntrospection_Execute_UnknownField(t *testing.T) {
	e := widgetEngine(t)
	in, err := NewIntrospection(e, nil)
	require.NoError(t, err)

	resp := in.Execute("{ nonexistent }")
	require.NotEmpty(t, resp.Errors)
}
