package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/jeswr/components-go/engine"
)

const introspectionSchema = `
type Component {
  iri: String!
}

type Health {
  healthy: Boolean!
  degraded: Boolean!
  message: String!
  cacheSize: Int!
  rejectedCount: Int!
  cacheHitRatio: Float!
  connectedClients: Int!
  droppedEvents: Int!
}

type Query {
  components: [Component!]!
  componentTypes: [Component!]!
  health: Health!
}
`

// Introspection is a hand-rolled (no codegen) query executor over the
// frozen registry and pool cache, mirroring the teacher's Phase 1
// schema-driven GraphQL infrastructure without its NATS/resolver
// machinery: there is no remote backend here, every field resolves
// directly against engine.Engine.
type Introspection struct {
	engine      *engine.Engine
	broadcaster *EventBroadcaster
	schema      *ast.Schema
}

// NewIntrospection loads the fixed introspection schema and binds it
// to e. The schema never changes at runtime, so loading happens once.
// broadcaster may be nil, in which case the connectedClients and
// droppedEvents fields report zero.
func NewIntrospection(e *engine.Engine, broadcaster *EventBroadcaster) (*Introspection, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "introspection.graphql", Input: introspectionSchema})
	if err != nil {
		return nil, fmt.Errorf("gateway: load schema: %w", err)
	}
	return &Introspection{engine: e, broadcaster: broadcaster, schema: schema}, nil
}

// Execute parses and validates query against the introspection schema,
// then resolves each requested top-level field by hand. There is
// exactly one operation and no variables/fragments support: this is a
// debugging surface, not a general-purpose GraphQL server.
func (in *Introspection) Execute(query string) *graphql.Response {
	doc, err := gqlparser.LoadQuery(in.schema, query)
	if err != nil {
		return &graphql.Response{Errors: toErrorList(err)}
	}

	op := doc.Operations.ForName("")
	if op == nil {
		return &graphql.Response{Errors: gqlerror.List{gqlerror.Errorf("no operation in query document")}}
	}

	data := make(map[string]interface{}, len(op.SelectionSet))
	for _, sel := range op.SelectionSet {
		field, ok := sel.(*ast.Field)
		if !ok {
			continue
		}
		switch field.Name {
		case "components":
			data["components"] = in.resolveComponents(false)
		case "componentTypes":
			data["componentTypes"] = in.resolveComponents(true)
		case "health":
			data["health"] = in.resolveHealth()
		default:
			return &graphql.Response{Errors: gqlerror.List{gqlerror.Errorf("unknown field %q", field.Name)}}
		}
	}

	raw, marshalErr := json.Marshal(data)
	if marshalErr != nil {
		return &graphql.Response{Errors: gqlerror.List{gqlerror.Errorf("marshal response: %v", marshalErr)}}
	}
	return &graphql.Response{Data: raw}
}

func (in *Introspection) resolveComponents(typesOnly bool) []map[string]string {
	frozen := in.engine.Frozen()
	if frozen == nil {
		return nil
	}
	iris := frozen.ListAvailable()
	if typesOnly {
		iris = frozen.ListComponentTypes()
	}
	out := make([]map[string]string, 0, len(iris))
	for _, iri := range iris {
		out = append(out, map[string]string{"iri": iri})
	}
	return out
}

func (in *Introspection) resolveHealth() map[string]interface{} {
	status := in.engine.Health()
	cacheSize, rejectedCount := 0, 0
	var hitRatio float64
	if p := in.engine.Pool(); p != nil {
		cacheSize = p.Len()
		rejectedCount, _ = p.RejectedCount()
		hitRatio = p.CacheStats().HitRatio()
	}

	var connectedClients int
	var droppedEvents int64
	if in.broadcaster != nil {
		stats := in.broadcaster.Stats()
		connectedClients = stats.ConnectedClients
		droppedEvents = stats.Drops
	}

	return map[string]interface{}{
		"healthy":          status.IsHealthy(),
		"degraded":         status.IsDegraded(),
		"message":          status.Message,
		"cacheSize":        cacheSize,
		"rejectedCount":    rejectedCount,
		"cacheHitRatio":    hitRatio,
		"connectedClients": connectedClients,
		"droppedEvents":    droppedEvents,
	}
}

func toErrorList(err error) gqlerror.List {
	if list, ok := err.(gqlerror.List); ok {
		return list
	}
	return gqlerror.List{gqlerror.Errorf("%v", err)}
}
