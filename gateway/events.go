package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jeswr/components-go/pkg/buffer"
)

// clientBufferCapacity bounds how many undelivered events a slow
// websocket client accumulates before the oldest is dropped, so one
// stalled consumer cannot grow unbounded memory or block Broadcast for
// every other client.
const clientBufferCapacity = 256

// EventKind names a pool lifecycle transition worth broadcasting
// (SPEC_FULL §9 "structured construction-trace events"), mirroring the
// teacher's live telemetry broadcast over a websocket connection set.
type EventKind string

const (
	EventSentinelInstalled EventKind = "sentinel-installed"
	EventResolved          EventKind = "resolved"
	EventRejected          EventKind = "rejected"
)

// Event is one pool lifecycle transition for a config IRI.
type Event struct {
	Kind      EventKind `json:"kind"`
	ConfigIRI string    `json:"configIri"`
	Error     string    `json:"error,omitempty"`
	At        time.Time `json:"at"`
}

// EventBroadcaster fans a stream of Events out to every connected
// websocket client, get-or-create-registering each new connection the
// way the teacher's websocket input tracks its client set. Each client
// drains its own bounded buffer.Buffer on a dedicated writer goroutine,
// so a slow reader is isolated by dropping its oldest backlog rather
// than stalling Broadcast for every other client.
type EventBroadcaster struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.RWMutex
	clients map[string]*clientConn
}

type clientConn struct {
	conn   *websocket.Conn
	buf    buffer.Buffer[Event]
	notify chan struct{}
}

// NewEventBroadcaster builds a broadcaster accepting any origin, since
// this is a loopback debugging surface (SPEC_FULL §5), not a
// public-facing listener.
func NewEventBroadcaster(logger *slog.Logger) *EventBroadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventBroadcaster{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[string]*clientConn),
	}
}

// ServeHTTP upgrades the request to a websocket connection and holds
// it open until the client disconnects, discarding anything the
// client sends (this is a one-way event feed).
func (b *EventBroadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Error("gateway: websocket upgrade failed", "error", err)
		return
	}

	buf, err := buffer.NewCircularBuffer[Event](clientBufferCapacity,
		buffer.WithOverflowPolicy[Event](buffer.DropOldest))
	if err != nil {
		b.logger.Error("gateway: build client event buffer failed", "error", err)
		_ = conn.Close()
		return
	}

	id := uuid.NewString()
	client := &clientConn{conn: conn, buf: buf, notify: make(chan struct{}, 1)}

	b.mu.Lock()
	b.clients[id] = client
	b.mu.Unlock()

	go b.writeLoop(id, client)

	defer func() {
		b.mu.Lock()
		delete(b.clients, id)
		b.mu.Unlock()
		close(client.notify)
		_ = buf.Close()
		_ = conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop drains client's buffer to its websocket connection until
// the connection closes, waking on notify rather than polling.
func (b *EventBroadcaster) writeLoop(id string, client *clientConn) {
	for range client.notify {
		for {
			event, ok := client.buf.Read()
			if !ok {
				break
			}
			data, err := json.Marshal(event)
			if err != nil {
				b.logger.Error("gateway: marshal event failed", "error", err)
				continue
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				b.logger.Debug("gateway: dropping client after write error", "client", id, "error", err)
				_ = client.conn.Close()
				b.mu.Lock()
				delete(b.clients, id)
				b.mu.Unlock()
				return
			}
		}
	}
}

// OnSentinelInstalled, OnResolved, and OnRejected implement
// pool.Observer, so an EventBroadcaster can be passed directly to
// engine.WithPoolObserver.
func (b *EventBroadcaster) OnSentinelInstalled(configIRI string) {
	b.Broadcast(Event{Kind: EventSentinelInstalled, ConfigIRI: configIRI, At: time.Now()})
}

func (b *EventBroadcaster) OnResolved(configIRI string) {
	b.Broadcast(Event{Kind: EventResolved, ConfigIRI: configIRI, At: time.Now()})
}

func (b *EventBroadcaster) OnRejected(configIRI string, err error) {
	b.Broadcast(Event{Kind: EventRejected, ConfigIRI: configIRI, Error: err.Error(), At: time.Now()})
}

// BroadcastStats aggregates every connected client's buffer statistics
// (SPEC_FULL §9): a rising Drops count signals consumers falling
// behind the broadcast stream faster than they can drain it.
type BroadcastStats struct {
	ConnectedClients int
	Writes           int64
	Reads            int64
	Drops            int64
	Overflows        int64
}

// Stats sums buffer.Statistics across every currently connected
// client, for introspection.
func (b *EventBroadcaster) Stats() BroadcastStats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := BroadcastStats{ConnectedClients: len(b.clients)}
	for _, client := range b.clients {
		s := client.buf.Stats()
		out.Writes += s.Writes()
		out.Reads += s.Reads()
		out.Drops += s.Drops()
		out.Overflows += s.Overflows()
	}
	return out
}

// Broadcast enqueues event onto every currently connected client's
// buffer and wakes its writer goroutine. A client buffer at capacity
// drops its oldest queued event rather than blocking this call.
func (b *EventBroadcaster) Broadcast(event Event) {
	b.mu.RLock()
	clients := make([]*clientConn, 0, len(b.clients))
	for _, client := range b.clients {
		clients = append(clients, client)
	}
	b.mu.RUnlock()

	for _, client := range clients {
		if err := client.buf.Write(event); err != nil {
			b.logger.Error("gateway: buffer event failed", "error", err)
			continue
		}
		select {
		case client.notify <- struct{}{}:
		default:
		}
	}
}
