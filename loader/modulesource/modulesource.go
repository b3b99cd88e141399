// Package modulesource feeds module registration from a live NATS
// JetStream KV bucket: every key holds one module's triples, and a
// watcher re-registers a module whenever its entry changes, grounded
// on the teacher's KVStore.Watch pattern (natsclient/kv.go) adapted
// from CAS key/value access to module-registration streaming
// (SPEC_FULL §5 domain stack).
package modulesource

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/geoknoesis/rdf-go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/jeswr/components-go/loader"
	"github.com/jeswr/components-go/resource"
)

// Registrar is the subset of engine.Engine a Source needs: registering
// a module parsed from one KV entry's triples.
type Registrar interface {
	RegisterModuleFromStream(store *resource.Store) error
}

// Source watches a JetStream KV bucket and registers a module for
// every entry whose value parses as module triples.
type Source struct {
	bucket jetstream.KeyValue
	format rdf.Format
	logger *slog.Logger
}

// Option configures a Source at construction time.
type Option func(*Source)

// WithLogger attaches a *slog.Logger; the zero Source uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) { s.logger = logger }
}

// New builds a Source over bucket, parsing each entry's value as
// format (rdf.FormatAuto detects it per entry).
func New(bucket jetstream.KeyValue, format rdf.Format, opts ...Option) *Source {
	s := &Source{bucket: bucket, format: format, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Watch registers every existing entry under pattern, then blocks
// registering updates as they arrive until ctx is done or the watcher
// errors. pattern follows JetStream KV wildcard syntax ("" or ">" for
// every key, "modules.>" for a subtree).
func (s *Source) Watch(ctx context.Context, registrar Registrar, pattern string) error {
	if pattern == "" {
		pattern = ">"
	}

	watcher, err := s.bucket.Watch(ctx, pattern)
	if err != nil {
		return fmt.Errorf("modulesource: watch %s: %w", pattern, err)
	}
	defer watcher.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case entry, ok := <-watcher.Updates():
			if !ok {
				return nil
			}
			if entry == nil {
				// nil marks the end of the initial historical replay.
				continue
			}
			if entry.Operation() == jetstream.KeyValueDelete || entry.Operation() == jetstream.KeyValuePurge {
				s.logger.Debug("module entry removed, ignoring", "key", entry.Key())
				continue
			}
			if err := s.registerEntry(ctx, registrar, entry); err != nil {
				s.logger.Error("module entry registration failed", "key", entry.Key(), "error", err)
			}
		}
	}
}

func (s *Source) registerEntry(ctx context.Context, registrar Registrar, entry jetstream.KeyValueEntry) error {
	store := resource.NewStore()
	adapter := loader.NewRDFAdapter(store, s.format)

	errCh := adapter.Import(ctx, strings.NewReader(string(entry.Value())))
	if err := <-errCh; err != nil {
		return fmt.Errorf("modulesource: parse %s: %w", entry.Key(), err)
	}

	if err := registrar.RegisterModuleFromStream(store); err != nil {
		return fmt.Errorf("modulesource: register %s: %w", entry.Key(), err)
	}

	s.logger.Debug("module registered from KV", "key", entry.Key(), "revision", entry.Revision())
	return nil
}
