// Package engine is the top-level façade wiring registry, preprocess,
// construct, pool, and strategy into the five operations spec.md §6
// exposes: register_module_resource, register_module_from_stream,
// finalize_registration, instantiate, and instantiate_manually.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	componentsgoerrors "github.com/jeswr/components-go/errors"
	"github.com/jeswr/components-go/health"
	"github.com/jeswr/components-go/metric"
	"github.com/jeswr/components-go/pool"
	"github.com/jeswr/components-go/registry"
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/strategy"
	"github.com/jeswr/components-go/vocabulary"
)

// Engine is the core entrypoint a host application embeds. Before
// FinalizeRegistration, only the registration operations are usable;
// Instantiate and InstantiateManually return a RegistryFrozen error
// until then.
type Engine struct {
	mu            sync.RWMutex
	store         *resource.Store
	registry      *registry.Registry
	frozen        *registry.Frozen
	pool          *pool.Pool
	poolObservers []pool.Observer
	strategy      strategy.Strategy
	logger        *slog.Logger
	startedAt     time.Time
	metrics       *metric.Metrics
	health        *health.Monitor
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger attaches a *slog.Logger; the zero Engine uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithStore attaches a pre-existing resource.Store (e.g. one already
// populated by a loader) instead of minting an empty one.
func WithStore(store *resource.Store) Option {
	return func(e *Engine) { e.store = store }
}

// WithPoolObserver registers a pool.Observer that FinalizeRegistration
// attaches to the constructor pool it builds, e.g. gateway's websocket
// event broadcaster. May be called more than once to attach several.
func WithPoolObserver(obs pool.Observer) Option {
	return func(e *Engine) { e.poolObservers = append(e.poolObservers, obs) }
}

// WithMetrics attaches the core Prometheus metrics this Engine's
// registry and constructor pool record against, so both report through
// the same registered collector set (SPEC_FULL §5 domain stack).
func WithMetrics(m *metric.Metrics) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// New builds an Engine backed by strat, the Construction Strategy
// collaborator (spec §4.5). The registry starts empty and unfrozen.
func New(strat strategy.Strategy, opts ...Option) *Engine {
	e := &Engine{
		strategy:  strat,
		logger:    slog.Default(),
		startedAt: time.Now(),
		metrics:   metric.NewMetrics(),
		health:    health.NewMonitor(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.registry = registry.New(registry.WithMetrics(e.metrics))
	if e.store == nil {
		e.store = resource.NewStore()
	}
	return e
}

// Metrics exposes the engine's core Prometheus metrics for a host
// application to register and scrape (SPEC_FULL §5 domain stack).
func (e *Engine) Metrics() *metric.Metrics {
	return e.metrics
}

// RegisterModuleResource registers a single already-parsed module
// resource (spec §6 register_module_resource).
func (e *Engine) RegisterModuleResource(res *resource.Resource) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.registry.RegisterModule(res); err != nil {
		e.logger.Warn("module registration rejected", "module", res.ID, "error", err)
		e.health.UpdateDegraded("loader", err.Error())
		return err
	}
	e.logger.Debug("module registered", "module", res.ID)
	e.health.UpdateHealthy("loader", fmt.Sprintf("last registered module: %s", res.ID))
	return nil
}

// RegisterModuleFromStream registers every Module-typed resource found
// in store (spec §6 register_module_from_stream).
func (e *Engine) RegisterModuleFromStream(store *resource.Store) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.registry.RegisterModuleFromStream(store); err != nil {
		e.health.UpdateDegraded("loader", err.Error())
		return err
	}
	e.health.UpdateHealthy("loader", "last module stream registered")
	return nil
}

// RegisterModulesFromStreams ingests multiple independent triple
// streams concurrently before finalization (SPEC_FULL §5 domain stack).
func (e *Engine) RegisterModulesFromStreams(ctx context.Context, stores ...*resource.Store) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.registry.RegisterModulesFromStreams(ctx, stores...); err != nil {
		e.health.UpdateDegraded("loader", err.Error())
		return err
	}
	e.health.UpdateHealthy("loader", fmt.Sprintf("last %d concurrent module streams registered", len(stores)))
	return nil
}

// FinalizeRegistration freezes the registry and builds the constructor
// pool (spec §6 finalize_registration). Idempotent: a second call
// returns nil without rebuilding the pool.
func (e *Engine) FinalizeRegistration() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.frozen != nil {
		return nil
	}

	frozen, err := e.registry.Finalize()
	if err != nil {
		return err
	}

	poolOpts := []pool.Option{pool.WithMetrics(e.metrics)}
	if len(e.poolObservers) > 0 {
		poolOpts = append(poolOpts, pool.WithObserver(multiObserver(e.poolObservers)))
	}

	p, err := pool.New(frozen, e.store, e.strategy, poolOpts...)
	if err != nil {
		return err
	}

	e.frozen = frozen
	e.pool = p
	e.logger.Debug("registration finalized", "components", len(frozen.ListAvailable()))
	return nil
}

// Instantiate runs config through the constructor pool (spec §6
// instantiate), failing with a RegistryFrozen error if
// FinalizeRegistration has not yet run.
func (e *Engine) Instantiate(ctx context.Context, config *resource.Resource, settings strategy.Settings) (*strategy.Future, error) {
	e.mu.RLock()
	p := e.pool
	e.mu.RUnlock()
	if p == nil {
		return nil, componentsgoerrors.RegistryFrozen(config.ID)
	}
	return p.Instantiate(ctx, config, settings)
}

// InstantiateManually builds a synthetic config from componentIRI and a
// string->string parameter map, then runs it through the normal
// pipeline (spec §6 instantiate_manually; SPEC_FULL §9 supplemented
// behavior: override/default semantics still apply since the synthetic
// config is canonicalised exactly like any other).
func (e *Engine) InstantiateManually(ctx context.Context, componentIRI string, params map[string]string, settings strategy.Settings) (*strategy.Future, error) {
	e.mu.RLock()
	frozen := e.frozen
	p := e.pool
	store := e.store
	e.mu.RUnlock()

	if p == nil || frozen == nil {
		return nil, componentsgoerrors.RegistryFrozen(componentIRI)
	}

	component, ok := frozen.Lookup(componentIRI)
	if !ok {
		return nil, componentsgoerrors.UnknownComponent(componentIRI)
	}

	config := store.NewBlankNode()
	_ = config.SetProperty(vocabulary.RDFType, component)
	for predicate, value := range params {
		config.AddProperty(predicate, resource.NewLiteral(value, ""))
	}

	return p.Instantiate(ctx, config, settings)
}

// Health reports the engine's current health (SPEC_FULL §9) as an
// aggregate of its subsystems: the registry (finalized or not), the
// constructor pool (any cached construction rejected), and the loader
// (the outcome of the most recent module registration, if any). The
// aggregate follows health.Aggregate's rules: any unhealthy subsystem
// makes the engine unhealthy, otherwise any degraded subsystem makes
// it degraded, healthy only when every tracked subsystem is healthy.
func (e *Engine) Health() health.Status {
	e.mu.RLock()
	p := e.pool
	frozen := e.frozen
	e.mu.RUnlock()

	finalized := frozen != nil
	if finalized {
		e.health.UpdateHealthy("registry", fmt.Sprintf("%d components registered", len(frozen.ListAvailable())))
	} else {
		e.health.UpdateUnhealthy("registry", "registry not yet finalized")
	}

	var rejectedCount int
	if p != nil {
		snap := health.PoolSnapshot{Finalized: true, Uptime: time.Since(e.startedAt), CacheSize: p.Len()}
		count, lastErr := p.RejectedCount()
		snap.RejectedCount = count
		rejectedCount = count
		if lastErr != nil {
			snap.LastError = lastErr.Error()
		}
		e.health.Update("pool", health.FromPoolSnapshot("pool", snap))
	}

	aggregate := e.health.AggregateHealth("engine")
	return aggregate.WithMetrics(&health.Metrics{
		Uptime:     time.Since(e.startedAt),
		ErrorCount: rejectedCount,
	})
}

// multiObserver fans out pool lifecycle notifications to every
// registered observer, so more than one collaborator (e.g. gateway's
// websocket stream and a metrics recorder) can watch the same pool.
type multiObserver []pool.Observer

func (m multiObserver) OnSentinelInstalled(configIRI string) {
	for _, obs := range m {
		obs.OnSentinelInstalled(configIRI)
	}
}

func (m multiObserver) OnResolved(configIRI string) {
	for _, obs := range m {
		obs.OnResolved(configIRI)
	}
}

func (m multiObserver) OnRejected(configIRI string, err error) {
	for _, obs := range m {
		obs.OnRejected(configIRI, err)
	}
}

// Frozen exposes the frozen registry handle for collaborators such as
// gateway that need read-only introspection (nil until finalized).
func (e *Engine) Frozen() *registry.Frozen {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.frozen
}

// Pool exposes the constructor pool for collaborators such as gateway
// that need to observe cache state (nil until finalized).
func (e *Engine) Pool() *pool.Pool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pool
}
