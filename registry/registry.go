// Package registry implements spec §4.1's Registry / Module State: a
// builder phase that accepts module/component registrations, consumed
// by Finalize into an immutable Frozen handle (spec §9 "Mutable-then-
// frozen registry"). All downstream components (preprocess, construct,
// pool) receive only the Frozen handle.
package registry

import (
	"context"
	"sync"

	componentsgoerrors "github.com/jeswr/components-go/errors"
	"github.com/jeswr/components-go/metric"
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/vocabulary"
	"golang.org/x/sync/errgroup"
)

// Registry is the mutable builder. Zero value is not usable; use New.
type Registry struct {
	mu         sync.Mutex
	components map[string]*resource.Resource
	modules    map[string]*resource.Resource
	frozen     bool
	frozenView *Frozen
	metrics    *metric.Metrics
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithMetrics attaches the core Prometheus metrics this Registry records
// registered-component count and freeze state against (SPEC_FULL §5
// domain stack).
func WithMetrics(m *metric.Metrics) Option {
	return func(r *Registry) {
		if m != nil {
			r.metrics = m
		}
	}
}

// New creates an empty, unfrozen Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		components: make(map[string]*resource.Resource),
		modules:    make(map[string]*resource.Resource),
		metrics:    metric.NewMetrics(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterModule registers mod and every component it declares via
// vocabulary.PredComponents. Each contained component's module
// back-reference is set and the component is inserted under its IRI
// (spec §4.1). Fails with InvalidComponent if a component is not typed
// as one of vocabulary.RecognisedComponentTypes. Fails with
// RegistryFrozen if called after Finalize.
func (r *Registry) RegisterModule(mod *resource.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return componentsgoerrors.RegistryFrozen(mod.ID)
	}

	components, _ := mod.Property(vocabulary.PredComponents)
	for _, c := range components {
		if !isRecognisedComponentType(c) {
			return componentsgoerrors.InvalidComponent(c.ID, "component is not typed AbstractClass, Class, or ComponentInstance")
		}
	}

	for _, c := range components {
		_ = c.SetProperty(vocabulary.PredModule, mod)
		r.components[c.ID] = c
	}
	r.modules[mod.ID] = mod
	r.metrics.RecordRegisteredComponents(len(r.components))
	return nil
}

func isRecognisedComponentType(c *resource.Resource) bool {
	for _, t := range vocabulary.RecognisedComponentTypes {
		if c.IsA(t) {
			return true
		}
	}
	return false
}

// RegisterModuleFromStream parses then iterates a stream, registering
// every resource typed as Module (spec §4.1). Parsing itself is out of
// scope (spec §1); store is assumed already populated by a loader.
func (r *Registry) RegisterModuleFromStream(store *resource.Store) error {
	for _, res := range store.All() {
		if res.IsA(vocabulary.ClassModule) {
			if err := r.RegisterModule(res); err != nil {
				return err
			}
		}
	}
	return nil
}

// RegisterModulesFromStreams ingests N independent triple streams
// concurrently before Finalize, using errgroup (SPEC_FULL §5 domain
// stack). Each RegisterModuleFromStream call is itself mutex-guarded,
// and this only ever runs pre-freeze, so it does not violate the
// single-threaded instantiation-pipeline model of spec §5.
func (r *Registry) RegisterModulesFromStreams(ctx context.Context, stores ...*resource.Store) error {
	g, _ := errgroup.WithContext(ctx)
	for _, store := range stores {
		store := store
		g.Go(func() error {
			return r.RegisterModuleFromStream(store)
		})
	}
	return g.Wait()
}

// Finalize runs parameter inheritance across all components, then
// freezes the component map (spec §4.1). After Finalize, all further
// registration calls fail with RegistryFrozen.
func (r *Registry) Finalize() (*Frozen, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return r.frozenView, nil
	}

	if err := r.inheritParameters(); err != nil {
		return nil, err
	}
	if err := r.inheritConstructorArguments(); err != nil {
		return nil, err
	}
	if err := validateParameterRanges(r.components); err != nil {
		return nil, err
	}
	r.metrics.RecordRegistryFrozen(true)

	frozenComponents := make(map[string]*resource.Resource, len(r.components))
	for k, v := range r.components {
		frozenComponents[k] = v
	}
	frozenModules := make(map[string]*resource.Resource, len(r.modules))
	for k, v := range r.modules {
		frozenModules[k] = v
	}

	r.frozen = true
	r.frozenView = &Frozen{
		components: frozenComponents,
		modules:    frozenModules,
		state:      buildModuleState(frozenModules),
	}
	return r.frozenView, nil
}

// EnsureFinalized is Finalize made idempotent: a second and subsequent
// call returns the same Frozen handle without re-running inheritance.
func (r *Registry) EnsureFinalized() (*Frozen, error) {
	r.mu.Lock()
	alreadyFrozen := r.frozen
	r.mu.Unlock()
	if alreadyFrozen {
		return r.frozenView, nil
	}
	return r.Finalize()
}

func containsIdentity(list []*resource.Resource, item *resource.Resource) bool {
	for _, existing := range list {
		if existing == item {
			return true
		}
	}
	return false
}

// inheritParameters implements spec §4.1's parameter inheritance
// algorithm: for each component C and each inherit target T (transitive
// closure over inheritValues), append T's parameters not already on C
// by identity. Cycles are tolerated via a per-component visited set.
func (r *Registry) inheritParameters() error {
	for _, c := range r.components {
		visited := map[string]bool{c.ID: true}
		inheritParametersInto(c, c, visited)
	}
	return nil
}

func inheritParametersInto(target, current *resource.Resource, visited map[string]bool) {
	targets, ok := current.Property(vocabulary.PredInheritValues)
	if !ok {
		return
	}
	for _, t := range targets {
		if visited[t.ID] {
			continue
		}
		visited[t.ID] = true

		existing, _ := target.Property(vocabulary.PredParameters)
		tParams, _ := t.Property(vocabulary.PredParameters)
		for _, p := range tParams {
			if !containsIdentity(existing, p) {
				target.AddProperty(vocabulary.PredParameters, p)
				existing = append(existing, p)
			}
		}

		inheritParametersInto(target, t, visited)
	}
}

// inheritConstructorArguments applies the same identity-based
// inheritance policy at the field level of each object inside
// constructorArguments.list (spec §4.1).
func (r *Registry) inheritConstructorArguments() error {
	for _, c := range r.components {
		argsProp, ok := c.Property(vocabulary.PredConstructorArguments)
		if !ok {
			continue
		}
		if len(argsProp) != 1 {
			return componentsgoerrors.InvalidConstructorArguments(c.ID, "constructorArguments must resolve to a single RDF list")
		}
		members, err := argsProp[0].List()
		if err != nil {
			return componentsgoerrors.InvalidConstructorArguments(c.ID, err.Error())
		}
		for _, obj := range members {
			if err := inheritObjectFields(obj, map[string]bool{}); err != nil {
				return err
			}
		}
	}
	return nil
}

func inheritObjectFields(obj *resource.Resource, visited map[string]bool) error {
	if _, ok := obj.Property(vocabulary.PredFields); ok {
		return nil
	}

	targets, ok := obj.Property(vocabulary.PredInheritValues)
	if !ok {
		// no fields and nothing to inherit from: valid only as a plain
		// onParameter-style mapping entry, which is not this object's concern.
		return nil
	}

	var collected []*resource.Resource
	for _, t := range targets {
		if visited[t.ID] {
			continue
		}
		visited[t.ID] = true

		if !isSuitableFieldInheritanceTarget(t) {
			return componentsgoerrors.MalformedObjectMapping(t.ID,
				"inheritValues target is neither an ObjectMapping nor has fields/inheritValues/onParameter")
		}

		if err := inheritObjectFields(t, visited); err != nil {
			return err
		}

		tFields, _ := t.Property(vocabulary.PredFields)
		for _, f := range tFields {
			if !containsIdentity(collected, f) {
				collected = append(collected, f)
			}
		}
	}

	if len(collected) > 0 {
		_ = obj.SetProperty(vocabulary.PredFields, collected...)
	}
	return nil
}

func isSuitableFieldInheritanceTarget(t *resource.Resource) bool {
	if t.IsA(vocabulary.ClassObjectMapping) {
		return true
	}
	if _, ok := t.Property(vocabulary.PredFields); ok {
		return true
	}
	if _, ok := t.Property(vocabulary.PredInheritValues); ok {
		return true
	}
	if _, ok := t.Property(vocabulary.PredOnParameter); ok {
		return true
	}
	return false
}
