// Package preprocess implements the config preprocessor chain (spec
// §4.2): an ordered list of handlers that rewrite a raw config
// resource into canonical form. The first handler whose CanHandle
// returns true wins; its output is validated and returned as the raw
// config for the constructor.
package preprocess

import (
	"fmt"
	"time"

	componentsgoerrors "github.com/jeswr/components-go/errors"
	"github.com/jeswr/components-go/metric"
	"github.com/jeswr/components-go/registry"
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/vocabulary"
)

// Handle is a handler-specific token CanHandle returns to Transform, so
// a preprocessor can avoid recomputing work already done during the
// applicability check. Its shape is private to each Preprocessor.
type Handle any

// Preprocessor is a single stage of the chain (spec §4.2).
type Preprocessor interface {
	// CanHandle reports, without mutation, whether this preprocessor
	// applies to config, returning a Handle to pass to Transform.
	CanHandle(config *resource.Resource) (Handle, bool)
	// Transform rewrites config toward canonical form, possibly in
	// place, and returns the canonicalised resource (usually the same
	// identity).
	Transform(config *resource.Resource, handle Handle) (*resource.Resource, error)
}

// Chain is the ordered preprocessor list. Order matters: Invariant 3
// (spec §8) requires that reordering two preprocessors that both
// CanHandle a config can change the outcome, because only the first
// match runs.
type Chain struct {
	steps    []Preprocessor
	registry *registry.Frozen // optional: enables the AmbiguousComponentTypes check below
	metrics  *metric.Metrics
}

// NewChain builds a Chain from steps, preserving their order. reg may
// be nil; without it, configs whose types resolve to != 1 registered
// component simply fall through to validation unchanged (they are
// expected to already carry an explicit requireName, e.g. from
// instantiate_manually).
func NewChain(reg *registry.Frozen, steps ...Preprocessor) *Chain {
	return &Chain{steps: steps, registry: reg, metrics: metric.NewMetrics()}
}

// WithMetrics attaches the core Prometheus metrics this Chain records
// per-handler run duration and error kind against (SPEC_FULL §5 domain
// stack). Returns c for chaining after NewChain/NewDefaultChain.
func (c *Chain) WithMetrics(m *metric.Metrics) *Chain {
	if m != nil {
		c.metrics = m
	}
	return c
}

// NewDefaultChain builds the chain with the engine's built-in
// preprocessors in the order the teacher's processor.Pipeline wires
// handlers: structural edits (Override) and type binding (Generics)
// before the two mutually exclusive layout strategies (ComponentMapped
// / ComponentUnmapped), with ParameterDefault last as the fallback for
// configs neither of those two claims (spec §4.2).
func NewDefaultChain(reg *registry.Frozen, store *resource.Store) *Chain {
	return NewChain(reg,
		NewOverride(store),
		NewGenerics(),
		NewComponentMapped(reg, store),
		NewComponentUnmapped(reg, store),
		NewParameterDefault(reg),
	)
}

// Run finds the first preprocessor that can handle config, transforms
// it, and validates the result. If no preprocessor matches, config is
// used unchanged and still validated (spec §4.2); a config that also
// fails to resolve to exactly one registered component type (and
// lacks an explicit requireName already) is rejected with
// AmbiguousComponentTypes (spec §7, §8 scenario 6) before validation
// runs.
func (c *Chain) Run(config *resource.Resource) (*resource.Resource, error) {
	raw := config
	matched := false
	for _, step := range c.steps {
		handle, ok := step.CanHandle(config)
		if !ok {
			continue
		}
		handlerName := fmt.Sprintf("%T", step)
		started := time.Now()
		out, err := step.Transform(config, handle)
		c.metrics.RecordPreprocessorRun(handlerName, time.Since(started))
		if err != nil {
			c.metrics.RecordPreprocessorError(handlerName)
			return nil, err
		}
		raw = out
		matched = true
		break
	}

	if !matched && c.registry != nil {
		if _, ok := raw.First(vocabulary.PredRequireName); !ok {
			if _, matches := resolveComponentType(raw, c.registry); matches != 1 {
				c.metrics.RecordPreprocessorError("ambiguousComponentTypes")
				return nil, componentsgoerrors.AmbiguousComponentTypes(raw.ID,
					"config types did not resolve to exactly one registered component")
			}
		}
	}

	if err := validateRawConfig(raw); err != nil {
		c.metrics.RecordPreprocessorError("validate")
		return nil, err
	}
	return raw, nil
}
