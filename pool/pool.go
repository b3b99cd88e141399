// Package pool implements the Constructor Pool (spec §4.4), the heart
// of the engine: it memoises instances by config IRI, detects
// self-referential cycles via a blacklist, and orchestrates the
// preprocessor chain and config constructor for each config seen for
// the first time.
package pool

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeswr/components-go/construct"
	componentsgoerrors "github.com/jeswr/components-go/errors"
	"github.com/jeswr/components-go/metric"
	"github.com/jeswr/components-go/pkg/cache"
	"github.com/jeswr/components-go/pkg/retry"
	"github.com/jeswr/components-go/preprocess"
	"github.com/jeswr/components-go/registry"
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/strategy"
)

// Observer receives pool lifecycle notifications for a config IRI
// (SPEC_FULL §9 "structured construction-trace events"), consumed by
// gateway's websocket event stream. A nil Observer is valid; Pool
// falls back to a no-op.
type Observer interface {
	OnSentinelInstalled(configIRI string)
	OnResolved(configIRI string)
	OnRejected(configIRI string, err error)
}

type noopObserver struct{}

func (noopObserver) OnSentinelInstalled(string) {}
func (noopObserver) OnResolved(string)          {}
func (noopObserver) OnRejected(string, error)   {}

// Option configures a Pool at construction time.
type Option func(*Pool)

// WithObserver attaches an Observer notified of every sentinel
// install, resolve, and reject this Pool performs.
func WithObserver(obs Observer) Option {
	return func(p *Pool) {
		if obs != nil {
			p.observer = obs
		}
	}
}

// WithMetrics attaches the core Prometheus metrics this Pool records
// cache hit/miss, sentinel install, blacklist short-circuit, and
// instantiate outcome/duration against (SPEC_FULL §5 domain stack).
func WithMetrics(m *metric.Metrics) Option {
	return func(p *Pool) {
		if m != nil {
			p.metrics = m
		}
	}
}

// WithRateLimiter throttles the rate at which newly-seen config IRIs
// enter construction (SPEC_FULL §5 domain stack): a repeat of an
// already-memoised IRI never waits on limiter, since it is served
// straight from the cache at the memo check, before this limiter is
// consulted. Guards a pathological fan-out of distinct configs, not
// the already-handled case of many references to the same config.
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(p *Pool) {
		if limiter != nil {
			p.limiter = limiter
		}
	}
}

// WithRetryConfig overrides the backoff this Pool applies when a
// construction step fails with a Transient error (spec §7). The
// default is retry.DefaultConfig() (3 attempts).
func WithRetryConfig(cfg retry.Config) Option {
	return func(p *Pool) {
		p.retryConfig = cfg
	}
}

// Pool is the Constructor Pool (spec §4.4). Its instance cache lives
// for the pool's lifetime; there is no eviction and no cancellation of
// an in-flight construction (spec §5 "Cancellation").
type Pool struct {
	mu          sync.Mutex
	cache       cache.Cache[*strategy.Future]
	chain       *preprocess.Chain
	constructor *construct.Constructor
	strat       strategy.Strategy
	observer    Observer
	metrics     *metric.Metrics
	limiter     *rate.Limiter
	retryConfig retry.Config
}

// New builds a Pool wired to reg's frozen component definitions, store
// (for preprocessors that mint new resources), and strat as the
// Construction Strategy. The Pool itself satisfies construct.Instantiator,
// closing the construct<->pool recursion without an import cycle.
func New(reg *registry.Frozen, store *resource.Store, strat strategy.Strategy, opts ...Option) (*Pool, error) {
	instanceCache, err := cache.NewSimple[*strategy.Future]()
	if err != nil {
		return nil, err
	}

	p := &Pool{
		cache:       instanceCache,
		chain:       preprocess.NewDefaultChain(reg, store),
		strat:       strat,
		observer:    noopObserver{},
		metrics:     metric.NewMetrics(),
		retryConfig: retry.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.chain.WithMetrics(p.metrics)
	p.constructor = construct.New(strat, p)
	return p, nil
}

// Instantiate is the pool's public contract: instantiate(config,
// settings) -> Future<Instance> (spec §4.4). Steps below are numbered
// per the spec's algorithm.
func (p *Pool) Instantiate(ctx context.Context, config *resource.Resource, settings strategy.Settings) (*strategy.Future, error) {
	started := time.Now()

	// 1. Blacklist check: break self-referential recursion.
	if settings.IsBlacklisted(config.ID) {
		p.metrics.RecordBlacklistShortCircuit()
		p.metrics.RecordInstantiate("blacklisted", time.Since(started))
		return strategy.ResolvedFuture(p.strat.CreateUndefined()), nil
	}

	// 2. Variable check.
	if config.IsVariable() {
		v, err := p.strat.ResolveVariable(ctx, config.Value, settings)
		if err != nil {
			p.metrics.RecordInstantiate("variable_error", time.Since(started))
			return strategy.RejectedFuture(err), nil
		}
		p.metrics.RecordInstantiate("variable", time.Since(started))
		return strategy.ResolvedFuture(v), nil
	}

	// 3 & 4. Memo check + synchronous sentinel install. The same Future
	// occupies the cache slot from sentinel through resolved/rejected:
	// whoever reads the slot at any point gets a handle that eventually
	// settles to the right outcome, so no second, divergent future is
	// ever created for the same config IRI (spec §4.4 "state machine for
	// a cache slot").
	p.mu.Lock()
	if existing, ok := p.cache.Get(config.ID); ok {
		p.mu.Unlock()
		p.metrics.RecordCacheHit()
		p.metrics.RecordInstantiate("cached", time.Since(started))
		return existing, nil
	}
	p.metrics.RecordCacheMiss()
	slot := strategy.NewFuture()
	if _, err := p.cache.Set(config.ID, slot); err != nil {
		p.mu.Unlock()
		return nil, err
	}
	p.mu.Unlock()
	p.metrics.RecordSentinelInstall()
	p.metrics.RecordCacheSize(p.cache.Size())
	p.observer.OnSentinelInstalled(config.ID)

	// 5. Canonicalise.
	raw, err := p.chain.Run(config)
	if err != nil {
		slot.Reject(err)
		p.observer.OnRejected(config.ID, err)
		p.metrics.RecordInstantiate("rejected", time.Since(started))
		return slot, nil
	}

	// 6. Extend blacklist.
	subSettings := settings.WithBlacklisted(config.ID)

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			slot.Reject(err)
			p.observer.OnRejected(config.ID, err)
			p.metrics.RecordInstantiate("rate_limited", time.Since(started))
			return slot, nil
		}
	}

	// 7. Construct. A Transient failure (spec §7) is retried with
	// backoff before the slot is rejected; any other error fails the
	// first attempt it appears on.
	value, err := retry.DoWithResult(ctx, p.retryConfig, func() (strategy.Instance, error) {
		inner, createErr := p.constructor.CreateInstance(ctx, raw, subSettings)
		if createErr != nil {
			if !componentsgoerrors.IsTransient(createErr) {
				return nil, retry.NonRetryable(createErr)
			}
			return nil, createErr
		}
		v, getErr := inner.Get(ctx)
		if getErr != nil && !componentsgoerrors.IsTransient(getErr) {
			return nil, retry.NonRetryable(getErr)
		}
		return v, getErr
	})
	if err != nil {
		slot.Reject(err)
		p.observer.OnRejected(config.ID, err)
		p.metrics.RecordInstantiate("rejected", time.Since(started))
	} else {
		slot.Resolve(value)
		p.observer.OnResolved(config.ID)
		p.metrics.RecordInstantiate("resolved", time.Since(started))
	}
	return slot, nil
}

// Len reports how many config IRIs currently have a cache entry
// (settled or still pending), for introspection/tests.
func (p *Pool) Len() int {
	return p.cache.Size()
}

// CacheStats exposes the memo cache's hit/miss/eviction counters for
// introspection (SPEC_FULL §9); gateway surfaces these alongside
// RejectedCount so a caller can distinguish a cold cache from a
// genuinely failing pool.
func (p *Pool) CacheStats() *cache.Statistics {
	return p.cache.Stats()
}

// RejectedCount reports how many cache entries have settled rejected,
// along with the most recently observed rejection's error, for health
// reporting (SPEC_FULL §9). In-flight (not yet settled) entries are not
// counted.
func (p *Pool) RejectedCount() (count int, lastErr error) {
	for _, key := range p.cache.Keys() {
		future, ok := p.cache.Get(key)
		if !ok {
			continue
		}
		if _, err, ready := future.Peek(); ready && err != nil {
			count++
			lastErr = err
		}
	}
	return count, lastErr
}
