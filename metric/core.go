package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all engine-level metrics (not domain-specific). Metrics
// for a particular Construction Strategy register separately through
// MetricsRegistrar so they cannot collide with these.
type Metrics struct {
	// Pool (constructor pool) metrics
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
	SentinelInstalls   prometheus.Counter
	BlacklistShortCuts prometheus.Counter
	InstantiateTotal   *prometheus.CounterVec
	InstantiateSeconds *prometheus.HistogramVec
	CacheSize          prometheus.Gauge

	// Registry metrics
	RegisteredComponents prometheus.Gauge
	RegistryFrozen       prometheus.Gauge

	// Preprocessor metrics
	PreprocessorSeconds *prometheus.HistogramVec
	PreprocessorErrors  *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all core instrumentation.
func NewMetrics() *Metrics {
	return &Metrics{
		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "componentsgo",
				Subsystem: "pool",
				Name:      "cache_hits_total",
				Help:      "Number of instantiate calls served from the instance cache",
			},
		),

		CacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "componentsgo",
				Subsystem: "pool",
				Name:      "cache_misses_total",
				Help:      "Number of instantiate calls that had to construct a new instance",
			},
		),

		SentinelInstalls: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "componentsgo",
				Subsystem: "pool",
				Name:      "sentinel_installs_total",
				Help:      "Number of times a sentinel was synchronously installed before construction began",
			},
		),

		BlacklistShortCuts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "componentsgo",
				Subsystem: "pool",
				Name:      "blacklist_shortcircuits_total",
				Help:      "Number of times instantiate short-circuited to the undefined placeholder for a blacklisted config",
			},
		),

		InstantiateTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "componentsgo",
				Subsystem: "pool",
				Name:      "instantiate_total",
				Help:      "Total instantiate outcomes by result",
			},
			[]string{"outcome"},
		),

		InstantiateSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "componentsgo",
				Subsystem: "pool",
				Name:      "instantiate_seconds",
				Help:      "Time spent constructing a fresh instance, excluding memoised hits",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),

		CacheSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "componentsgo",
				Subsystem: "pool",
				Name:      "cache_size",
				Help:      "Number of entries currently held in the instance cache",
			},
		),

		RegisteredComponents: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "componentsgo",
				Subsystem: "registry",
				Name:      "components",
				Help:      "Number of component definitions currently registered",
			},
		),

		RegistryFrozen: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "componentsgo",
				Subsystem: "registry",
				Name:      "frozen",
				Help:      "Whether the registry has been finalized (0=builder, 1=frozen)",
			},
		),

		PreprocessorSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "componentsgo",
				Subsystem: "preprocess",
				Name:      "duration_seconds",
				Help:      "Time spent running the preprocessor chain for a config",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"handler"},
		),

		PreprocessorErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "componentsgo",
				Subsystem: "preprocess",
				Name:      "errors_total",
				Help:      "Number of raw-config validation failures by error kind",
			},
			[]string{"kind"},
		),
	}
}

// RecordCacheHit increments the cache-hit counter.
func (m *Metrics) RecordCacheHit() {
	m.CacheHits.Inc()
}

// RecordCacheMiss increments the cache-miss counter.
func (m *Metrics) RecordCacheMiss() {
	m.CacheMisses.Inc()
}

// RecordSentinelInstall increments the sentinel-install counter.
func (m *Metrics) RecordSentinelInstall() {
	m.SentinelInstalls.Inc()
}

// RecordBlacklistShortCircuit increments the blacklist short-circuit counter.
func (m *Metrics) RecordBlacklistShortCircuit() {
	m.BlacklistShortCuts.Inc()
}

// RecordInstantiate records the outcome and duration of a fresh construction.
func (m *Metrics) RecordInstantiate(outcome string, duration time.Duration) {
	m.InstantiateTotal.WithLabelValues(outcome).Inc()
	m.InstantiateSeconds.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordCacheSize updates the current cache size gauge.
func (m *Metrics) RecordCacheSize(size int) {
	m.CacheSize.Set(float64(size))
}

// RecordRegisteredComponents updates the registered-component count gauge.
func (m *Metrics) RecordRegisteredComponents(count int) {
	m.RegisteredComponents.Set(float64(count))
}

// RecordRegistryFrozen updates the registry frozen/builder gauge.
func (m *Metrics) RecordRegistryFrozen(frozen bool) {
	value := 0.0
	if frozen {
		value = 1.0
	}
	m.RegistryFrozen.Set(value)
}

// RecordPreprocessorRun records the duration a named preprocessor spent transforming a config.
func (m *Metrics) RecordPreprocessorRun(handler string, duration time.Duration) {
	m.PreprocessorSeconds.WithLabelValues(handler).Observe(duration.Seconds())
}

// RecordPreprocessorError increments the preprocessor error counter for a given error kind.
func (m *Metrics) RecordPreprocessorError(kind string) {
	m.PreprocessorErrors.WithLabelValues(kind).Inc()
}
