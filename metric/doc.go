// Package metric provides Prometheus-based metrics collection and an HTTP
// server for instrumenting the instantiation pipeline: the constructor
// pool, the registry, and the preprocessor chain.
//
// The package offers a centralized metrics registry managing both core
// engine metrics (cache hits/misses, instantiate outcomes, registry size)
// and metrics contributed by individual Construction Strategy
// implementations. It includes an HTTP server exposing metrics in
// Prometheus format for scraping.
//
// # Architecture
//
// The package follows a three-layer design:
//
//  1. Core Metrics: engine-level metrics automatically registered (Metrics type)
//  2. Strategy Registry: extensible registration for strategy-specific metrics (MetricsRegistrar interface)
//  3. HTTP Server: metrics endpoint with a health check (Server type)
//
// This separates instantiation-pipeline concerns (core metrics) from a
// particular Construction Strategy's own metrics while exposing a single
// endpoint for monitoring systems.
//
// # Basic Usage
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//
//	go func() {
//	    if err := server.Start(); err != nil && err != http.ErrServerClosed {
//	        log.Printf("metrics server error: %v", err)
//	    }
//	}()
//
//	coreMetrics := registry.CoreMetrics()
//	coreMetrics.RecordCacheHit()
//	coreMetrics.RecordInstantiate("resolved", 2*time.Millisecond)
//
// The metrics server exposes Prometheus-formatted metrics at
// http://localhost:9090/metrics and a health check at
// http://localhost:9090/health.
//
// # Core Metrics
//
// The package automatically registers core engine metrics tracking:
//
//   - Pool: cache_hits_total, cache_misses_total, sentinel_installs_total,
//     blacklist_shortcircuits_total, instantiate_total, instantiate_seconds, cache_size
//   - Registry: components, frozen
//   - Preprocessor: duration_seconds, errors_total
//
// # Strategy-Specific Metrics
//
// A Construction Strategy can register its own metrics through the
// registry, the same way the engine registers the core ones:
//
//	requestCounter := prometheus.NewCounter(prometheus.CounterOpts{
//	    Name: "custom_instances_total",
//	    Help: "Total number of instances created by this strategy",
//	})
//	err := registry.RegisterCounter("my-strategy", "custom_instances_total", requestCounter)
//
// # MetricsRegistrar Interface
//
// Strategies depend on metric.MetricsRegistrar rather than the concrete
// *MetricsRegistry, which keeps them testable against a mock registrar.
//
// # Thread Safety
//
// All registry operations are thread-safe: registration uses mutex
// protection, metric recording is lock-free (a Prometheus guarantee), and
// CoreMetrics()/PrometheusRegistry() are safe for concurrent access.
package metric
