// Package main is an example bootstrap binary wiring the engine,
// metrics server, pool observer, and gateway together end to end. It is not a
// general-purpose CLI: flag parsing is explicitly out of scope (§1),
// so every knob below is a literal, grounded the way the teacher's
// cmd/semstreams demonstrates wiring rather than configuring it.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jeswr/components-go/engine"
	"github.com/jeswr/components-go/gateway"
	"github.com/jeswr/components-go/metric"
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/strategy"
	"github.com/jeswr/components-go/vocabulary"
)

const (
	appName     = "componentsgo"
	listenAddr  = ":8089"
	metricsPort = 9090
)

// exampleVariables demonstrates Settings.Variables sourced from a YAML
// fixture, per SPEC_FULL §5's yaml.v3 wiring for the bootstrap binary.
const exampleVariables = `
greeting: "hello from componentsgo"
`

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("componentsgo failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).
		With("service", appName, "pid", os.Getpid())

	var variables map[string]string
	if err := yaml.Unmarshal([]byte(exampleVariables), &variables); err != nil {
		return fmt.Errorf("componentsgo: parse example variables: %w", err)
	}

	store := resource.NewStore()
	mod, component, param := exampleModule(store)

	direct := strategy.NewDirectStrategy()
	direct.Register("greeter", "", func(_ context.Context, args map[string]strategy.Instance, _ []strategy.Instance) (strategy.Instance, error) {
		return fmt.Sprintf("greeter(%v)", args[param.ID]), nil
	})

	metricsRegistry := metric.NewMetricsRegistry()
	metricsServer := metric.NewServer(metricsPort, "/metrics", metricsRegistry)
	go func() {
		if err := metricsServer.Start(); err != nil {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	defer func() { _ = metricsServer.Stop() }()

	broadcaster := gateway.NewEventBroadcaster(logger)
	e := engine.New(direct,
		engine.WithStore(store),
		engine.WithLogger(logger),
		engine.WithPoolObserver(broadcaster),
		engine.WithMetrics(metricsRegistry.CoreMetrics()),
	)

	if err := e.RegisterModuleResource(mod); err != nil {
		return fmt.Errorf("componentsgo: register module: %w", err)
	}
	if err := e.FinalizeRegistration(); err != nil {
		return fmt.Errorf("componentsgo: finalize registration: %w", err)
	}

	config := store.NewNamedNode("urn:componentsgo:example-config")
	if err := config.SetProperty(vocabulary.RDFType, component); err != nil {
		return fmt.Errorf("componentsgo: build example config: %w", err)
	}
	config.AddProperty(param.ID, resource.NewVariableResource("greeting"))

	settings := strategy.NewSettings(strategy.WithVariables(variables))
	future, err := e.Instantiate(context.Background(), config, settings)
	if err != nil {
		return fmt.Errorf("componentsgo: instantiate example config: %w", err)
	}
	value, err := future.Get(context.Background())
	if err != nil {
		return fmt.Errorf("componentsgo: example instantiation rejected: %w", err)
	}
	logger.Info("example instantiation complete", "result", value)

	introspection, err := gateway.NewIntrospection(e, broadcaster)
	if err != nil {
		return fmt.Errorf("componentsgo: build introspection gateway: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/query", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			query = "{ health { healthy degraded } }"
		}
		resp := introspection.Execute(query)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(resp.Data)
	})
	mux.Handle("/events", broadcaster)

	server := &http.Server{Addr: listenAddr, Handler: mux}
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("gateway listening", "addr", listenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serverErr:
		return fmt.Errorf("componentsgo: gateway server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// exampleModule builds a single-component module whose sole parameter
// is resolved via a bound variable, demonstrating variable resolution
// end to end (spec §4.5 resolve_variable).
func exampleModule(store *resource.Store) (mod, component, param *resource.Resource) {
	component = store.NewNamedNode("urn:componentsgo:components:greeter")
	_ = component.SetProperty(vocabulary.RDFType, store.NewNamedNode(vocabulary.ClassClass))
	component.AddProperty(vocabulary.PredRequireName, resource.NewLiteral("greeter", ""))

	param = store.NewNamedNode("urn:componentsgo:params:greeting")
	param.AddProperty(vocabulary.PredParameterUnique, resource.NewLiteral("true", ""))
	component.AddProperty(vocabulary.PredParameters, param)

	mod = store.NewNamedNode("urn:componentsgo:modules:example")
	_ = mod.SetProperty(vocabulary.RDFType, store.NewNamedNode(vocabulary.ClassModule))
	_ = mod.SetProperty(vocabulary.PredComponents, component)
	return mod, component, param
}
