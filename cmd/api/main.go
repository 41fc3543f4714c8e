package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/vikbht/provider-mdm-graph/config"
	"github.com/vikbht/provider-mdm-graph/pkg/graph"
	"github.com/vikbht/provider-mdm-graph/pkg/logger"
	"github.com/vikbht/provider-mdm-graph/pkg/matching"
	"github.com/vikbht/provider-mdm-graph/pkg/merging"
	"github.com/vikbht/provider-mdm-graph/pkg/quality"
	"github.com/vikbht/provider-mdm-graph/pkg/routes/health"
	matchroute "github.com/vikbht/provider-mdm-graph/pkg/routes/match"
	mergeroute "github.com/vikbht/provider-mdm-graph/pkg/routes/merge"
	providerroute "github.com/vikbht/provider-mdm-graph/pkg/routes/provider"
	qualityroute "github.com/vikbht/provider-mdm-graph/pkg/routes/quality"
	"github.com/vikbht/provider-mdm-graph/pkg/server"
	"github.com/vikbht/provider-mdm-graph/pkg/tracing"
	"github.com/vikbht/provider-mdm-graph/pkg/tracing/exporters"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.PrettyLogs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(&exporters.ConsoleExporter{}))
	defer func() { _ = tp.Shutdown(ctx) }()
	otel.SetTracerProvider(tp)
	tracing.SetTracer(tp.Tracer(cfg.AppName))

	graphClient, err := connectGraph(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to graph database", zap.Error(err))
	}
	defer func() { _ = graphClient.Close(ctx) }()

	if err := graph.BootstrapSchema(ctx, graphClient, log); err != nil {
		log.Fatal("Failed to bootstrap graph schema", zap.Error(err))
	}

	matchCfg, err := cfg.MatchingConfig()
	if err != nil {
		log.Fatal("Invalid matching configuration", zap.Error(err))
	}

	store := graph.NewProviderStore(graphClient, log)
	qualityValidator := quality.NewValidator(log, quality.DefaultRuleSet())
	matchEngine := matching.NewEngine(log, store, matchCfg)
	mergeCoordinator := merging.NewCoordinator(log, store)

	e := server.New(cfg, log)

	checker := health.NewChecker(graphClient, version)
	checker.RegisterRoutes(e)

	api := e.Group("/api/v1")
	providerroute.NewHandler(store).Register(api.Group("/providers"))
	qualityroute.NewHandler(qualityValidator).Register(api.Group("/quality"))
	matchroute.NewHandler(matchEngine).Register(api.Group("/matches"))
	mergeroute.NewHandler(mergeCoordinator, store).Register(api.Group("/merges"))

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		log.Info("Starting server", zap.String("app", cfg.AppName), zap.String("addr", addr))
		checker.SetReady(true)
		if err := e.Start(addr); err != nil {
			log.Info("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	checker.SetReady(false)
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down cleanly", zap.Error(err))
	}
}

// connectGraph dials the graph database, retrying with fibonacci backoff the
// way dependent services come up in docker compose.
func connectGraph(ctx context.Context, cfg *config.Config, log *zap.Logger) (*graph.Client, error) {
	client, err := graph.NewClient(graph.Config{
		Host:     cfg.GraphDBHost,
		Port:     cfg.GraphDBPort,
		Username: cfg.GraphDBUser,
		Password: cfg.GraphDBPassword,
	}, log)
	if err != nil {
		return nil, err
	}

	a, b := 1, 1
	var lastErr error
	for attempt := 1; attempt <= cfg.StartupMaxAttempts; attempt++ {
		if lastErr = client.VerifyConnectivity(ctx); lastErr == nil {
			return client, nil
		}
		log.Warn("Graph database not reachable",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", cfg.StartupMaxAttempts),
			zap.Error(lastErr),
		)
		if attempt < cfg.StartupMaxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(a) * time.Second):
			}
			a, b = b, a+b
		}
	}
	_ = client.Close(ctx)
	return nil, fmt.Errorf("graph database unreachable after %d attempts: %w", cfg.StartupMaxAttempts, lastErr)
}
