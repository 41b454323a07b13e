// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"insights-workers/internal/common/camunda"
	"insights-workers/internal/common/config"
	"insights-workers/internal/common/connectors"
	"insights-workers/internal/common/database"
	"insights-workers/internal/common/logger"
	"insights-workers/internal/common/observability"

	fs "insights-workers/internal/workers/assistant/filter-suggestions"
	gfr "insights-workers/internal/workers/assistant/generate-fallback-response"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "worker manager: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	log, err := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting worker manager...", map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		return fmt.Errorf("observability setup failed: %w", err)
	}

	// --- Suggestion catalog ---
	catalog, err := fs.LoadCatalog(cfg.Assistant.CatalogPath)
	if err != nil {
		return err
	}
	log.Info("suggestion catalog loaded", map[string]interface{}{
		"path":        cfg.Assistant.CatalogPath,
		"suggestions": len(catalog),
	})

	// --- Redis with retry ---
	redisClient := database.NewRedis(cfg.Redis)
	defer redisClient.Close()
	err = retryWithBackoff(ctx, func() error {
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, log, "Redis connection")
	if err != nil {
		return err
	}
	log.Info("Redis connected successfully", map[string]interface{}{"address": cfg.Redis.Address})

	// --- Zeebe client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(ctx, func() error {
		var err error
		zeebeClient, err = camunda.NewClient(ctx, cfg.Camunda)
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		return err
	}
	log.Info("Zeebe client connected successfully", map[string]interface{}{"gateway": cfg.Camunda.BrokerAddress})

	store := connectors.NewStore(redisClient.Client, cfg.Assistant.StateKeyPrefix, cfg.Assistant.StateTTLDuration())

	// --- Workers ---
	fallbackHandler := gfr.NewHandler(gfr.ConfigFromApp(cfg), store, obs, log)
	suggestionsHandler := fs.NewHandler(fs.ConfigFromApp(cfg), catalog, store, obs, log)

	var workers []worker.JobWorker
	for _, w := range []struct {
		taskType string
		handler  worker.JobHandler
	}{
		{gfr.TaskType, fallbackHandler.Handle},
		{fs.TaskType, suggestionsHandler.Handle},
	} {
		if jw := camunda.StartWorker(zeebeClient, w.taskType, config.GetWorkerConfig(cfg, w.taskType), w.handler, log); jw != nil {
			workers = append(workers, jw)
		}
	}
	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	server := newOpsServer(cfg.Server.Address, map[string]readinessCheck{
		"redis": redisClient.Ping,
		"zeebe": func(ctx context.Context) error {
			return camunda.HealthCheck(ctx, zeebeClient, config.GetDuration(cfg.Camunda.RequestTimeout))
		},
	})
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// --- Graceful Shutdown ---
	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received, stopping workers...", nil)
	case err := <-serverErr:
		log.Error("Health/Metrics server failed", map[string]interface{}{"error": err.Error()})
	}

	for _, jw := range workers {
		jw.Close()
		jw.AwaitClose()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping Health/Metrics server", map[string]interface{}{"error": err.Error()})
	}
	if err := zeebeClient.Close(); err != nil {
		log.Error("Error closing Zeebe client", map[string]interface{}{"error": err.Error()})
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down observability", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Worker manager stopped", nil)
	return nil
}
