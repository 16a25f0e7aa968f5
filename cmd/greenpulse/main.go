package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/eskmag/greenpulse/internal/cache"
	"github.com/eskmag/greenpulse/internal/config"
	"github.com/eskmag/greenpulse/internal/dataset"
	"github.com/eskmag/greenpulse/internal/logging"
	"github.com/eskmag/greenpulse/internal/metrics"
	"github.com/eskmag/greenpulse/internal/queue"
	"github.com/eskmag/greenpulse/internal/router"
	"github.com/eskmag/greenpulse/internal/services"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("GreenPulse API starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	source := dataset.NewFileSource(cfg.Data)
	logger.Info("Datasets configured", "dir", cfg.Data.Dir, "datasets", source.Datasets())

	reportCache, err := cache.New(cfg.Cache)
	if err != nil {
		logger.Fatal("Failed to initialize cache", "type", cfg.Cache.Type, "error", err)
	}
	if reportCache != nil {
		defer func() { _ = reportCache.Close() }()
		logger.Info("Report cache enabled", "type", cfg.Cache.Type, "ttl", cfg.Cache.TTL)
	} else {
		logger.Warn("Report cache DISABLED - every request recomputes its analysis")
	}

	logger.Info("Connecting to event transport", "type", cfg.Events.Type, "url", cfg.Events.URL)
	events, err := queue.NewEventPublisherFromConfig(cfg.Events)
	if err != nil {
		logger.Fatal("Failed to connect to event transport", "error", err)
	}
	if events != nil {
		defer func() { _ = events.Close() }()
		logger.Info("Analysis events enabled", "subject", events.Subject())
	}

	recorder := metrics.New()

	analysisService := services.NewAnalysisService(logger, source, cfg.Analysis,
		reportCache, cfg.Cache.TTL, events, recorder)

	app := router.New(logger, analysisService, recorder)

	go func() {
		addr := cfg.GetServerAddress()
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", "timeout", cfg.Server.ShutdownTimeout)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
