package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eskmag/greenpulse/internal/config"
	"github.com/eskmag/greenpulse/internal/logging"
	"github.com/eskmag/greenpulse/internal/queue"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	subject := flag.String("subject", "", "Subject to follow (defaults to events.subject)")
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

	switch cfg.Events.Type {
	case queue.TypeNATS, queue.TypeRedis, queue.TypeKafka:
	default:
		logger.Fatal("Event tail needs an external transport", "type", cfg.Events.Type)
	}

	if *subject == "" {
		*subject = cfg.Events.Subject
	}

	q, err := queue.NewQueue(cfg.Events)
	if err != nil {
		logger.Fatal("Failed to connect to event transport", "type", cfg.Events.Type, "error", err)
	}
	defer func() { _ = q.Close() }()

	err = q.Subscribe(*subject, func(data []byte) error {
		ev, err := queue.DecodeAnalysisEvent(data)
		if err != nil {
			logger.Warn("Skipping undecodable event", "error", err)
			return nil
		}
		printEvent(os.Stdout, ev)
		return nil
	})
	if err != nil {
		logger.Fatal("Failed to subscribe", "subject", *subject, "error", err)
	}
	logger.Info("Following analysis events", "type", cfg.Events.Type, "subject", *subject)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	_ = q.Unsubscribe(*subject)
}

func printEvent(w io.Writer, ev queue.AnalysisEvent) {
	direction := "stable/increasing"
	if ev.IsDeclining {
		direction = "declining"
	}
	fmt.Fprintf(w, "%s %-12s %d-%d latest %.1f Mt total %+.1f%% %s, %s; %d projected %.1f Mt\n",
		ev.GeneratedAt.Format(time.RFC3339),
		ev.Dataset,
		ev.BaselineYear, ev.LatestYear,
		ev.LatestEmissionsMt,
		ev.TotalChangePct,
		ev.Assessment,
		direction,
		ev.ForecastFinalYear, ev.ForecastFinalMt)
}
