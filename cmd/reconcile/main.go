// Command reconcile runs one matching pass over two JSON record files and
// prints the bidirectional id mapping to stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/veloxpay/reconciler/internal/application/reconcile"
	"github.com/veloxpay/reconciler/internal/domain/matcher"
	"github.com/veloxpay/reconciler/internal/infrastructure/config"
	"github.com/veloxpay/reconciler/internal/infrastructure/logging"
	"github.com/veloxpay/reconciler/internal/loader"
)

func main() {
	// Parse flags
	var (
		configFile = flag.String("config", "config.yaml", "Configuration file path")
		txFile     = flag.String("transactions", "transactions.json", "Transactions JSON file")
		attFile    = flag.String("attachments", "attachments.json", "Attachments JSON file")
		workers    = flag.Int("workers", 0, "Concurrent anchors (0 = all CPUs)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Load configuration
	cfg := config.LoadOrEnvWithPath(*configFile)

	// Setup logging
	loggingCfg := cfg.Observability.Logging
	if *verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "reconcile")

	if err := run(cfg, logger, *txFile, *attFile, *workers); err != nil {
		logger.Error("reconciliation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, txFile, attFile string, workers int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	txs, err := loader.LoadTransactions(txFile)
	if err != nil {
		return err
	}
	atts, err := loader.LoadAttachments(attFile)
	if err != nil {
		return err
	}

	logger.Info("loaded records", "transactions", len(txs), "attachments", len(atts))

	matcherCfg := matcher.DefaultConfig()
	matcherCfg.CompanyName = cfg.Company.Name
	orchestrator := reconcile.NewOrchestrator(matcher.NewMatcher(matcherCfg), logger)

	if workers == 0 {
		workers = cfg.Matching.Workers
	}
	result, err := orchestrator.Run(ctx, txs, atts, reconcile.Options{Workers: workers})
	if err != nil {
		return err
	}

	logger.Info("pass complete", "matched", result.Matched())

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
