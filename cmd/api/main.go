// Command api serves the reconciliation engine over HTTP.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veloxpay/reconciler/internal/api"
	"github.com/veloxpay/reconciler/internal/application/reconcile"
	"github.com/veloxpay/reconciler/internal/application/service"
	"github.com/veloxpay/reconciler/internal/domain/matcher"
	"github.com/veloxpay/reconciler/internal/infrastructure/config"
	"github.com/veloxpay/reconciler/internal/infrastructure/logging"
)

func main() {
	var (
		configFile = flag.String("config", "config.yaml", "Configuration file path")
		port       = flag.Int("port", 0, "Port to listen on (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	cfg := config.LoadOrEnvWithPath(*configFile)

	loggingCfg := cfg.Observability.Logging
	if *verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "api")

	matcherCfg := matcher.DefaultConfig()
	matcherCfg.CompanyName = cfg.Company.Name
	orchestrator := reconcile.NewOrchestrator(matcher.NewMatcher(matcherCfg), logger)
	jobs := service.NewReconcileService(orchestrator, logger)

	apiCfg := api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	if *port != 0 {
		apiCfg.Port = *port
	}

	server := api.NewServer(apiCfg, orchestrator, jobs, logger)

	// Serve until interrupted, then drain in-flight requests.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}
