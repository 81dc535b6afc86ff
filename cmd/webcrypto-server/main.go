// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-webcrypto.
//
// go-webcrypto is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeremyhahn/go-webcrypto/internal/config"
	"github.com/jeremyhahn/go-webcrypto/internal/rest"
	"github.com/jeremyhahn/go-webcrypto/pkg/adapters/logger"
	"github.com/jeremyhahn/go-webcrypto/pkg/health"
	"github.com/jeremyhahn/go-webcrypto/pkg/metrics"
	"github.com/jeremyhahn/go-webcrypto/pkg/provider/dryrun"
	"github.com/jeremyhahn/go-webcrypto/pkg/provider/software"
	"github.com/jeremyhahn/go-webcrypto/pkg/ratelimit"
	"github.com/jeremyhahn/go-webcrypto/pkg/webcrypto"
)

var (
	// Version information (set during build)
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	providerName := flag.String("provider", "dryrun", "Provider for validated requests (dryrun, software)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("go-webcrypto REST server\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Git Commit: %s\n", commit)
		fmt.Printf("  Built:      %s\n", date)
		os.Exit(0)
	}

	if envConfig := os.Getenv("WEBCRYPTO_CONFIG"); envConfig != "" {
		*configPath = envConfig
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewSlogAdapter(&logger.SlogConfig{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})
	if err := run(cfg, *providerName, log); err != nil {
		log.Error("Server error", logger.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, providerName string, log logger.Logger) error {
	log.Info("Starting REST server",
		logger.String("address", cfg.Server.Address()),
		logger.String("provider", providerName),
		logger.String("version", version))

	var provider webcrypto.Provider
	switch providerName {
	case "dryrun":
		provider = dryrun.New()
	case "software":
		provider = software.New(&software.Config{Logger: log})
	default:
		return fmt.Errorf("unknown provider: %s", providerName)
	}

	registry, err := webcrypto.NewRegistry(&webcrypto.Config{
		Provider: provider,
		Logger:   log,
	})
	if err != nil {
		return err
	}

	checker := health.NewChecker()
	checker.RegisterCheck("registry", health.FromError(func(ctx context.Context) error {
		for _, name := range []webcrypto.AlgorithmName{
			webcrypto.AlgorithmRSASSA, webcrypto.AlgorithmRSAPSS, webcrypto.AlgorithmRSAOAEP,
		} {
			if _, err := registry.Get(string(name)); err != nil {
				return err
			}
		}
		return nil
	}))

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metrics.Enable()
		metricsPath = cfg.Metrics.Path
	} else {
		metrics.Disable()
	}

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.New(&ratelimit.Config{
			Enabled:           true,
			RequestsPerMinute: cfg.RateLimit.RequestsPerMin,
			Burst:             cfg.RateLimit.Burst,
		})
	}

	tlsConfig, err := cfg.TLS.LoadTLSConfig()
	if err != nil {
		return err
	}

	server, err := rest.NewServer(&rest.Config{
		Address:         cfg.Server.Address(),
		Registry:        registry,
		Version:         version,
		TLSConfig:       tlsConfig,
		RateLimiter:     limiter,
		HealthChecker:   checker,
		MetricsPath:     metricsPath,
		Logger:          log,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		MaxRequestBytes: cfg.Server.MaxRequestBytes,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}

	log.Info("REST server stopped successfully")
	return nil
}
