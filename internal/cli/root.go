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

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-webcrypto/internal/config"
	"github.com/jeremyhahn/go-webcrypto/pkg/adapters/logger"
	"github.com/jeremyhahn/go-webcrypto/pkg/provider/dryrun"
	"github.com/jeremyhahn/go-webcrypto/pkg/provider/software"
	"github.com/jeremyhahn/go-webcrypto/pkg/webcrypto"
)

const (
	ProviderDryRun   = "dryrun"
	ProviderSoftware = "software"
)

// Config holds global CLI configuration
type Config struct {
	// ConfigFile is the path to the service configuration file. Only the
	// logging section is used by the CLI.
	ConfigFile string

	// OutputFormat controls output formatting (text, json, yaml)
	OutputFormat string

	// Provider selects the backend that runs validated requests
	Provider string

	// Verbose enables debug logging to stderr
	Verbose bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		OutputFormat: string(OutputFormatText),
		Provider:     ProviderDryRun,
	}
}

// Logger builds the CLI logger. The logging section of ConfigFile (and
// WEBCRYPTO_LOGGING_* environment variables) apply; Verbose forces debug.
func (c *Config) Logger(w io.Writer) (logger.Logger, error) {
	svc, err := config.Load(c.ConfigFile)
	if err != nil {
		return nil, err
	}
	level := logger.ParseLevel(svc.Logging.Level)
	if c.Verbose {
		level = logger.LevelDebug
	}
	return logger.NewSlogAdapter(&logger.SlogConfig{
		Level:  level,
		Format: svc.Logging.Format,
		Output: w,
	}), nil
}

// Registry builds the algorithm registry over the selected provider.
func (c *Config) Registry(log logger.Logger) (*webcrypto.Registry, error) {
	var provider webcrypto.Provider
	switch c.Provider {
	case ProviderDryRun, "":
		provider = dryrun.New()
	case ProviderSoftware:
		provider = software.New(&software.Config{Logger: log})
	default:
		return nil, fmt.Errorf("unknown provider: %s (expected %s or %s)", c.Provider, ProviderDryRun, ProviderSoftware)
	}
	return webcrypto.NewRegistry(&webcrypto.Config{
		Provider: provider,
		Logger:   log,
	})
}

// NewRootCommand builds the command tree around cfg.
func NewRootCommand(cfg *Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "webcrypto",
		Short: "go-webcrypto CLI - WebCrypto RSA request validation",
		Long: `webcrypto validates WebCrypto requests for the RSA families before
they reach a cryptographic provider.

Supported algorithms:
  - RSASSA-PKCS1-v1_5: sign, verify, generateKey, importKey, exportKey
  - RSA-PSS:           sign, verify, generateKey, importKey, exportKey
  - RSA-OAEP:          encrypt, decrypt, wrapKey, unwrapKey, generateKey,
                       importKey, exportKey`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "",
		"configuration file (logging section only)")
	rootCmd.PersistentFlags().StringVarP(&cfg.OutputFormat, "output", "o", cfg.OutputFormat,
		"output format (text, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&cfg.Provider, "provider", cfg.Provider,
		"provider for validated requests (dryrun, software)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false,
		"verbose output")

	rootCmd.AddCommand(newValidateCommand(cfg))
	rootCmd.AddCommand(newAlgorithmsCommand(cfg))
	rootCmd.AddCommand(newVersionCommand(cfg))
	return rootCmd
}

// Execute runs the CLI and returns the process exit code. Errors are
// printed to stderr in the selected output format.
func Execute() int {
	cfg := NewConfig()
	cmd := NewRootCommand(cfg)
	if err := cmd.Execute(); err != nil {
		printer := NewPrinter(cfg.OutputFormat, os.Stderr)
		_ = printer.PrintError(err) // Error printing to stderr is best-effort
		return 1
	}
	return 0
}
