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
	"github.com/spf13/cobra"
)

func newAlgorithmsCommand(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List supported algorithms",
		Long:  `List the registered algorithm families with their operations and key usages`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := cfg.Logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			registry, err := cfg.Registry(log)
			if err != nil {
				return err
			}
			return NewPrinter(cfg.OutputFormat, cmd.OutOrStdout()).PrintAlgorithms(registry.Algorithms())
		},
	}
}
