// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Subbump - Subbump is a CI automation helper that keeps git submodules current.
It reads a repository's submodule declarations, advances each submodule to the latest upstream commit (optionally snapped to the latest tag), and publishes structured results for a CI orchestrator to consume.

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.
*/

package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCmd constructs the subbump root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("SUBBUMP_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "subbump",
		Short:         "Advance git submodules and report the results to CI",
		Long:          "subbump inspects a repository's submodule declarations, advances each submodule to the latest upstream commit (optionally snapped to the latest tag), and reports structured results for a CI orchestrator to consume.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of subbump",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "subbump version %s\n", version)
		},
	})

	cmd.AddCommand(NewUpdateCommand())
	cmd.AddCommand(NewListCommand())

	return cmd
}

// newLogger builds the run logger on stderr; --verbose raises it to debug.
// Pipeline components receive it explicitly and never touch globals.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.TimeOnly}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
