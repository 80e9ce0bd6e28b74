// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/subbump/subbump/internal/gitmodules"
)

// NewListCommand returns the `subbump list` command, a read-only view of the
// declaration file. It parses and validates but never touches the checkouts.
func NewListCommand() *cobra.Command {
	var (
		configPath string
		repoRoot   string
		printJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List declared submodules without updating them",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd)
			root := resolveRepoRoot(cmd.Context(), repoRoot, log)

			decls, err := gitmodules.Load(declarationPath(root, configPath))
			if err != nil {
				return err
			}

			if printJSON {
				if decls == nil {
					decls = []gitmodules.Declaration{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(decls)
			}

			if len(decls) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no submodules declared")
				return nil
			}
			for _, d := range decls {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", d.Name, d.Path, d.URL, d.RemoteName)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", ".gitmodules", "path to the submodule declaration file")
	cmd.Flags().StringVar(&repoRoot, "repo-root", "", "repository root (default: git rev-parse --show-toplevel)")
	cmd.Flags().BoolVar(&printJSON, "json", false, "output declarations as JSON")

	return cmd
}
