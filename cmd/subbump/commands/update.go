// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"

	"github.com/subbump/subbump/cmd/subbump/internal/clierr"
	"github.com/subbump/subbump/internal/config"
	"github.com/subbump/subbump/internal/gitcmd"
	"github.com/subbump/subbump/internal/gitmodules"
	"github.com/subbump/subbump/internal/output"
	"github.com/subbump/subbump/internal/updater"
)

// NewUpdateCommand returns the `subbump update` command: the full pipeline
// from declaration parsing to published outputs.
func NewUpdateCommand() *cobra.Command {
	var (
		configPath string
		paths      string
		strategy   string
		repoRoot   string
		printJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Advance submodules to their remotes' latest state",
		Long: `Advance every declared submodule to the latest commit on its remote, or,
under the tag strategy, to the nearest tag reachable from that commit.

Inputs are resolved from flags, GitHub Actions INPUT_* variables, and an
optional .subbump.yaml at the repository root, in that order. Results are
published as Actions outputs when GITHUB_OUTPUT is set and as key=value
lines on stdout otherwise. A run where nothing changed succeeds with no
outputs set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := newLogger(cmd)
			action := githubactions.New()

			root := resolveRepoRoot(ctx, repoRoot, log)
			defaults, err := config.LoadDefaults(root)
			if err != nil {
				return clierr.Wrap(2, "loading defaults", err)
			}
			opts, err := config.Resolve(config.Flags{
				ConfigPath: configPath,
				Paths:      paths,
				Strategy:   strategy,
			}, action, defaults)
			if err != nil {
				return clierr.Wrap(2, "resolving inputs", err)
			}
			log.Debug().
				Str("root", root).
				Str("config", opts.ConfigPath).
				Strs("paths", opts.Paths).
				Str("strategy", string(opts.Strategy)).
				Msg("resolved inputs")

			decls, err := gitmodules.Load(declarationPath(root, opts.ConfigPath))
			if err != nil {
				return err
			}

			subs, err := updater.New(gitcmd.New(root), log).Run(ctx, decls, opts.Paths, opts.Strategy)
			if err != nil {
				return err
			}

			rep := output.NewReport(subs)
			if printJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(rep.Submodules); err != nil {
					return err
				}
			}
			return output.NewSink(action, cmd.OutOrStdout(), os.Getenv, log).Publish(rep)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the submodule declaration file (default .gitmodules)")
	cmd.Flags().StringVar(&paths, "paths", "", "newline- or comma-separated submodule paths to restrict the run to")
	cmd.Flags().StringVar(&strategy, "strategy", "", `update strategy, "commit" or "tag" (default commit)`)
	cmd.Flags().StringVar(&repoRoot, "repo-root", "", "repository root (default: git rev-parse --show-toplevel)")
	cmd.Flags().BoolVar(&printJSON, "json", false, "also print the result records as JSON on stdout")

	return cmd
}

// resolveRepoRoot prefers the flag, then git's answer, then the working
// directory.
func resolveRepoRoot(ctx context.Context, flag string, log zerolog.Logger) string {
	if flag != "" {
		return flag
	}
	root, err := gitcmd.TopLevel(ctx, ".")
	if err == nil {
		return root
	}
	log.Debug().Err(err).Msg("no repository root from git, using working directory")
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func declarationPath(root, configPath string) string {
	if filepath.IsAbs(configPath) {
		return configPath
	}
	return filepath.Join(root, configPath)
}
