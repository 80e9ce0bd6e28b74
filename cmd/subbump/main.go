// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"

	"github.com/sethvargo/go-githubactions"

	"github.com/subbump/subbump/cmd/subbump/commands"
	"github.com/subbump/subbump/cmd/subbump/internal/clierr"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if os.Getenv("GITHUB_ACTIONS") == "true" {
			githubactions.New().Errorf("%v", err)
		}
		os.Exit(clierr.ExitCodeOf(err))
	}
}
