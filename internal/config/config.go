// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config resolves the tool's three inputs: the declaration file path,
// the submodule path allowlist, and the update strategy. Values come from, in
// precedence order, command-line flags, GitHub Actions INPUT_* variables, an
// optional .subbump.yaml defaults file, and built-in defaults. Resolution is
// the only place ambient environment state is read; the pipeline itself only
// ever sees the resolved Options.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sethvargo/go-githubactions"
	"gopkg.in/yaml.v3"

	"github.com/subbump/subbump/internal/updater"
)

// DefaultsFile is the optional per-repository defaults file, looked up at the
// repository root.
const DefaultsFile = ".subbump.yaml"

const defaultConfigPath = ".gitmodules"

// Options is the fully resolved configuration handed to the pipeline.
type Options struct {
	// ConfigPath locates the submodule declaration file, relative to the
	// repository root unless absolute.
	ConfigPath string
	// Paths restricts the run to the listed submodule paths. Empty means
	// unrestricted.
	Paths []string
	// Strategy governs how far submodules are advanced.
	Strategy updater.Strategy
}

// Flags carries raw command-line flag values into resolution. Zero values
// mean "not set".
type Flags struct {
	ConfigPath string
	Paths      string
	Strategy   string
}

// FileDefaults mirrors the .subbump.yaml schema.
type FileDefaults struct {
	Config   string   `yaml:"config"`
	Strategy string   `yaml:"strategy"`
	Paths    []string `yaml:"paths"`
}

// LoadDefaults reads the defaults file from dir. A missing file is not an
// error and yields the zero value.
func LoadDefaults(dir string) (FileDefaults, error) {
	var fd FileDefaults
	data, err := os.ReadFile(filepath.Join(dir, DefaultsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return fd, nil
	}
	if err != nil {
		return fd, fmt.Errorf("reading %s: %w", DefaultsFile, err)
	}
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return fd, fmt.Errorf("parsing %s: %w", DefaultsFile, err)
	}
	return fd, nil
}

// Resolve merges flags, Actions inputs and file defaults into Options. The
// strategy is validated here, before any repository I/O happens.
func Resolve(flags Flags, action *githubactions.Action, file FileDefaults) (Options, error) {
	configPath := strings.TrimSpace(firstNonEmpty(
		flags.ConfigPath,
		action.GetInput("config"),
		file.Config,
		defaultConfigPath,
	))
	if configPath == "" {
		return Options{}, errors.New("config path must not be blank")
	}

	rawStrategy := strings.TrimSpace(firstNonEmpty(
		flags.Strategy,
		action.GetInput("strategy"),
		file.Strategy,
		string(updater.StrategyCommit),
	))
	strategy, err := updater.ParseStrategy(rawStrategy)
	if err != nil {
		return Options{}, err
	}

	paths := SplitList(firstNonEmpty(flags.Paths, action.GetInput("paths")))
	if len(paths) == 0 {
		paths = cleanList(file.Paths)
	}

	return Options{
		ConfigPath: configPath,
		Paths:      paths,
		Strategy:   strategy,
	}, nil
}

// SplitList splits a newline- or comma-separated list into trimmed, non-empty
// entries. It returns nil for a blank input.
func SplitList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ','
	})
	return cleanList(fields)
}

func cleanList(entries []string) []string {
	var out []string
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
