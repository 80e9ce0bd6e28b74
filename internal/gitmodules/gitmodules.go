// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gitmodules loads and validates submodule declaration files
// (the .gitmodules format: one INI group per submodule, the group header
// carrying the quoted submodule name, the body carrying path and url keys).
package gitmodules

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/go-ini/ini"
)

// Declaration is one declared submodule, in file order.
type Declaration struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	URL        string `json:"url"`
	RemoteName string `json:"remoteName"`
}

// ValidationError reports a declaration group that fails the schema.
// The whole file is rejected on the first offending group.
type ValidationError struct {
	Section string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("gitmodules: %s", e.Reason)
	}
	return fmt.Sprintf("gitmodules: section %q: %s", e.Section, e.Reason)
}

var (
	sectionPattern = regexp.MustCompile(`^submodule "(.+)"$`)

	// A URL must open with a generic URL-like token: a letter followed by
	// letters, digits, '+', '.' or '-'. This accepts scheme://, scp-style
	// and user@host forms while rejecting bare relative paths.
	urlPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*`)
)

// Load reads and parses the declaration file at path. A missing file is
// reported distinctly (errors.Is(err, fs.ErrNotExist)); any other read
// failure is surfaced as-is. There is no retry.
func Load(path string) ([]Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("gitmodules: declaration file %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("gitmodules: read declaration file %s: %w", path, err)
	}
	decls, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return decls, nil
}

// Parse decodes declaration content into validated declarations, preserving
// declared order. A group missing path or url, or carrying a malformed url,
// fails the whole parse; zero groups parse into an empty set.
func Parse(data []byte) ([]Declaration, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		// Git config uses '=' only; the default delimiters also split on ':'.
		KeyValueDelimiters: "=",
	}, data)
	if err != nil {
		return nil, fmt.Errorf("gitmodules: parse: %w", err)
	}

	var decls []Declaration
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			if len(sec.Keys()) > 0 {
				return nil, &ValidationError{Reason: "keys outside a submodule group"}
			}
			continue
		}
		m := sectionPattern.FindStringSubmatch(sec.Name())
		if m == nil {
			return nil, &ValidationError{Section: sec.Name(), Reason: "group header is not a quoted submodule name"}
		}
		name := m[1]

		path := strings.TrimSpace(sec.Key("path").String())
		if path == "" {
			return nil, &ValidationError{Section: name, Reason: "missing path"}
		}
		url := strings.TrimSpace(sec.Key("url").String())
		if url == "" {
			return nil, &ValidationError{Section: name, Reason: "missing url"}
		}
		if !urlPattern.MatchString(url) {
			return nil, &ValidationError{Section: name, Reason: fmt.Sprintf("malformed url %q", url)}
		}

		decls = append(decls, Declaration{
			Name:       name,
			Path:       path,
			URL:        url,
			RemoteName: RemoteName(url),
		})
	}
	return decls, nil
}
