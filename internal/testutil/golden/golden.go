// Package golden asserts test output against checked-in .golden files.
// Run the tests with -update to rewrite the files from observed output.
package golden

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var update = flag.Bool("update", false, "rewrite golden files with observed output")

// Assert fails the test when got differs from testdata/<name>.golden in the
// calling package. With -update the file is rewritten first.
func Assert(t *testing.T, name, got string) {
	t.Helper()
	path := goldenPath(t, name)

	if *update {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("mkdir testdata: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0o600); err != nil {
			t.Fatalf("write golden %s: %v", path, err)
		}
	}

	want, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("golden file %s missing; run go test -update to create it", path)
		}
		t.Fatalf("read golden %s: %v", path, err)
	}
	if got != string(want) {
		t.Fatalf("output differs from %s\n got:\n%s\nwant:\n%s", path, got, want)
	}
}

func goldenPath(t *testing.T, name string) string {
	t.Helper()
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		t.Fatalf("invalid golden name %q", name)
	}
	return filepath.Join("testdata", name+".golden")
}
