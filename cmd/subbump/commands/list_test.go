package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subbump/subbump/internal/gitmodules"
)

const listFixture = `[submodule "foo"]
	path = libs/foo
	url = git@github.com:org/foo.git
[submodule "bar"]
	path = vendor/bar
	url = https://github.com/org/bar
`

func writeGitmodules(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, ".gitmodules", content)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestListCommand(t *testing.T) {
	dir := writeGitmodules(t, listFixture)

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"list", "--repo-root", dir})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "foo\tlibs/foo\tgit@github.com:org/foo.git\torg/foo\n")
	assert.Contains(t, out.String(), "bar\tvendor/bar\thttps://github.com/org/bar\torg/bar\n")
}

func TestListCommandJSON(t *testing.T) {
	dir := writeGitmodules(t, listFixture)

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"list", "--repo-root", dir, "--json"})

	require.NoError(t, cmd.Execute())

	var decls []gitmodules.Declaration
	require.NoError(t, json.Unmarshal(out.Bytes(), &decls))
	require.Len(t, decls, 2)
	assert.Equal(t, "foo", decls[0].Name)
	assert.Equal(t, "org/foo", decls[0].RemoteName)
	assert.Equal(t, "vendor/bar", decls[1].Path)
}

func TestListCommandValidationFailure(t *testing.T) {
	dir := writeGitmodules(t, "[submodule \"broken\"]\n\tpath = libs/broken\n")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"list", "--repo-root", dir})

	err := cmd.Execute()
	require.Error(t, err)
	var verr *gitmodules.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "missing url")
}
