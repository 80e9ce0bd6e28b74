package commands

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subbump/subbump/cmd/subbump/internal/clierr"
)

func TestUpdateCommandInvalidStrategy(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"update", "--strategy", "branch", "--repo-root", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid strategy")
	assert.Equal(t, 2, clierr.ExitCodeOf(err))
}

func TestUpdateCommandMissingDeclarationFile(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"update", "--repo-root", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), ".gitmodules")
	assert.Equal(t, 1, clierr.ExitCodeOf(err))
}

func TestUpdateCommandBadDefaultsFile(t *testing.T) {
	dir := writeGitmodules(t, listFixture)
	writeFile(t, dir, ".subbump.yaml", "strategy: [not. a. string\n")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"update", "--repo-root", dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".subbump.yaml")
	assert.Equal(t, 2, clierr.ExitCodeOf(err))
}
