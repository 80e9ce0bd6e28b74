package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestCLIContract(t *testing.T) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("root command failed: %v", err)
	}

	out := b.String()

	// Assert top-level commands that are part of the core contract
	requiredCommands := []string{
		"completion",
		"help",
		"list",
		"update",
		"version",
	}

	for _, c := range requiredCommands {
		if !strings.Contains(out, c) {
			t.Errorf("expected top-level command %q in root help", c)
		}
	}
}

func TestCLICommandUpdateHelp(t *testing.T) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"update", "--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("update command failed: %v", err)
	}

	out := b.String()
	if !strings.Contains(out, "Usage:") {
		t.Errorf("expected usage info in update help")
	}

	// Assert the stable flag set.
	for _, flag := range []string{"--config", "--paths", "--strategy", "--repo-root", "--json"} {
		if !strings.Contains(out, flag) {
			t.Errorf("expected flag %q in update help", flag)
		}
	}
}
