// Package gitcmd shells out to the git binary on behalf of the update
// pipeline. Every invocation is context-aware and failures carry the git
// arguments plus captured stderr.
package gitcmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// CommandError is a failed git invocation.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// Client runs git commands against a repository checkout.
type Client struct {
	root string
}

// New returns a Client for the repository rooted at root.
func New(root string) *Client {
	return &Client{root: root}
}

// Root returns the repository root the client operates on.
func (c *Client) Root() string { return c.root }

// HeadCommit returns the full commit hash the submodule at path is checked
// out at. It fails when path is not a valid repository checkout.
func (c *Client) HeadCommit(ctx context.Context, path string) (string, error) {
	out, err := c.run(ctx, c.subdir(path), "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ExactTag reports the tag pointing exactly at the submodule's current
// commit. A describe failure after the checkout has been validated means
// the commit simply is not tagged.
func (c *Client) ExactTag(ctx context.Context, path string) (string, bool, error) {
	out, err := c.run(ctx, c.subdir(path), "describe", "--exact-match", "--tags", "HEAD")
	if err != nil {
		if isExit(err) {
			return "", false, nil
		}
		return "", false, err
	}
	tag := strings.TrimSpace(out)
	return tag, tag != "", nil
}

// NearestTag returns the nearest tag reachable by walking backward from the
// submodule's current commit. Absence of any reachable tag is not an error.
func (c *Client) NearestTag(ctx context.Context, path string) (string, bool, error) {
	out, err := c.run(ctx, c.subdir(path), "describe", "--tags", "--abbrev=0")
	if err != nil {
		if isExit(err) {
			return "", false, nil
		}
		return "", false, err
	}
	tag := strings.TrimSpace(out)
	return tag, tag != "", nil
}

// SubmoduleUpdateRemote fast-forwards the given submodule paths to their
// remote's latest commit in one batched invocation and returns the raw
// stdout, one "Submodule path '<path>': checked out '<sha>'" line per
// submodule that actually moved.
func (c *Client) SubmoduleUpdateRemote(ctx context.Context, paths []string) (string, error) {
	args := append([]string{"submodule", "update", "--remote", "--"}, paths...)
	return c.run(ctx, c.root, args...)
}

// ResetHard forces the submodule working tree at path to exactly ref,
// discarding any local state.
func (c *Client) ResetHard(ctx context.Context, path, ref string) error {
	_, err := c.run(ctx, c.subdir(path), "reset", "--hard", ref)
	return err
}

// TopLevel resolves the root of the repository containing dir.
func TopLevel(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", &CommandError{Args: []string{"rev-parse", "--show-toplevel"}, Stderr: string(out), Err: err}
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *Client) subdir(path string) string {
	return filepath.Join(c.root, filepath.FromSlash(path))
}

func (c *Client) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &CommandError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}

func isExit(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
