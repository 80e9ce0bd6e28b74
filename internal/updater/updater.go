// SPDX-License-Identifier: AGPL-3.0-or-later

// Package updater advances git submodules to their remotes' latest state.
//
// The pipeline runs in fixed stages: load declarations into records enriched
// with each checkout's current state, select the records the strategy can act
// on, fast-forward them in one batched git invocation, and, under the tag
// strategy, snap each advanced submodule back to its nearest tag. Data flows
// strictly forward; an empty result at any stage ends the run as a success
// with nothing to report.
package updater

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/subbump/subbump/internal/gitmodules"
)

// Git is the version-control collaborator the pipeline drives. *gitcmd.Client
// implements it against a real checkout.
type Git interface {
	HeadCommit(ctx context.Context, path string) (string, error)
	ExactTag(ctx context.Context, path string) (string, bool, error)
	NearestTag(ctx context.Context, path string) (string, bool, error)
	SubmoduleUpdateRemote(ctx context.Context, paths []string) (string, error)
	ResetHard(ctx context.Context, path, ref string) error
}

// Updater runs the pipeline against a single repository checkout.
type Updater struct {
	git Git
	log zerolog.Logger
}

// New creates an Updater backed by the given git collaborator.
func New(git Git, log zerolog.Logger) *Updater {
	return &Updater{git: git, log: log}
}

// Run executes the full pipeline over the given declarations and returns the
// submodules that actually moved. A nil slice with a nil error means there
// was nothing to do.
func (u *Updater) Run(ctx context.Context, decls []gitmodules.Declaration, paths []string, strategy Strategy) ([]*Submodule, error) {
	if len(decls) == 0 {
		u.log.Info().Msg("no submodules declared")
		return nil, nil
	}

	subs, err := u.Load(ctx, decls)
	if err != nil {
		return nil, err
	}

	selected := Select(subs, paths, strategy)
	if len(selected) == 0 {
		u.log.Info().Msg("no submodules selected")
		return nil, nil
	}

	updated, err := u.Advance(ctx, selected)
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		u.log.Info().Msg("all submodules already up to date")
		return nil, nil
	}

	if strategy == StrategyTag {
		if err := u.SnapToTags(ctx, updated); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

// Load builds one record per declaration, enriched with the current state of
// that submodule's checkout: its commit, whether the commit is tagged, and
// the nearest tag reachable from it. A path that is not a valid checkout
// fails the run.
func (u *Updater) Load(ctx context.Context, decls []gitmodules.Declaration) ([]*Submodule, error) {
	subs := make([]*Submodule, 0, len(decls))
	for _, d := range decls {
		head, err := u.git.HeadCommit(ctx, d.Path)
		if err != nil {
			return nil, fmt.Errorf("reading state of %s: %w", d.Path, err)
		}

		_, tagged, err := u.git.ExactTag(ctx, d.Path)
		if err != nil {
			return nil, fmt.Errorf("checking tag state of %s: %w", d.Path, err)
		}

		sub := &Submodule{
			Name:       d.Name,
			Path:       d.Path,
			URL:        d.URL,
			RemoteName: d.RemoteName,

			PreviousCommitSha:      head,
			PreviousShortCommitSha: shortSha(head),
			PreviousCommitHasTag:   tagged,

			LatestCommitSha:      head,
			LatestShortCommitSha: shortSha(head),
		}

		if tag, ok, err := u.git.NearestTag(ctx, d.Path); err != nil {
			return nil, fmt.Errorf("finding nearest tag of %s: %w", d.Path, err)
		} else if ok {
			sub.PreviousTag = tag
		}

		u.log.Debug().
			Str("path", sub.Path).
			Str("commit", sub.PreviousShortCommitSha).
			Bool("tagged", tagged).
			Str("nearestTag", sub.PreviousTag).
			Msg("loaded submodule")
		subs = append(subs, sub)
	}
	return subs, nil
}

// Select filters records down to those the strategy can act on, restricted
// to the given paths when the list is non-empty. Under the tag strategy a
// record with no reachable tag is dropped: there is nothing to snap it to.
// Input order is preserved.
func Select(subs []*Submodule, paths []string, strategy Strategy) []*Submodule {
	selected := make([]*Submodule, 0, len(subs))
	for _, s := range subs {
		if strategy == StrategyTag && s.PreviousTag == "" {
			continue
		}
		if len(paths) > 0 && !slices.Contains(paths, s.Path) {
			continue
		}
		selected = append(selected, s)
	}
	return selected
}

// Advance fast-forwards the given submodules to their remotes' latest
// commits in a single batched git invocation and returns the subset that
// actually changed. Records the remote did not move are dropped from the
// result, not mutated.
func (u *Updater) Advance(ctx context.Context, subs []*Submodule) ([]*Submodule, error) {
	if len(subs) == 0 {
		return nil, nil
	}

	paths := make([]string, len(subs))
	for i, s := range subs {
		paths[i] = s.Path
	}

	out, err := u.git.SubmoduleUpdateRemote(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("advancing submodules: %w", err)
	}

	checkouts := parseCheckouts(out)
	if len(checkouts) == 0 {
		return nil, nil
	}

	updated := make([]*Submodule, 0, len(subs))
	for _, s := range subs {
		sha, ok := checkouts[s.Path]
		if !ok {
			continue
		}
		s.LatestCommitSha = sha
		s.LatestShortCommitSha = shortSha(sha)
		u.log.Info().
			Str("path", s.Path).
			Str("from", s.PreviousShortCommitSha).
			Str("to", s.LatestShortCommitSha).
			Msg("advanced submodule")
		updated = append(updated, s)
	}
	return updated, nil
}

// parseCheckouts extracts path to commit mappings from git's update report.
// Each checkout line carries them as the second and fourth single-quoted
// tokens:
//
//	Submodule path 'libs/foo': checked out 'abc123...'
//
// Any other line is ignored.
func parseCheckouts(out string) map[string]string {
	checkouts := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Split(line, "'")
		if len(parts) < 5 {
			continue
		}
		checkouts[parts[1]] = parts[3]
	}
	return checkouts
}

// SnapToTags resets each submodule to the nearest tag reachable from its new
// commit and records that tag on the record. The resets run concurrently;
// every submodule owns a disjoint working tree. The first failure cancels
// the rest and fails the run.
func (u *Updater) SnapToTags(ctx context.Context, subs []*Submodule) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range subs {
		s := s // per-iteration copy; required for correctness under go < 1.22
		g.Go(func() error {
			tag, ok, err := u.git.NearestTag(ctx, s.Path)
			if err != nil {
				return fmt.Errorf("finding tag for %s: %w", s.Path, err)
			}
			if !ok {
				return fmt.Errorf("no tag reachable from %s after update", s.Path)
			}
			if err := u.git.ResetHard(ctx, s.Path, tag); err != nil {
				return fmt.Errorf("snapping %s to %s: %w", s.Path, tag, err)
			}
			s.LatestTag = tag
			u.log.Info().Str("path", s.Path).Str("tag", tag).Msg("snapped to tag")
			return nil
		})
	}
	return g.Wait()
}
