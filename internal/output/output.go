// SPDX-License-Identifier: AGPL-3.0-or-later

// Package output serializes the final record set for the CI orchestrator:
// a JSON array of all records, a build-matrix blob for job fan-out, PR body
// text, and a flat set of namespaced key/value outputs per record. The Sink
// decides where those land (the Actions output file or stdout).
package output

import (
	"encoding/json"
	"strconv"

	"github.com/subbump/subbump/internal/updater"
)

// Names of the run-level outputs. Per-record outputs are namespaced by the
// record's name and, when different, its path.
const (
	KeyJSON   = "json"
	KeyMatrix = "matrix"
	KeyPRBody = "pr-body"
)

// KV is one named output value.
type KV struct {
	Key   string
	Value string
}

// Report wraps the records the pipeline ended with.
type Report struct {
	Submodules []*updater.Submodule
}

// NewReport builds a Report over the updated submodules. A nil slice is
// normalized so the JSON forms encode as empty arrays.
func NewReport(subs []*updater.Submodule) *Report {
	if subs == nil {
		subs = []*updater.Submodule{}
	}
	return &Report{Submodules: subs}
}

// Empty reports whether there is anything to publish.
func (r *Report) Empty() bool { return len(r.Submodules) == 0 }

// matrix is the fan-out structure CI consumes: one job name per record plus
// the records themselves under include.
type matrix struct {
	Name    []string             `json:"name"`
	Include []*updater.Submodule `json:"include"`
}

// Outputs flattens the report into the full ordered output set: the
// run-level json, matrix and pr-body values first, then the per-record
// values in record order. An empty report yields no outputs at all.
func (r *Report) Outputs() ([]KV, error) {
	if r.Empty() {
		return nil, nil
	}

	blob, err := json.Marshal(r.Submodules)
	if err != nil {
		return nil, err
	}

	m := matrix{Name: make([]string, 0, len(r.Submodules)), Include: r.Submodules}
	for _, s := range r.Submodules {
		m.Name = append(m.Name, s.Name)
	}
	matrixBlob, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}

	outs := []KV{
		{KeyJSON, string(blob)},
		{KeyMatrix, string(matrixBlob)},
		{KeyPRBody, r.PRBody()},
	}
	for _, s := range r.Submodules {
		for _, ns := range namespaces(s) {
			outs = append(outs, recordOutputs(ns, s)...)
		}
	}
	return outs, nil
}

// namespaces returns the key prefixes a record publishes under. Records
// whose declared name already equals their path publish once.
func namespaces(s *updater.Submodule) []string {
	if s.Name == s.Path {
		return []string{s.Name}
	}
	return []string{s.Name, s.Path}
}

func recordOutputs(ns string, s *updater.Submodule) []KV {
	key := func(suffix string) string { return ns + "--" + suffix }
	return []KV{
		{key("updated"), strconv.FormatBool(s.Updated())},
		{key("path"), s.Path},
		{key("url"), s.URL},
		{key("remote-name"), s.RemoteName},
		{key("previous-commit"), s.PreviousCommitSha},
		{key("previous-short-commit"), s.PreviousShortCommitSha},
		{key("previous-tag"), s.PreviousTag},
		{key("latest-commit"), s.LatestCommitSha},
		{key("latest-short-commit"), s.LatestShortCommitSha},
		{key("latest-tag"), s.LatestTag},
		{key("pr-body"), SubmodulePRBody(s)},
	}
}
