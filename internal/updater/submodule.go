// SPDX-License-Identifier: AGPL-3.0-or-later

package updater

// Submodule is the unit of work flowing through the pipeline: one declared
// submodule plus the version state observed before and after advancement.
// Latest starts out equal to Previous and only diverges once the remote
// reports a change.
type Submodule struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	URL        string `json:"url"`
	RemoteName string `json:"remoteName"`

	PreviousCommitSha      string `json:"previousCommitSha"`
	PreviousShortCommitSha string `json:"previousShortCommitSha"`
	PreviousCommitHasTag   bool   `json:"previousCommitHasTag"`
	PreviousTag            string `json:"previousTag,omitempty"`

	LatestCommitSha      string `json:"latestCommitSha"`
	LatestShortCommitSha string `json:"latestShortCommitSha"`
	LatestTag            string `json:"latestTag,omitempty"`
}

// Updated reports whether the advancer moved this submodule past the commit
// it was on when the run started.
func (s *Submodule) Updated() bool {
	return s.LatestCommitSha != s.PreviousCommitSha
}

const shortShaLen = 7

func shortSha(sha string) string {
	if len(sha) <= shortShaLen {
		return sha
	}
	return sha[:shortShaLen]
}
