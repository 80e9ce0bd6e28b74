package output

import (
	"fmt"
	"strings"

	"github.com/subbump/subbump/internal/updater"
)

// SubmodulePRBody renders the one-line change description for a single
// record, suitable for a PR body bullet or a per-record output.
func SubmodulePRBody(s *updater.Submodule) string {
	body := fmt.Sprintf("Bump `%s` (%s) from `%s` to `%s`.",
		s.Path, s.RemoteName, s.PreviousShortCommitSha, s.LatestShortCommitSha)
	if s.LatestTag != "" {
		body += fmt.Sprintf(" Now at tag `%s`", s.LatestTag)
		if s.PreviousTag != "" {
			body += fmt.Sprintf(" (was `%s`)", s.PreviousTag)
		}
		body += "."
	}
	return body
}

// PRBody renders the aggregate change description covering all records.
func (r *Report) PRBody() string {
	if r.Empty() {
		return ""
	}
	items := make([]string, 0, len(r.Submodules))
	for _, s := range r.Submodules {
		items = append(items, SubmodulePRBody(s))
	}
	return renderHeader(2, "Submodule updates") + renderList(items)
}

// StepSummary renders the markdown table shown on the workflow summary page.
func (r *Report) StepSummary() string {
	rows := make([][]string, 0, len(r.Submodules))
	for _, s := range r.Submodules {
		rows = append(rows, []string{
			s.Name, s.Path, s.PreviousShortCommitSha, s.LatestShortCommitSha, s.LatestTag,
		})
	}
	return renderHeader(2, "Submodule updates") +
		renderTable([]string{"Submodule", "Path", "From", "To", "Tag"}, rows)
}

// renderTable renders a Markdown table. Rows are emitted in the order given.
func renderTable(headers []string, rows [][]string) string {
	var b strings.Builder

	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")

	b.WriteString("|")
	for range headers {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for _, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}

	return b.String()
}

// renderList renders an unordered Markdown list.
func renderList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(fmt.Sprintf("- %s\n", item))
	}
	return b.String()
}

// renderHeader renders a Markdown header.
func renderHeader(level int, text string) string {
	return fmt.Sprintf("%s %s\n\n", strings.Repeat("#", level), text)
}
