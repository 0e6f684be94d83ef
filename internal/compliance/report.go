package compliance

import (
	"fmt"
	"strings"
	"time"
)

// Report is the rendered output of a mapping plus the validation problems
// encountered along the way.
type Report struct {
	// Markdown is the rendered report document.
	Markdown string

	// RenderedEntries is the number of entries included in the table.
	RenderedEntries int

	// Problems lists the entries that were skipped and why.
	Problems []EntryError
}

// RenderReport renders a mapping as a Markdown table report. Invalid entries
// are skipped and reported in Problems; rendering continues for the
// remainder. The function is pure: the generation time is a parameter.
func RenderReport(mapping *Mapping, generatedAt time.Time) *Report {
	report := &Report{Problems: mapping.Validate()}

	var b strings.Builder

	title := mapping.Framework
	if title == "" {
		title = "Compliance"
	}
	fmt.Fprintf(&b, "# %s Control Mapping Report\n\n", title)
	if mapping.Version != "" {
		fmt.Fprintf(&b, "Framework version: %s\n\n", mapping.Version)
	}
	fmt.Fprintf(&b, "Generated: %s\n\n", generatedAt.UTC().Format(time.RFC3339))

	b.WriteString("| Control | Requirement | Evidence |\n")
	b.WriteString("| --- | --- | --- |\n")

	for i, entry := range mapping.Controls {
		if !mapping.valid(i) {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			escapeCell(entry.Control),
			escapeCell(entry.Requirement),
			escapeCell(strings.Join(entry.Evidence, ", ")))
		report.RenderedEntries++
	}

	if len(report.Problems) > 0 {
		b.WriteString("\n## Validation issues\n\n")
		for _, problem := range report.Problems {
			fmt.Fprintf(&b, "- %s\n", problem.Error())
		}
	}

	report.Markdown = b.String()
	return report
}

// escapeCell keeps cell content from breaking the Markdown table.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
