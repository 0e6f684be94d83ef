package compliance

import (
	"strings"
	"testing"
	"time"
)

func TestRenderReport_FullMapping(t *testing.T) {
	mapping := &Mapping{
		Framework: "SOC 2",
		Version:   "2017",
		Controls: []Entry{
			{Control: "CC6.1", Requirement: "Logical access is restricted", Evidence: []string{"access-policy.md", "evidence.jsonl"}},
			{Control: "CC7.2", Requirement: "Anomalies are monitored", Evidence: []string{"alerts.json"}},
		},
	}

	generatedAt := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	report := RenderReport(mapping, generatedAt)

	if report.RenderedEntries != 2 {
		t.Errorf("Expected 2 rendered entries, got %d", report.RenderedEntries)
	}
	if len(report.Problems) != 0 {
		t.Errorf("Expected no problems, got %v", report.Problems)
	}
	if !strings.Contains(report.Markdown, "# SOC 2 Control Mapping Report") {
		t.Errorf("Expected report title, got:\n%s", report.Markdown)
	}
	if !strings.Contains(report.Markdown, "Framework version: 2017") {
		t.Errorf("Expected framework version line")
	}
	if !strings.Contains(report.Markdown, "Generated: 2026-08-25T10:00:00Z") {
		t.Errorf("Expected deterministic generation timestamp")
	}
	if !strings.Contains(report.Markdown, "| CC6.1 | Logical access is restricted | access-policy.md, evidence.jsonl |") {
		t.Errorf("Expected CC6.1 table row, got:\n%s", report.Markdown)
	}
}

func TestRenderReport_SkipsInvalidEntriesAndContinues(t *testing.T) {
	mapping := &Mapping{
		Framework: "ISO 27001",
		Controls: []Entry{
			{Control: "A.9.2", Requirement: "User access provisioning", Evidence: []string{"joiners.md"}},
			{Control: "A.12.4"}, // Missing requirement and evidence.
			{Control: "A.16.1", Requirement: "Incident management", Evidence: []string{"runbook.md"}},
		},
	}

	report := RenderReport(mapping, time.Now())

	if report.RenderedEntries != 2 {
		t.Errorf("Expected 2 rendered entries, got %d", report.RenderedEntries)
	}
	if len(report.Problems) != 2 {
		t.Errorf("Expected 2 problems for the invalid entry, got %d", len(report.Problems))
	}
	if strings.Contains(report.Markdown, "| A.12.4 |") {
		t.Errorf("Invalid entry must not appear in the table")
	}
	if !strings.Contains(report.Markdown, "## Validation issues") {
		t.Errorf("Expected validation issues section")
	}
	if !strings.Contains(report.Markdown, "| A.16.1 | Incident management | runbook.md |") {
		t.Errorf("Expected entries after the invalid one to still render")
	}
}

func TestRenderReport_EmptyFrameworkFallsBack(t *testing.T) {
	report := RenderReport(&Mapping{}, time.Now())
	if !strings.Contains(report.Markdown, "# Compliance Control Mapping Report") {
		t.Errorf("Expected fallback title, got:\n%s", report.Markdown)
	}
}

func TestRenderReport_EscapesTableBreakingContent(t *testing.T) {
	mapping := &Mapping{
		Framework: "SOC 2",
		Controls: []Entry{
			{Control: "CC1.1", Requirement: "Has | a pipe\nand a newline", Evidence: []string{"e.md"}},
		},
	}

	report := RenderReport(mapping, time.Now())
	if !strings.Contains(report.Markdown, `Has \| a pipe and a newline`) {
		t.Errorf("Expected escaped cell content, got:\n%s", report.Markdown)
	}
}
