package compliance

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/ngaio-labs/ngaio/internal/errors"
)

func writeMapping(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write mapping file: %v", err)
	}
	return path
}

func TestLoadMapping_Valid(t *testing.T) {
	path := writeMapping(t, `framework: SOC 2
version: "2017"
controls:
  - control: CC6.1
    requirement: Logical access controls restrict access
    evidence:
      - .ngaio/evidence.jsonl
      - docs/access-policy.md
  - control: CC7.2
    requirement: Anomalies are monitored and alerted on
    evidence:
      - dashboards/alerts.json
`)

	mapping, err := LoadMapping(path)
	if err != nil {
		t.Fatalf("LoadMapping failed: %v", err)
	}
	if mapping.Framework != "SOC 2" {
		t.Errorf("Expected framework SOC 2, got %s", mapping.Framework)
	}
	if len(mapping.Controls) != 2 {
		t.Fatalf("Expected 2 controls, got %d", len(mapping.Controls))
	}
	if len(mapping.Controls[0].Evidence) != 2 {
		t.Errorf("Expected 2 evidence refs on CC6.1, got %d", len(mapping.Controls[0].Evidence))
	}
	if problems := mapping.Validate(); len(problems) != 0 {
		t.Errorf("Expected no validation problems, got %v", problems)
	}
}

func TestLoadMapping_Missing(t *testing.T) {
	_, err := LoadMapping(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if !errors.Is(err, kerrors.ErrMappingNotFound) {
		t.Errorf("Expected ErrMappingNotFound, got %v", err)
	}
}

func TestLoadMapping_MalformedYAML(t *testing.T) {
	path := writeMapping(t, "framework: [unclosed\n")
	if _, err := LoadMapping(path); err == nil {
		t.Fatalf("Expected parse error for malformed YAML")
	}
}

func TestValidate_ReportsEveryMissingField(t *testing.T) {
	mapping := &Mapping{
		Framework: "SOC 2",
		Controls: []Entry{
			{Control: "CC6.1", Requirement: "ok", Evidence: []string{"a"}},
			{Requirement: "no control here", Evidence: []string{"b"}},
			{Control: "CC7.2"},
		},
	}

	problems := mapping.Validate()
	if len(problems) != 3 {
		t.Fatalf("Expected 3 problems, got %d: %v", len(problems), problems)
	}

	fields := map[string]int{}
	for _, p := range problems {
		fields[p.Field]++
	}
	if fields["control"] != 1 || fields["requirement"] != 1 || fields["evidence"] != 1 {
		t.Errorf("Unexpected problem fields: %v", fields)
	}
}

func TestEntryError_MessageIsOneBased(t *testing.T) {
	err := EntryError{Index: 0, Field: "control"}
	if got := err.Error(); got != `entry 1: missing required field "control"` {
		t.Errorf("Unexpected message: %s", got)
	}

	withControl := EntryError{Index: 2, Control: "CC7.2", Field: "evidence"}
	if got := withControl.Error(); got != `entry 3 (CC7.2): missing required field "evidence"` {
		t.Errorf("Unexpected message: %s", got)
	}
}
