package evidence

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ngaio-labs/ngaio/cmd"
	"github.com/ngaio-labs/ngaio/internal/configs"
	"github.com/ngaio-labs/ngaio/test/integration/shared"
)

// TestEvidenceLifecycle covers the `ngaio evidence` commands end to end:
// init, record, log, report, and export against a real temp project.
func TestEvidenceLifecycle(t *testing.T) {
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get original working directory: %v", err)
	}

	originalUserSettings := configs.UserNgaioSettings

	t.Run("InitCreatesProject", func(t *testing.T) {
		tempDir := t.TempDir()
		tempUserDir := t.TempDir()
		shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
		cmd.ResetEvidenceState()

		output, err := shared.CaptureOutput(func() error {
			cli := shared.CreateTestCLI("evidence", []string{"init"}, nil, nil, false, false)
			return cli.Execute()
		})
		if err != nil {
			t.Fatalf("Init failed: %v\nOutput: %s", err, output)
		}

		shared.VerifyProjectStructure(t, tempDir)
	})

	t.Run("InitTwiceWarnsWithoutError", func(t *testing.T) {
		tempDir := t.TempDir()
		tempUserDir := t.TempDir()
		shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
		cmd.ResetEvidenceState()

		shared.InitializeProject(t, tempDir)

		output, err := shared.CaptureOutput(func() error {
			cli := shared.CreateTestCLI("evidence", []string{"init"}, nil, nil, false, false)
			return cli.Execute()
		})
		if err != nil {
			t.Fatalf("Second init should not fail: %v", err)
		}
		if !strings.Contains(output, "already initialized") {
			t.Errorf("Expected already-initialized warning, got: %s", output)
		}
	})

	t.Run("RecordThenLog", func(t *testing.T) {
		tempDir := t.TempDir()
		tempUserDir := t.TempDir()
		shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
		cmd.ResetEvidenceState()

		shared.InitializeProject(t, tempDir)

		_, err := shared.CaptureOutput(func() error {
			cli := shared.CreateTestCLI("evidence", []string{
				"record", "--control", "CC6.1", "--event", "Quarterly access review completed",
			}, nil, nil, false, false)
			return cli.Execute()
		})
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		cmd.ResetEvidenceState()
		_, err = shared.CaptureOutput(func() error {
			cli := shared.CreateTestCLI("evidence", []string{
				"record", "--control", "CC7.2", "--event", "Alert runbook exercised", "--ref", "PR-812",
			}, nil, nil, false, false)
			return cli.Execute()
		})
		if err != nil {
			t.Fatalf("Second record failed: %v", err)
		}

		cmd.ResetEvidenceState()
		output, err := shared.CaptureOutput(func() error {
			cli := shared.CreateTestCLI("evidence", []string{"log"}, nil, nil, false, false)
			return cli.Execute()
		})
		if err != nil {
			t.Fatalf("Log failed: %v", err)
		}
		if !strings.Contains(output, "CC6.1") || !strings.Contains(output, "CC7.2") {
			t.Errorf("Expected both controls in log output, got: %s", output)
		}

		cmd.ResetEvidenceState()
		output, err = shared.CaptureOutput(func() error {
			cli := shared.CreateTestCLI("evidence", []string{"log", "--control", "CC6.1"}, nil, nil, false, false)
			return cli.Execute()
		})
		if err != nil {
			t.Fatalf("Filtered log failed: %v", err)
		}
		if !strings.Contains(output, "CC6.1") || strings.Contains(output, "CC7.2") {
			t.Errorf("Expected only CC6.1 in filtered output, got: %s", output)
		}
	})

	t.Run("RecordOutsideProjectFails", func(t *testing.T) {
		tempDir := t.TempDir()
		tempUserDir := t.TempDir()
		shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
		cmd.ResetEvidenceState()

		_, err := shared.CaptureOutput(func() error {
			cli := shared.CreateTestCLI("evidence", []string{
				"record", "--control", "CC6.1", "--event", "should fail",
			}, nil, nil, false, false)
			return cli.Execute()
		})
		if err == nil {
			t.Fatalf("Expected record to fail outside an initialized project")
		}
	})

	t.Run("ReportRendersMapping", func(t *testing.T) {
		tempDir := t.TempDir()
		tempUserDir := t.TempDir()
		shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
		cmd.ResetEvidenceState()

		shared.InitializeProject(t, tempDir)

		mappingPath := filepath.Join(tempDir, "mapping.yaml")
		mapping := `framework: SOC 2
controls:
  - control: CC6.1
    requirement: Logical access is restricted
    evidence:
      - .ngaio/evidence.jsonl
  - control: CC7.2
    requirement: ""
    evidence: []
`
		if err := os.WriteFile(mappingPath, []byte(mapping), 0644); err != nil {
			t.Fatalf("Failed to write mapping: %v", err)
		}

		reportPath := filepath.Join(tempDir, "report.md")
		_, err := shared.CaptureOutput(func() error {
			cli := shared.CreateTestCLI("evidence", []string{"report", mappingPath, "-o", reportPath}, nil, nil, false, false)
			return cli.Execute()
		})
		if err != nil {
			t.Fatalf("Report failed: %v", err)
		}

		rendered, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("Failed to read report: %v", err)
		}
		if !strings.Contains(string(rendered), "| CC6.1 |") {
			t.Errorf("Expected CC6.1 row in report, got:\n%s", rendered)
		}
		if !strings.Contains(string(rendered), "## Validation issues") {
			t.Errorf("Expected validation issues section for the invalid entry")
		}
	})

	t.Run("ExportPackagesEvidence", func(t *testing.T) {
		tempDir := t.TempDir()
		tempUserDir := t.TempDir()
		shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
		cmd.ResetEvidenceState()

		shared.InitializeProject(t, tempDir)

		cmd.ResetEvidenceState()
		_, err := shared.CaptureOutput(func() error {
			cli := shared.CreateTestCLI("evidence", []string{
				"record", "--control", "CC6.1", "--event", "export fixture",
			}, nil, nil, false, false)
			return cli.Execute()
		})
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		archivePath := filepath.Join(tempDir, "evidence.zip")
		cmd.ResetEvidenceState()
		_, err = shared.CaptureOutput(func() error {
			cli := shared.CreateTestCLI("evidence", []string{"export", "-o", archivePath}, nil, nil, false, false)
			return cli.Execute()
		})
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}

		reader, err := zip.OpenReader(archivePath)
		if err != nil {
			t.Fatalf("Failed to open archive: %v", err)
		}
		defer reader.Close()

		names := make(map[string]bool)
		for _, f := range reader.File {
			names[f.Name] = true
		}
		if !names[".ngaio/evidence.jsonl"] {
			t.Errorf("Expected evidence log in archive, have %v", names)
		}
		if !names["manifest.json"] {
			t.Errorf("Expected manifest.json in archive")
		}
	})
}
