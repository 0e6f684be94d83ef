package bundle

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	kerrors "github.com/ngaio-labs/ngaio/internal/errors"
)

func setupProject(t *testing.T, files map[string]string) string {
	t.Helper()
	projectDir := t.TempDir()
	for name, content := range files {
		full := filepath.Join(projectDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("Failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return projectDir
}

func TestExport_ArchiveContainsFilesAndManifest(t *testing.T) {
	projectDir := setupProject(t, map[string]string{
		".ngaio/evidence.jsonl":    `{"seq":1,"control":"CC6.1","event":"review"}` + "\n",
		"compliance/soc2.yaml":     "framework: SOC 2\n",
		"compliance/iso27001.yaml": "framework: ISO 27001\n",
		"unrelated.txt":            "not exported\n",
	})
	outputPath := filepath.Join(t.TempDir(), "evidence.zip")

	fixed := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	result, err := Export(Options{
		ProjectPath: projectDir,
		Patterns:    []string{".ngaio/evidence.jsonl", "compliance/**/*.yaml"},
		OutputPath:  outputPath,
		Project:     "demo",
		Tool:        "ngaio",
		Clock:       func() time.Time { return fixed },
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if result.Manifest.FileCount != 3 {
		t.Errorf("Expected 3 files in manifest, got %d", result.Manifest.FileCount)
	}
	if !result.Manifest.GeneratedAt.Equal(fixed) {
		t.Errorf("Expected manifest timestamp from injected clock, got %v", result.Manifest.GeneratedAt)
	}

	reader, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer reader.Close()

	names := make(map[string]bool)
	for _, f := range reader.File {
		names[f.Name] = true
	}
	for _, expected := range []string{".ngaio/evidence.jsonl", "compliance/soc2.yaml", "compliance/iso27001.yaml", "manifest.json"} {
		if !names[expected] {
			t.Errorf("Expected %s in archive, have %v", expected, names)
		}
	}
	if names["unrelated.txt"] {
		t.Errorf("unrelated.txt must not be exported")
	}
}

func TestExport_ManifestHashesMatchContent(t *testing.T) {
	content := "framework: SOC 2\ncontrols: []\n"
	projectDir := setupProject(t, map[string]string{
		"compliance/soc2.yaml": content,
	})
	outputPath := filepath.Join(t.TempDir(), "evidence.zip")

	result, err := Export(Options{
		ProjectPath: projectDir,
		Patterns:    []string{"compliance/soc2.yaml"},
		OutputPath:  outputPath,
		Tool:        "ngaio",
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	sum := sha256.Sum256([]byte(content))
	expected := hex.EncodeToString(sum[:])

	if len(result.Manifest.Files) != 1 {
		t.Fatalf("Expected 1 manifest entry, got %d", len(result.Manifest.Files))
	}
	entry := result.Manifest.Files[0]
	if entry.SHA256 != expected {
		t.Errorf("Expected hash %s, got %s", expected, entry.SHA256)
	}
	if entry.Size != int64(len(content)) {
		t.Errorf("Expected size %d, got %d", len(content), entry.Size)
	}

	// The embedded manifest.json must agree with the returned one.
	reader, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer reader.Close()

	var embedded Manifest
	for _, f := range reader.File {
		if f.Name != "manifest.json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open embedded manifest: %v", err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("Failed to read embedded manifest: %v", err)
		}
		if err := json.Unmarshal(data, &embedded); err != nil {
			t.Fatalf("Failed to parse embedded manifest: %v", err)
		}
	}
	if len(embedded.Files) != 1 || embedded.Files[0].SHA256 != expected {
		t.Errorf("Embedded manifest disagrees with returned manifest: %+v", embedded)
	}
}

func TestExport_MissingLiteralFileFailsWithoutArchive(t *testing.T) {
	projectDir := setupProject(t, map[string]string{
		"present.md": "here\n",
	})
	outputDir := t.TempDir()
	outputPath := filepath.Join(outputDir, "evidence.zip")

	_, err := Export(Options{
		ProjectPath: projectDir,
		Patterns:    []string{"present.md", "absent.md"},
		OutputPath:  outputPath,
	})
	if err == nil {
		t.Fatalf("Expected export to fail for missing literal file")
	}

	var missing *MissingFileError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingFileError, got %T: %v", err, err)
	}
	if missing.Path != "absent.md" {
		t.Errorf("Expected missing path absent.md, got %s", missing.Path)
	}
	if !errors.Is(err, kerrors.ErrFileNotFound) {
		t.Errorf("Expected error to unwrap to ErrFileNotFound")
	}

	// No archive, partial or otherwise, may remain on disk.
	entries, readErr := os.ReadDir(outputDir)
	if readErr != nil {
		t.Fatalf("Failed to list output dir: %v", readErr)
	}
	for _, entry := range entries {
		t.Errorf("Unexpected file left in output dir: %s", entry.Name())
	}
}

func TestExport_GlobMatchingNothingIsAllowed(t *testing.T) {
	projectDir := setupProject(t, map[string]string{
		"keep.md": "kept\n",
	})
	outputPath := filepath.Join(t.TempDir(), "evidence.zip")

	result, err := Export(Options{
		ProjectPath: projectDir,
		Patterns:    []string{"keep.md", "compliance/**/*.yaml"},
		OutputPath:  outputPath,
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if result.Manifest.FileCount != 1 {
		t.Errorf("Expected 1 file, got %d", result.Manifest.FileCount)
	}
}

func TestExport_NoFilesAtAll(t *testing.T) {
	projectDir := t.TempDir()
	outputPath := filepath.Join(t.TempDir(), "evidence.zip")

	_, err := Export(Options{
		ProjectPath: projectDir,
		Patterns:    []string{"compliance/**/*.yaml"},
		OutputPath:  outputPath,
	})
	if !errors.Is(err, kerrors.ErrNoFilesFound) {
		t.Errorf("Expected ErrNoFilesFound, got %v", err)
	}
}

func TestExport_DeduplicatesOverlappingPatterns(t *testing.T) {
	projectDir := setupProject(t, map[string]string{
		"compliance/soc2.yaml": "framework: SOC 2\n",
	})
	outputPath := filepath.Join(t.TempDir(), "evidence.zip")

	result, err := Export(Options{
		ProjectPath: projectDir,
		Patterns:    []string{"compliance/soc2.yaml", "compliance/**/*.yaml"},
		OutputPath:  outputPath,
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if result.Manifest.FileCount != 1 {
		t.Errorf("Expected overlapping patterns to dedupe to 1 file, got %d", result.Manifest.FileCount)
	}
}

func TestExport_ArchivePathsUseSlashes(t *testing.T) {
	projectDir := setupProject(t, map[string]string{
		"compliance/nested/deep.yaml": "x: 1\n",
	})
	outputPath := filepath.Join(t.TempDir(), "evidence.zip")

	result, err := Export(Options{
		ProjectPath: projectDir,
		Patterns:    []string{"compliance/**/*.yaml"},
		OutputPath:  outputPath,
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	for _, entry := range result.Manifest.Files {
		if strings.Contains(entry.Path, "\\") {
			t.Errorf("Expected slash-separated archive path, got %s", entry.Path)
		}
	}
}
