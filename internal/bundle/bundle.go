package bundle

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/ngaio-labs/ngaio/internal/errors"
)

// FileEntry describes one file included in an evidence package.
type FileEntry struct {
	Path   string `json:"path"` // Project-relative path, as stored in the archive.
	SHA256 string `json:"sha256"`
	Size   int64  `json:"size"`
}

// Manifest is embedded in every evidence package as manifest.json.
type Manifest struct {
	GeneratedAt time.Time   `json:"generated_at"`
	Tool        string      `json:"tool"`
	Project     string      `json:"project,omitempty"`
	FileCount   int         `json:"file_count"`
	Files       []FileEntry `json:"files"`
}

// MissingFileError indicates a literal manifest path that does not exist.
// The export aborts without writing an archive.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("manifest file missing: %s", e.Path)
}

func (e *MissingFileError) Unwrap() error {
	return kerrors.ErrFileNotFound
}

// Options configures an export.
type Options struct {
	// ProjectPath is the project root; all patterns resolve relative to it.
	ProjectPath string

	// Patterns are literal paths or doublestar glob patterns. A literal
	// path that does not exist fails the export; a glob matching nothing
	// is allowed.
	Patterns []string

	// OutputPath is where the ZIP archive is written.
	OutputPath string

	// Project is the project name recorded in the manifest.
	Project string

	// Tool identifies the producing tool and version in the manifest.
	Tool string

	// Clock is the time source for the manifest; nil means time.Now.
	Clock func() time.Time
}

// Result summarizes a completed export.
type Result struct {
	OutputPath string
	Manifest   Manifest
}

// Export resolves the manifest patterns, hashes every file at export time,
// and writes a ZIP archive containing the files plus manifest.json.
//
// The archive is written to a temporary file and renamed into place only on
// success: a failed export never leaves a partial archive on disk.
func Export(opts Options) (*Result, error) {
	files, err := resolvePatterns(opts.ProjectPath, opts.Patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, kerrors.ErrNoFilesFound
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	outputDir := filepath.Dir(opts.OutputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(outputDir, ".ngaio-export-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary archive: %w", err)
	}
	tmpPath := tmp.Name()

	manifest := Manifest{
		GeneratedAt: clock().UTC(),
		Tool:        opts.Tool,
		Project:     opts.Project,
		FileCount:   len(files),
	}

	if err := writeArchive(tmp, opts.ProjectPath, files, &manifest); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return nil, err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("closing archive: %w", err)
	}

	if err := os.Rename(tmpPath, opts.OutputPath); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("moving archive into place: %w", err)
	}

	return &Result{OutputPath: opts.OutputPath, Manifest: manifest}, nil
}

// resolvePatterns expands every pattern relative to the project root into a
// sorted, de-duplicated list of project-relative file paths.
func resolvePatterns(projectPath string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		if !isGlob(pattern) {
			full := filepath.Join(projectPath, pattern)
			info, err := os.Stat(full)
			if os.IsNotExist(err) {
				return nil, &MissingFileError{Path: pattern}
			}
			if err != nil {
				return nil, fmt.Errorf("checking manifest file %s: %w", pattern, err)
			}
			if !info.IsDir() {
				seen[filepath.ToSlash(pattern)] = true
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(
			filepath.Join(projectPath, pattern),
			doublestar.WithFilesOnly(),
		)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			rel, err := filepath.Rel(projectPath, match)
			if err != nil {
				return nil, fmt.Errorf("resolving %s: %w", match, err)
			}
			seen[filepath.ToSlash(rel)] = true
		}
	}

	files := make([]string, 0, len(seen))
	for file := range seen {
		files = append(files, file)
	}
	sort.Strings(files)
	return files, nil
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// writeArchive streams every file into a ZIP written to w, hashing content
// as it is copied, then appends manifest.json. Hashes are always computed at
// export time, never trusted from a cache.
func writeArchive(w io.Writer, projectPath string, files []string, manifest *Manifest) error {
	zw := zip.NewWriter(w)

	for _, rel := range files {
		entry, err := addFileToZip(zw, projectPath, rel)
		if err != nil {
			_ = zw.Close()
			return err
		}
		manifest.Files = append(manifest.Files, entry)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		_ = zw.Close()
		return fmt.Errorf("encoding manifest: %w", err)
	}

	f, err := zw.Create("manifest.json")
	if err != nil {
		_ = zw.Close()
		return fmt.Errorf("adding manifest to archive: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = zw.Close()
		return fmt.Errorf("writing manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}

// addFileToZip copies one file into the archive and returns its manifest
// entry with the content hash computed during the copy.
func addFileToZip(zw *zip.Writer, projectPath, rel string) (FileEntry, error) {
	full := filepath.Join(projectPath, filepath.FromSlash(rel))

	f, err := os.Open(full)
	if err != nil {
		return FileEntry{}, fmt.Errorf("opening %s: %w", rel, err)
	}
	defer f.Close()

	entry, err := zw.Create(rel)
	if err != nil {
		return FileEntry{}, fmt.Errorf("adding %s to archive: %w", rel, err)
	}

	hasher := sha256.New()
	size, err := io.Copy(io.MultiWriter(entry, hasher), f)
	if err != nil {
		return FileEntry{}, fmt.Errorf("writing %s: %w", rel, err)
	}

	return FileEntry{
		Path:   rel,
		SHA256: hex.EncodeToString(hasher.Sum(nil)),
		Size:   size,
	}, nil
}
