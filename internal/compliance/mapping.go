package compliance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	kerrors "github.com/ngaio-labs/ngaio/internal/errors"
)

// Mapping is a control-to-evidence mapping file for one compliance
// framework (SOC 2, ISO 27001, ...).
type Mapping struct {
	Framework string  `yaml:"framework"`
	Version   string  `yaml:"version,omitempty"`
	Controls  []Entry `yaml:"controls"`
}

// Entry maps one control to its requirement text and evidence references.
type Entry struct {
	Control     string   `yaml:"control"`
	Requirement string   `yaml:"requirement"`
	Evidence    []string `yaml:"evidence"`
}

// EntryError identifies one invalid mapping entry and the field it is
// missing. Invalid entries are reported but do not abort report rendering.
type EntryError struct {
	// Index is the zero-based position of the entry in the mapping.
	Index int

	// Control is the entry's control ID, if it had one.
	Control string

	// Field is the missing required field.
	Field string
}

func (e EntryError) Error() string {
	if e.Control != "" {
		return fmt.Sprintf("entry %d (%s): missing required field %q", e.Index+1, e.Control, e.Field)
	}
	return fmt.Sprintf("entry %d: missing required field %q", e.Index+1, e.Field)
}

// LoadMapping reads and parses a mapping YAML file.
//
// Returns ErrMappingNotFound if the file does not exist.
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrMappingNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading mapping file: %w", err)
	}

	var mapping Mapping
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("parsing mapping file %s: %w", path, err)
	}

	return &mapping, nil
}

// Validate checks every entry for required fields. It returns one EntryError
// per problem; a single entry can contribute several. An empty result means
// the mapping is fully valid.
func (m *Mapping) Validate() []EntryError {
	var errs []EntryError
	for i, entry := range m.Controls {
		if entry.Control == "" {
			errs = append(errs, EntryError{Index: i, Field: "control"})
		}
		if entry.Requirement == "" {
			errs = append(errs, EntryError{Index: i, Control: entry.Control, Field: "requirement"})
		}
		if len(entry.Evidence) == 0 {
			errs = append(errs, EntryError{Index: i, Control: entry.Control, Field: "evidence"})
		}
	}
	return errs
}

// valid reports whether the entry at index i has all required fields.
func (m *Mapping) valid(i int) bool {
	entry := m.Controls[i]
	return entry.Control != "" && entry.Requirement != "" && len(entry.Evidence) > 0
}
