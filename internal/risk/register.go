package risk

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	kerrors "github.com/ngaio-labs/ngaio/internal/errors"
)

// Status is a risk treatment status.
type Status string

const (
	StatusOpen      Status = "Open"
	StatusMitigated Status = "Mitigated"
	StatusAccepted  Status = "Accepted"
)

// ParseStatus converts user input into a Status, case-insensitively.
//
// Returns ErrInvalidStatus naming the allowed values for anything else.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return StatusOpen, nil
	case "mitigated":
		return StatusMitigated, nil
	case "accepted":
		return StatusAccepted, nil
	default:
		return "", fmt.Errorf("%w: %q (allowed: Open, Mitigated, Accepted)",
			kerrors.ErrInvalidStatus, s)
	}
}

// Entry is one risk in the register. Entries are mutated only through
// explicit status updates; everything else is edited in the register file
// directly and reviewed like any other change.
type Entry struct {
	ID          string   `yaml:"id"`
	Description string   `yaml:"description"`
	Score       int      `yaml:"score"`
	Controls    []string `yaml:"controls,omitempty"`
	Status      Status   `yaml:"status"`
}

// Register is the project risk register, persisted as YAML.
type Register struct {
	Risks []Entry `yaml:"risks"`
}

// LoadRegister reads the register file. A missing file yields an empty
// register, not an error.
func LoadRegister(path string) (*Register, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Register{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading risk register: %w", err)
	}

	var register Register
	if err := yaml.Unmarshal(data, &register); err != nil {
		return nil, fmt.Errorf("parsing risk register %s: %w", path, err)
	}

	return &register, nil
}

// SaveRegister writes the register file.
func SaveRegister(path string, register *Register) error {
	data, err := yaml.Marshal(register)
	if err != nil {
		return fmt.Errorf("encoding risk register: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating register directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing risk register: %w", err)
	}
	return nil
}

// Find returns the entry with the given ID, case-insensitively.
func (r *Register) Find(id string) (*Entry, bool) {
	for i := range r.Risks {
		if strings.EqualFold(r.Risks[i].ID, id) {
			return &r.Risks[i], true
		}
	}
	return nil, false
}

// UpdateStatus sets the treatment status of one risk and returns the updated
// entry. This is the only supported mutation.
//
// Returns ErrRiskNotFound if no entry has the given ID.
func (r *Register) UpdateStatus(id string, status Status) (Entry, error) {
	entry, ok := r.Find(id)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", kerrors.ErrRiskNotFound, id)
	}
	entry.Status = status
	return *entry, nil
}

// Sorted returns the entries ordered by ID.
func (r *Register) Sorted() []Entry {
	sorted := make([]Entry, len(r.Risks))
	copy(sorted, r.Risks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
