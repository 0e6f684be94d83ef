package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	kerrors "github.com/ngaio-labs/ngaio/internal/errors"
)

type UserConfig struct {
	User User `toml:"user"`
}

type User struct {
	Email string `toml:"email"`
	UUID  string `toml:"user_uuid"`
}

type ProjectConfig struct {
	Project  Project        `toml:"project"`
	Evidence EvidenceConfig `toml:"evidence"`
	Export   ExportConfig   `toml:"export"`
}

type Project struct {
	UUID string `toml:"project_uuid"`
	Name string `toml:"name"`
}

// EvidenceConfig holds defaults stamped onto evidence records.
type EvidenceConfig struct {
	// Repository is the default repository reference for records,
	// e.g. "github.com/acme/payments".
	Repository string `toml:"repository"`
}

// ExportConfig controls which files the evidence package exporter includes.
type ExportConfig struct {
	// Include is a list of doublestar glob patterns (or literal paths)
	// relative to the project root.
	Include []string `toml:"include"`
}

// LoadUserConfig loads the user configuration from the config file.
// A missing file yields an empty config, not an error.
func LoadUserConfig() (*UserConfig, error) {
	configPath := filepath.Join(UserNgaioSettings.UserConfigsPath, "config.toml")

	config := &UserConfig{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	configPath := filepath.Join(UserNgaioSettings.UserConfigsPath, "config.toml")

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}

// EnsureUserConfig ensures the user configuration exists and has a UUID.
func EnsureUserConfig() (*UserConfig, error) {
	config, err := LoadUserConfig()
	if err != nil {
		return nil, err
	}

	if config.User.UUID == "" {
		config.User.UUID = uuid.New().String()
		if err := SaveUserConfig(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// LoadProjectConfig loads the project configuration from .ngaio/config.toml.
// Note: Caller should ensure InitProjectSettings is called first.
func LoadProjectConfig() (*ProjectConfig, error) {
	configPath := filepath.Join(ProjectNgaioSettings.ProjectPath, ".ngaio", "config.toml")

	config := &ProjectConfig{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidProjectConfig, err)
	}

	return config, nil
}

// SaveProjectConfig saves the project configuration to .ngaio/config.toml.
// Note: Caller should ensure InitProjectSettings is called first.
func SaveProjectConfig(config *ProjectConfig) error {
	configPath := filepath.Join(ProjectNgaioSettings.ProjectPath, ".ngaio", "config.toml")

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save project config: %w", err)
	}

	return nil
}

// GenerateProjectUUID generates a new UUID for the project.
func GenerateProjectUUID() string {
	return uuid.New().String()
}
