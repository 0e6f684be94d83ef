package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func setupUserSettings(t *testing.T) {
	t.Helper()
	original := UserNgaioSettings
	UserNgaioSettings = &UserSettings{
		UserConfigsPath: filepath.Join(t.TempDir(), "config"),
		Username:        "testuser",
	}
	t.Cleanup(func() {
		UserNgaioSettings = original
	})
}

func setupProjectSettings(t *testing.T) string {
	t.Helper()
	projectDir := t.TempDir()
	original := ProjectNgaioSettings
	ProjectNgaioSettings = &ProjectSettings{
		ProjectName: filepath.Base(projectDir),
		ProjectPath: projectDir,
	}
	t.Cleanup(func() {
		ProjectNgaioSettings = original
	})
	return projectDir
}

func TestLoadUserConfig_MissingFileIsEmpty(t *testing.T) {
	setupUserSettings(t)

	config, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if config.User.Email != "" || config.User.UUID != "" {
		t.Errorf("Expected empty config, got %+v", config)
	}
}

func TestSaveAndLoadUserConfig_RoundTrip(t *testing.T) {
	setupUserSettings(t)

	saved := &UserConfig{User: User{Email: "alice@example.com", UUID: "uuid-1234"}}
	if err := SaveUserConfig(saved); err != nil {
		t.Fatalf("SaveUserConfig failed: %v", err)
	}

	loaded, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if loaded.User.Email != "alice@example.com" || loaded.User.UUID != "uuid-1234" {
		t.Errorf("Round trip mismatch: %+v", loaded)
	}
}

func TestEnsureUserConfig_AssignsUUIDOnce(t *testing.T) {
	setupUserSettings(t)

	first, err := EnsureUserConfig()
	if err != nil {
		t.Fatalf("EnsureUserConfig failed: %v", err)
	}
	if first.User.UUID == "" {
		t.Fatalf("Expected a UUID to be assigned")
	}

	second, err := EnsureUserConfig()
	if err != nil {
		t.Fatalf("EnsureUserConfig failed: %v", err)
	}
	if second.User.UUID != first.User.UUID {
		t.Errorf("Expected stable UUID, got %s then %s", first.User.UUID, second.User.UUID)
	}
}

func TestSaveAndLoadProjectConfig_RoundTrip(t *testing.T) {
	projectDir := setupProjectSettings(t)

	saved := &ProjectConfig{
		Project: Project{UUID: GenerateProjectUUID(), Name: "payments"},
		Evidence: EvidenceConfig{
			Repository: "github.com/acme/payments",
		},
		Export: ExportConfig{
			Include: []string{".ngaio/evidence.jsonl", "compliance/**/*.yaml"},
		},
	}
	if err := SaveProjectConfig(saved); err != nil {
		t.Fatalf("SaveProjectConfig failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(projectDir, ".ngaio", "config.toml")); err != nil {
		t.Fatalf("Expected config file to exist: %v", err)
	}

	loaded, err := LoadProjectConfig()
	if err != nil {
		t.Fatalf("LoadProjectConfig failed: %v", err)
	}
	if loaded.Project.Name != "payments" {
		t.Errorf("Expected project name payments, got %s", loaded.Project.Name)
	}
	if loaded.Evidence.Repository != "github.com/acme/payments" {
		t.Errorf("Expected repository to round-trip, got %s", loaded.Evidence.Repository)
	}
	if len(loaded.Export.Include) != 2 {
		t.Errorf("Expected 2 include patterns, got %v", loaded.Export.Include)
	}
}

func TestGenerateProjectUUID_Unique(t *testing.T) {
	a := GenerateProjectUUID()
	b := GenerateProjectUUID()
	if a == "" || a == b {
		t.Errorf("Expected distinct non-empty UUIDs, got %q and %q", a, b)
	}
}
