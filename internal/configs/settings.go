package configs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ngaio-labs/ngaio/internal/utils"
)

type UserSettings struct {
	UserConfigsPath string
	Username        string
}

type ProjectSettings struct {
	ProjectUUID      string
	ProjectName      string
	ProjectPath      string
	EvidenceLogPath  string
	RiskRegisterPath string
}

var (
	UserNgaioSettings    *UserSettings
	ProjectNgaioSettings *ProjectSettings
)

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	username, err := utils.GetUsername()
	if err != nil {
		log.Fatalf("error getting username: %s", err)
	}

	// User settings are independent of what repo you are in, so it is ok
	// to init here.
	UserNgaioSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "ngaio"),
		Username:        username,
	}
	ProjectNgaioSettings = &ProjectSettings{}
}

// InitProjectSettings locates the project root and fills in the
// project-scoped paths. Safe to call on an uninitialized project: paths stay
// empty and callers check ProjectPath before using them.
func InitProjectSettings() error {
	projectName, err := utils.GetProjectName()
	if err != nil {
		return fmt.Errorf("error getting project name: %w", err)
	}

	projectPath, err := utils.FindProjectNgaioRoot()
	if err != nil {
		return fmt.Errorf("error getting project root: %w", err)
	}

	settings := &ProjectSettings{
		ProjectName: projectName,
		ProjectPath: projectPath,
	}
	if projectPath != "" {
		settings.EvidenceLogPath = filepath.Join(projectPath, ".ngaio", "evidence.jsonl")
		settings.RiskRegisterPath = filepath.Join(projectPath, ".ngaio", "risks.yaml")
	}
	ProjectNgaioSettings = settings

	return nil
}
