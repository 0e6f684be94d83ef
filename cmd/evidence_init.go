package cmd

import (
	"os"
	"path/filepath"

	"github.com/ngaio-labs/ngaio/internal/configs"
	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/ngaio-labs/ngaio/internal/utils"
	"github.com/spf13/cobra"
)

func init() {
	EvidenceCmd.AddCommand(evidenceInitCmd)
}

var evidenceInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize evidence tracking in the current repository",
	Long: `Creates the .ngaio directory with a project configuration, ready for
evidence records, a risk register, and evidence exports.

Examples:
  ngaio evidence init`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		EvidenceLogger.Infof("Starting evidence init command")
		spinner, cleanup := startSpinner("Initializing evidence tracking...", evidenceVerbose, evidenceDebug)
		defer cleanup()

		existingRoot, err := utils.FindProjectNgaioRoot()
		if err != nil {
			return EvidenceLogger.ErrorfAndReturn("failed to check project status: %v", err)
		}
		if existingRoot != "" {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Project already initialized at " + ui.Path.Sprint(existingRoot)
			return nil
		}

		workingDir, err := os.Getwd()
		if err != nil {
			return EvidenceLogger.ErrorfAndReturn("failed to get working directory: %v", err)
		}

		ngaioDir := filepath.Join(workingDir, ".ngaio")
		if err := os.MkdirAll(ngaioDir, 0755); err != nil {
			return EvidenceLogger.ErrorfAndReturn("failed to create .ngaio directory: %v", err)
		}

		if err := configs.InitProjectSettings(); err != nil {
			return EvidenceLogger.ErrorfAndReturn("failed to init project settings: %v", err)
		}

		// Create the log and register up front so the default export
		// manifest resolves on a fresh project.
		for _, name := range []string{"evidence.jsonl", "risks.yaml"} {
			f, err := os.OpenFile(filepath.Join(ngaioDir, name), os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				return EvidenceLogger.ErrorfAndReturn("failed to create %s: %v", name, err)
			}
			if err := f.Close(); err != nil {
				return EvidenceLogger.ErrorfAndReturn("failed to create %s: %v", name, err)
			}
		}

		projectConfig := &configs.ProjectConfig{
			Project: configs.Project{
				UUID: configs.GenerateProjectUUID(),
				Name: filepath.Base(workingDir),
			},
			Export: configs.ExportConfig{
				// Sensible starting manifest; teams extend it in config.toml.
				Include: []string{
					".ngaio/evidence.jsonl",
					".ngaio/risks.yaml",
					"compliance/**/*.yaml",
				},
			},
		}
		if err := configs.SaveProjectConfig(projectConfig); err != nil {
			return EvidenceLogger.ErrorfAndReturn("failed to save project config: %v", err)
		}

		if _, err := configs.EnsureUserConfig(); err != nil {
			EvidenceLogger.Warnf("could not ensure user config: %v", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Initialized evidence tracking in " + ui.Path.Sprint(ngaioDir) + "\n" +
			ui.Info.Sprint("→") + " Record evidence with " + ui.Code.Sprint("ngaio evidence record")
		return nil
	},
}
