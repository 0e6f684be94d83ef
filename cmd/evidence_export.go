package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/ngaio-labs/ngaio/internal/bundle"
	"github.com/ngaio-labs/ngaio/internal/configs"
	kerrors "github.com/ngaio-labs/ngaio/internal/errors"
	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

var exportOutput string

func init() {
	evidenceExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path for the archive (default: ngaio-evidence-<date>.zip)")
	EvidenceCmd.AddCommand(evidenceExportCmd)
}

// resetExportCommandState resets the export command's global state for testing.
func resetExportCommandState() {
	exportOutput = ""
}

var evidenceExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Package evidence files into a ZIP archive",
	Long: `Collects the files listed under [export] in .ngaio/config.toml into a
ZIP archive, together with a manifest recording a SHA-256 hash of every
file as it was at export time. A literal path that does not exist fails
the export; a glob matching nothing is fine.

Examples:
  ngaio evidence export
  ngaio evidence export -o audits/2026-q3-evidence.zip`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		EvidenceLogger.Infof("Starting evidence export command")
		spinner, cleanup := startSpinner("Packaging evidence files...", evidenceVerbose, evidenceDebug)
		defer cleanup()

		if err := configs.InitProjectSettings(); err != nil {
			return EvidenceLogger.ErrorfAndReturn("failed to init project settings: %v", err)
		}
		if configs.ProjectNgaioSettings.ProjectPath == "" {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Ngaio has not been initialized\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("ngaio evidence init") + " first"
			return kerrors.ErrProjectNotInitialized
		}

		projectConfig, err := configs.LoadProjectConfig()
		if err != nil {
			return EvidenceLogger.ErrorfAndReturn("failed to load project config: %v", err)
		}
		EvidenceLogger.Debugf("Export manifest has %d pattern(s)", len(projectConfig.Export.Include))

		output := exportOutput
		if output == "" {
			output = fmt.Sprintf("ngaio-evidence-%s.zip", time.Now().Format("2006-01-02"))
		}

		result, err := bundle.Export(bundle.Options{
			ProjectPath: configs.ProjectNgaioSettings.ProjectPath,
			Patterns:    projectConfig.Export.Include,
			OutputPath:  output,
			Project:     projectConfig.Project.Name,
			Tool:        "ngaio",
		})
		if err != nil {
			var missing *bundle.MissingFileError
			switch {
			case errors.As(err, &missing):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Manifest file missing: " + ui.Path.Sprint(missing.Path) + "\n" +
					ui.Info.Sprint("→") + " Fix the path under " + ui.Code.Sprint("[export]") + " in " + ui.Path.Sprint(".ngaio/config.toml")
			case errors.Is(err, kerrors.ErrNoFilesFound):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " No files matched the export manifest\n" +
					ui.Info.Sprint("→") + " Add patterns under " + ui.Code.Sprint("[export]") + " in " + ui.Path.Sprint(".ngaio/config.toml")
			default:
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Export failed: " + err.Error()
			}
			return err
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Exported " +
			ui.Highlight.Sprintf("%d file(s)", result.Manifest.FileCount) + " to " +
			ui.Path.Sprint(result.OutputPath) + "\n" +
			ui.Muted.Sprint("Hashes recorded in manifest.json inside the archive")
		return nil
	},
}
