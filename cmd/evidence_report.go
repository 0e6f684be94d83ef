package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/ngaio-labs/ngaio/internal/compliance"
	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

var reportOutput string

func init() {
	evidenceReportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write the report to a file instead of stdout")
	EvidenceCmd.AddCommand(evidenceReportCmd)
}

// resetReportCommandState resets the report command's global state for testing.
func resetReportCommandState() {
	reportOutput = ""
}

var evidenceReportCmd = &cobra.Command{
	Use:   "report <mapping.yaml>",
	Short: "Render a control-mapping report",
	Long: `Reads a control-mapping YAML file and renders a Markdown report. Entries
that fail validation are skipped and listed at the end of the report;
rendering continues for the rest.

Examples:
  ngaio evidence report compliance/soc2.yaml
  ngaio evidence report compliance/soc2.yaml -o reports/soc2.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mappingPath := args[0]
		EvidenceLogger.Infof("Starting evidence report command for %s", mappingPath)
		spinner, cleanup := startSpinner("Rendering control-mapping report...", evidenceVerbose, evidenceDebug)
		defer cleanup()

		mapping, err := compliance.LoadMapping(mappingPath)
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Could not load mapping " + ui.Path.Sprint(mappingPath) + "\n" +
				ui.Muted.Sprint(err.Error())
			return err
		}
		EvidenceLogger.Debugf("Loaded mapping with %d control entries", len(mapping.Controls))

		report := compliance.RenderReport(mapping, time.Now())
		for _, problem := range report.Problems {
			EvidenceLogger.Warnf("%s", problem.Error())
		}

		if reportOutput == "" {
			spinner.FinalMSG = ""
			fmt.Print(report.Markdown)
			return nil
		}

		if err := os.WriteFile(reportOutput, []byte(report.Markdown), 0644); err != nil {
			return EvidenceLogger.ErrorfAndReturn("failed to write report: %v", err)
		}

		summary := ui.Success.Sprint("✓") + " Wrote report to " + ui.Path.Sprint(reportOutput) + "\n" +
			ui.Muted.Sprintf("%d control(s) rendered", report.RenderedEntries)
		if len(report.Problems) > 0 {
			summary += "\n" + ui.Warning.Sprint("⚠") + ui.Muted.Sprintf(" %d entr(ies) skipped, see report", len(report.Problems))
		}
		spinner.FinalMSG = summary
		return nil
	},
}
