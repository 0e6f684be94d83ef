package cmd

import (
	"context"
	"fmt"

	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	FlowCmd.AddCommand(flowSearchCmd)
}

var flowSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search workflows by name",
	Long: `Lists workflows whose name contains the term, case-insensitively.

The search happens locally over the full workflow listing; no additional
server calls are made.

Examples:
  ngaio flow search invoice
  ngaio flow -e prod search "daily report"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		FlowLogger.Infof("Starting search command")
		spinner, cleanup := startSpinner("Searching workflows...", flowVerbose, flowDebug)
		defer cleanup()

		client, _, err := newFlowClient()
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		workflows, err := client.SearchWorkflows(context.Background(), args[0])
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		if len(workflows) == 0 {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " No workflows match " + ui.Highlight.Sprint(args[0])
			return nil
		}

		tbl := ui.NewTable("ID", "NAME", "ACTIVE")
		for _, wf := range workflows {
			tbl.AddRow(wf.ID, wf.Name, activeMarker(wf.Active))
		}
		spinner.FinalMSG = fmt.Sprintf("%s%d match(es)\n", tbl.String(), len(workflows))
		return nil
	},
}
