package cmd

import (
	"context"
	"fmt"

	"github.com/ngaio-labs/ngaio/internal/n8n"
	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

var workflowsActiveOnly bool

func init() {
	flowWorkflowsCmd.Flags().BoolVar(&workflowsActiveOnly, "active", false, "show only workflows with the active flag set")
	FlowCmd.AddCommand(flowWorkflowsCmd)
}

// resetWorkflowsCommandState resets the workflows command's global state for testing.
func resetWorkflowsCommandState() {
	workflowsActiveOnly = false
}

var flowWorkflowsCmd = &cobra.Command{
	Use:   "workflows",
	Short: "List workflows on the target server",
	Long: `Lists every workflow the target server knows about.

With --active, the list is filtered to workflows whose active flag is set.
The filter happens locally over the full listing; ordering is preserved.

Examples:
  ngaio flow workflows                # All workflows on the default environment
  ngaio flow -e prod workflows        # All workflows on the prod environment
  ngaio flow workflows --active       # Only active workflows`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		FlowLogger.Infof("Starting workflows command")
		spinner, cleanup := startSpinner("Fetching workflows...", flowVerbose, flowDebug)
		defer cleanup()

		client, _, err := newFlowClient()
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		var workflows []n8n.Workflow
		if workflowsActiveOnly {
			workflows, err = client.ActiveWorkflows(context.Background())
		} else {
			workflows, err = client.ListWorkflows(context.Background())
		}
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}
		FlowLogger.Debugf("Fetched %d workflows", len(workflows))

		if len(workflows) == 0 {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " No workflows found"
			return nil
		}

		tbl := ui.NewTable("ID", "NAME", "ACTIVE", "UPDATED")
		for _, wf := range workflows {
			tbl.AddRow(wf.ID, wf.Name, activeMarker(wf.Active), wf.UpdatedAt.Format("2006-01-02 15:04"))
		}
		spinner.FinalMSG = fmt.Sprintf("%s%d workflow(s)\n", tbl.String(), len(workflows))
		return nil
	},
}

func activeMarker(active bool) string {
	if active {
		return ui.Success.Sprint("yes")
	}
	return ui.Muted.Sprint("no")
}
