package cmd

import (
	"context"
	"fmt"

	"github.com/ngaio-labs/ngaio/internal/n8n"
	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

var (
	executionsWorkflowID string
	executionsStatus     string
)

func init() {
	flowExecutionsCmd.Flags().StringVar(&executionsWorkflowID, "workflow", "", "limit to executions of one workflow ID")
	flowExecutionsCmd.Flags().StringVar(&executionsStatus, "status", "", "limit to one status (success, error, waiting)")
	FlowCmd.AddCommand(flowExecutionsCmd)
}

// resetExecutionsCommandState resets the executions command's global state for testing.
func resetExecutionsCommandState() {
	executionsWorkflowID = ""
	executionsStatus = ""
}

var flowExecutionsCmd = &cobra.Command{
	Use:   "executions",
	Short: "List workflow executions",
	Long: `Lists execution runs on the target server, most recent first as the
server returns them.

Examples:
  ngaio flow executions                      # Recent executions
  ngaio flow executions --workflow 1042      # Executions of one workflow
  ngaio flow executions --status error       # Failed executions only`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		FlowLogger.Infof("Starting executions command")
		spinner, cleanup := startSpinner("Fetching executions...", flowVerbose, flowDebug)
		defer cleanup()

		client, _, err := newFlowClient()
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		executions, err := client.ListExecutions(context.Background(), n8n.ExecutionListOptions{
			WorkflowID: executionsWorkflowID,
			Status:     executionsStatus,
		})
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}
		FlowLogger.Debugf("Fetched %d executions", len(executions))

		if len(executions) == 0 {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " No executions found"
			return nil
		}

		tbl := ui.NewTable("ID", "WORKFLOW", "STATUS", "STARTED")
		for _, execution := range executions {
			started := ""
			if execution.StartedAt != nil {
				started = execution.StartedAt.Format("2006-01-02 15:04:05")
			}
			tbl.AddRow(execution.ID.String(), execution.WorkflowID, statusMarker(execution.Status), started)
		}
		spinner.FinalMSG = fmt.Sprintf("%s%d execution(s)\n", tbl.String(), len(executions))
		return nil
	},
}

func statusMarker(status string) string {
	switch status {
	case "success":
		return ui.Success.Sprint(status)
	case "error", "crashed", "failed":
		return ui.Error.Sprint(status)
	default:
		return status
	}
}
