package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ngaio-labs/ngaio/internal/n8n"
	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	FlowCmd.AddCommand(flowExecutionCmd)
}

var flowExecutionCmd = &cobra.Command{
	Use:   "execution <id>",
	Short: "Show one execution",
	Long: `Fetches a single execution including its per-node results and shows a
summary of each node's outcome.

Examples:
  ngaio flow execution 58210
  ngaio flow -e prod execution 58210`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		FlowLogger.Infof("Starting execution command")
		spinner, cleanup := startSpinner("Fetching execution...", flowVerbose, flowDebug)
		defer cleanup()

		client, _, err := newFlowClient()
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		execution, err := client.GetExecution(context.Background(), args[0])
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Execution %s %s\n", ui.Highlight.Sprint(execution.ID.String()),
			ui.Muted.Sprintf("workflow %s", execution.WorkflowID))
		fmt.Fprintf(&b, "Status:  %s\n", statusMarker(execution.Status))
		fmt.Fprintf(&b, "Mode:    %s\n", execution.Mode)
		if execution.StartedAt != nil {
			fmt.Fprintf(&b, "Started: %s\n", execution.StartedAt.Format("2006-01-02 15:04:05"))
		}
		if execution.StoppedAt != nil {
			fmt.Fprintf(&b, "Stopped: %s\n", execution.StoppedAt.Format("2006-01-02 15:04:05"))
		}

		outputs := n8n.CollectNodeOutputs(execution)
		if len(outputs) > 0 {
			fmt.Fprintf(&b, "\nNodes (%d):\n", len(outputs))
			for _, output := range outputs {
				marker := ui.Success.Sprint("✓")
				if output.Failed() {
					marker = ui.Error.Sprint("✗")
				}
				fmt.Fprintf(&b, "  %s %s %s\n", marker, output.Node,
					ui.Muted.Sprintf("%d run(s)", len(output.Runs)))
			}
		}

		spinner.FinalMSG = b.String()
		return nil
	},
}
