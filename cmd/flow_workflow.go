package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	FlowCmd.AddCommand(flowWorkflowCmd)
}

var flowWorkflowCmd = &cobra.Command{
	Use:   "workflow <id>",
	Short: "Show one workflow",
	Long: `Fetches a single workflow by ID and shows its nodes and tags.

Examples:
  ngaio flow workflow 1042
  ngaio flow -e staging workflow aBcDeF123`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		FlowLogger.Infof("Starting workflow command")
		spinner, cleanup := startSpinner("Fetching workflow...", flowVerbose, flowDebug)
		defer cleanup()

		client, _, err := newFlowClient()
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		workflow, err := client.GetWorkflow(context.Background(), args[0])
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s %s\n", ui.Highlight.Sprint(workflow.Name), ui.Muted.Sprint(workflow.ID))
		fmt.Fprintf(&b, "Active:  %s\n", activeMarker(workflow.Active))
		fmt.Fprintf(&b, "Updated: %s\n", workflow.UpdatedAt.Format("2006-01-02 15:04:05"))

		if len(workflow.Tags) > 0 {
			names := make([]string, len(workflow.Tags))
			for i, tag := range workflow.Tags {
				names[i] = tag.Name
			}
			fmt.Fprintf(&b, "Tags:    %s\n", strings.Join(names, ", "))
		}

		if len(workflow.Nodes) > 0 {
			fmt.Fprintf(&b, "\nNodes (%d):\n", len(workflow.Nodes))
			for _, node := range workflow.Nodes {
				fmt.Fprintf(&b, "  %s %s\n", node.Name, ui.Muted.Sprint(node.Type))
			}
		}

		spinner.FinalMSG = b.String()
		return nil
	},
}
