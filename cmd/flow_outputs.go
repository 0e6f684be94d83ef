package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	FlowCmd.AddCommand(flowOutputsCmd)
}

var flowOutputsCmd = &cobra.Command{
	Use:   "outputs <execution-id>",
	Short: "List per-node outputs of an execution",
	Long: `Lists each node that ran during an execution with its run count and
outcome. Use 'ngaio flow output' to inspect one node in detail.

Examples:
  ngaio flow outputs 58210`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		FlowLogger.Infof("Starting outputs command")
		spinner, cleanup := startSpinner("Fetching node outputs...", flowVerbose, flowDebug)
		defer cleanup()

		client, _, err := newFlowClient()
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		outputs, err := client.NodeOutputs(context.Background(), args[0])
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		if len(outputs) == 0 {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Execution has no node run data"
			return nil
		}

		var b strings.Builder
		for _, output := range outputs {
			marker := ui.Success.Sprint("✓")
			if output.Failed() {
				marker = ui.Error.Sprint("✗")
			}
			fmt.Fprintf(&b, "%s %s %s\n", marker, output.Node,
				ui.Muted.Sprintf("%d run(s)", len(output.Runs)))
		}
		spinner.FinalMSG = b.String()
		return nil
	},
}
