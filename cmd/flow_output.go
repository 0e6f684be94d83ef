package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	FlowCmd.AddCommand(flowOutputCmd)
}

var flowOutputCmd = &cobra.Command{
	Use:   "output <execution-id> <node>",
	Short: "Show one node's output from an execution",
	Long: `Shows the run data a single node produced during an execution,
including any error marker.

Examples:
  ngaio flow output 58210 "HTTP Request"
  ngaio flow output 58210 Webhook`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		FlowLogger.Infof("Starting output command")
		spinner, cleanup := startSpinner("Fetching node output...", flowVerbose, flowDebug)
		defer cleanup()

		client, _, err := newFlowClient()
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		output, err := client.NodeOutput(context.Background(), args[0], args[1])
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		if output == nil {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Node " + ui.Highlight.Sprint(args[1]) +
				" produced no output in execution " + args[0]
			return nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s %s\n", ui.Highlight.Sprint(output.Node),
			ui.Muted.Sprintf("%d run(s)", len(output.Runs)))

		for i, run := range output.Runs {
			fmt.Fprintf(&b, "\nRun %d %s\n", i+1, ui.Muted.Sprintf("%dms", run.ExecutionTime))
			if run.Error != nil {
				fmt.Fprintf(&b, "  %s %s\n", ui.Error.Sprint("✗"), run.Error.Message)
				if run.Error.Description != "" {
					fmt.Fprintf(&b, "    %s\n", run.Error.Description)
				}
			}
			if len(run.Data) > 0 {
				var pretty bytes.Buffer
				if err := json.Indent(&pretty, run.Data, "  ", "  "); err == nil {
					fmt.Fprintf(&b, "  %s\n", pretty.String())
				} else {
					fmt.Fprintf(&b, "  %s\n", string(run.Data))
				}
			}
		}

		spinner.FinalMSG = b.String()
		return nil
	},
}
