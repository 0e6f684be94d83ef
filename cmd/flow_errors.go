package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	FlowCmd.AddCommand(flowErrorsCmd)
}

var flowErrorsCmd = &cobra.Command{
	Use:   "errors <execution-id>",
	Short: "List failed nodes in an execution",
	Long: `Shows the nodes whose run data carries an error marker for one
execution. The filter happens locally over the fetched execution; no
additional server calls are made.

Examples:
  ngaio flow errors 58210`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		FlowLogger.Infof("Starting errors command")
		spinner, cleanup := startSpinner("Fetching execution errors...", flowVerbose, flowDebug)
		defer cleanup()

		client, _, err := newFlowClient()
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		failed, err := client.ExecutionErrors(context.Background(), args[0])
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		if len(failed) == 0 {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " No node errors in execution " + ui.Highlight.Sprint(args[0])
			return nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s %d node(s) failed in execution %s\n\n",
			ui.Error.Sprint("✗"), len(failed), args[0])
		for _, output := range failed {
			for _, run := range output.Runs {
				if run.Error == nil {
					continue
				}
				fmt.Fprintf(&b, "  %s: %s\n", ui.Highlight.Sprint(output.Node), run.Error.Message)
				if run.Error.Description != "" {
					fmt.Fprintf(&b, "    %s\n", ui.Muted.Sprint(run.Error.Description))
				}
			}
		}
		spinner.FinalMSG = b.String()
		return nil
	},
}
