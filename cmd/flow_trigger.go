package cmd

import (
	"context"
	"errors"

	kerrors "github.com/ngaio-labs/ngaio/internal/errors"
	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

var triggerData string

func init() {
	flowTriggerCmd.Flags().StringVar(&triggerData, "data", "{}", "JSON payload posted to the webhook")
	FlowCmd.AddCommand(flowTriggerCmd)
}

// resetTriggerCommandState resets the trigger command's global state for testing.
func resetTriggerCommandState() {
	triggerData = "{}"
}

var flowTriggerCmd = &cobra.Command{
	Use:   "trigger <webhook-path>",
	Short: "Trigger a workflow through its production webhook",
	Long: `Posts a JSON payload to a workflow's production webhook path and prints
the raw response.

The payload is validated locally before any request is made; malformed JSON
never reaches the network.

Examples:
  ngaio flow trigger invoice-import
  ngaio flow trigger invoice-import --data '{"invoiceId": 991}'
  ngaio flow -e prod trigger nightly-sync`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		FlowLogger.Infof("Starting trigger command")
		spinner, cleanup := startSpinner("Triggering workflow...", flowVerbose, flowDebug)
		defer cleanup()

		client, _, err := newFlowClient()
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		response, err := client.Trigger(context.Background(), args[0], []byte(triggerData))
		if err != nil {
			switch {
			case errors.Is(err, kerrors.ErrInvalidPayload), errors.Is(err, kerrors.ErrEmptyPayload):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
					ui.Info.Sprint("→") + " Pass a JSON object with " + ui.Code.Sprint("--data")
			default:
				spinner.FinalMSG = formatFlowError(err)
			}
			return err
		}

		msg := ui.Success.Sprint("✓") + " Triggered " + ui.Highlight.Sprint(args[0])
		if response != "" {
			msg += "\n" + response
		}
		spinner.FinalMSG = msg
		return nil
	},
}
