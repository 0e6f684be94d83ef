package cmd

import (
	"context"
	"fmt"

	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	FlowCmd.AddCommand(flowCredentialsCmd)
}

var flowCredentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "List stored credentials on the target server",
	Long: `Lists credential metadata from the target server. The API never returns
secret material, only names and types.

Examples:
  ngaio flow credentials
  ngaio flow -e prod credentials`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		FlowLogger.Infof("Starting credentials command")
		spinner, cleanup := startSpinner("Fetching credentials...", flowVerbose, flowDebug)
		defer cleanup()

		client, _, err := newFlowClient()
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		credentials, err := client.ListCredentials(context.Background())
		if err != nil {
			spinner.FinalMSG = formatFlowError(err)
			return err
		}

		if len(credentials) == 0 {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " No credentials found"
			return nil
		}

		tbl := ui.NewTable("ID", "NAME", "TYPE")
		for _, credential := range credentials {
			tbl.AddRow(credential.ID, credential.Name, credential.Type)
		}
		spinner.FinalMSG = fmt.Sprintf("%s%d credential(s)\n", tbl.String(), len(credentials))
		return nil
	},
}
