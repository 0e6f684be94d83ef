package cmd

import (
	"fmt"
	"strings"

	kerrors "github.com/ngaio-labs/ngaio/internal/errors"
	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	FlowCmd.AddCommand(flowEnvsCmd)
}

var flowEnvsCmd = &cobra.Command{
	Use:   "envs",
	Short: "List configured environments",
	Long: `Lists the environments found in the process configuration, including
incomplete ones (missing one of the two keys). No server is contacted.

Examples:
  ngaio flow envs`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		FlowLogger.Infof("Starting envs command")

		names := flowEnvConfig.Names()
		hasDefault := flowEnvConfig.HasDefault()

		if len(names) == 0 && !hasDefault {
			fmt.Println(ui.Warning.Sprint("⚠") + " No environments configured")
			fmt.Println(ui.Info.Sprint("→") + " Set " + ui.Code.Sprint("N8N_URL") + " and " +
				ui.Code.Sprint("N8N_API_KEY") + ", or the " + ui.Code.Sprint("N8N_<NAME>_*") + " variants")
			return kerrors.ErrNoEnvironments
		}

		var b strings.Builder
		if hasDefault {
			fmt.Fprintf(&b, "%s default %s\n", ui.Success.Sprint("✓"), ui.Muted.Sprint("N8N_URL"))
		}
		for _, name := range names {
			if flowEnvConfig.IsComplete(name) {
				fmt.Fprintf(&b, "%s %s\n", ui.Success.Sprint("✓"), name)
			} else {
				fmt.Fprintf(&b, "%s %s %s\n", ui.Warning.Sprint("⚠"), name, ui.Muted.Sprint("incomplete"))
			}
		}
		if override := flowEnvConfig.DefaultOverride(); override != "" {
			fmt.Fprintf(&b, "%s %s selects the default environment\n",
				ui.Info.Sprint("→"), ui.Code.Sprint("N8N_ENV="+override))
		}
		fmt.Print(b.String())
		return nil
	},
}
