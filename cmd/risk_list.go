package cmd

import (
	"fmt"
	"strings"

	"github.com/ngaio-labs/ngaio/internal/configs"
	kerrors "github.com/ngaio-labs/ngaio/internal/errors"
	"github.com/ngaio-labs/ngaio/internal/risk"
	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	RiskCmd.AddCommand(riskListCmd)
}

var riskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List risks in the register",
	Long: `Lists every risk in the project register, ordered by ID.

Examples:
  ngaio risk list`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		RiskLogger.Infof("Starting risk list command")

		if err := configs.InitProjectSettings(); err != nil {
			return RiskLogger.ErrorfAndReturn("failed to init project settings: %v", err)
		}
		if configs.ProjectNgaioSettings.ProjectPath == "" {
			fmt.Println(ui.Error.Sprint("✗") + " Ngaio has not been initialized")
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("ngaio evidence init") + " first")
			return kerrors.ErrProjectNotInitialized
		}

		register, err := risk.LoadRegister(configs.ProjectNgaioSettings.RiskRegisterPath)
		if err != nil {
			return RiskLogger.ErrorfAndReturn("failed to load risk register: %v", err)
		}

		risks := register.Sorted()
		if len(risks) == 0 {
			fmt.Println("No risks registered.")
			fmt.Println(ui.Info.Sprint("→") + " Add entries to " + ui.Path.Sprint(".ngaio/risks.yaml"))
			return nil
		}

		tbl := ui.NewTable("ID", "SCORE", "STATUS", "CONTROLS", "DESCRIPTION")
		for _, entry := range risks {
			tbl.AddRow(
				entry.ID,
				fmt.Sprintf("%d", entry.Score),
				riskStatusMarker(entry.Status),
				strings.Join(entry.Controls, ", "),
				entry.Description,
			)
		}
		fmt.Print(tbl.String())
		return nil
	},
}

// riskStatusMarker colors a treatment status for terminal display.
func riskStatusMarker(status risk.Status) string {
	switch status {
	case risk.StatusOpen:
		return ui.Warning.Sprint(string(status))
	case risk.StatusMitigated:
		return ui.Success.Sprint(string(status))
	case risk.StatusAccepted:
		return ui.Info.Sprint(string(status))
	default:
		return string(status)
	}
}
