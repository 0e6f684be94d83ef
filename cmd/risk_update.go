package cmd

import (
	"fmt"

	"github.com/ngaio-labs/ngaio/internal/configs"
	kerrors "github.com/ngaio-labs/ngaio/internal/errors"
	"github.com/ngaio-labs/ngaio/internal/evidence"
	"github.com/ngaio-labs/ngaio/internal/risk"
	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

var riskUpdateStatus string

func init() {
	riskUpdateCmd.Flags().StringVar(&riskUpdateStatus, "status", "", "new treatment status (Open, Mitigated, Accepted)")
	_ = riskUpdateCmd.MarkFlagRequired("status")
	RiskCmd.AddCommand(riskUpdateCmd)
}

// resetRiskUpdateCommandState resets the update command's global state for testing.
func resetRiskUpdateCommandState() {
	riskUpdateStatus = ""
}

var riskUpdateCmd = &cobra.Command{
	Use:   "update <risk-id>",
	Short: "Update a risk's treatment status",
	Long: `Sets the treatment status of one risk and appends an evidence record for
the change. Status is the only field the CLI mutates.

Examples:
  ngaio risk update R-004 --status Mitigated
  ngaio risk update R-011 --status accepted`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		riskID := args[0]
		RiskLogger.Infof("Starting risk update command for %s", riskID)
		spinner, cleanup := startSpinner("Updating risk status...", riskVerbose, riskDebug)
		defer cleanup()

		status, err := risk.ParseStatus(riskUpdateStatus)
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
			return err
		}

		if err := configs.InitProjectSettings(); err != nil {
			return RiskLogger.ErrorfAndReturn("failed to init project settings: %v", err)
		}
		if configs.ProjectNgaioSettings.ProjectPath == "" {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Ngaio has not been initialized\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("ngaio evidence init") + " first"
			return kerrors.ErrProjectNotInitialized
		}

		registerPath := configs.ProjectNgaioSettings.RiskRegisterPath
		register, err := risk.LoadRegister(registerPath)
		if err != nil {
			return RiskLogger.ErrorfAndReturn("failed to load risk register: %v", err)
		}

		entry, err := register.UpdateStatus(riskID, status)
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Risk " + ui.Highlight.Sprint(riskID) + " not found in register"
			return err
		}

		if err := risk.SaveRegister(registerPath, register); err != nil {
			return RiskLogger.ErrorfAndReturn("failed to save risk register: %v", err)
		}

		record := evidence.Record{
			ControlID: firstControl(entry),
			Event:     fmt.Sprintf("Risk %s status changed to %s", entry.ID, entry.Status),
			ChangeRef: entry.ID,
		}
		if userConfig, err := configs.LoadUserConfig(); err == nil {
			record.Actor = userConfig.User.Email
			record.ActorUUID = userConfig.User.UUID
		}
		if record.Actor == "" {
			record.Actor = configs.UserNgaioSettings.Username
		}
		log := evidence.NewLog(configs.ProjectNgaioSettings.EvidenceLogPath)
		if _, err := log.Append(record); err != nil {
			RiskLogger.Warnf("risk updated but evidence record failed: %v", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Risk " + ui.Highlight.Sprint(entry.ID) +
			" is now " + riskStatusMarker(entry.Status)
		return nil
	},
}

// firstControl picks the control an update record is filed under, if any.
func firstControl(entry risk.Entry) string {
	if len(entry.Controls) > 0 {
		return entry.Controls[0]
	}
	return "RISK"
}
