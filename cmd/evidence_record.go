package cmd

import (
	"fmt"

	"github.com/ngaio-labs/ngaio/internal/configs"
	kerrors "github.com/ngaio-labs/ngaio/internal/errors"
	"github.com/ngaio-labs/ngaio/internal/evidence"
	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

var (
	recordControl string
	recordEvent   string
	recordRepo    string
	recordRef     string
)

func init() {
	evidenceRecordCmd.Flags().StringVar(&recordControl, "control", "", "control ID the event evidences (e.g. CC6.1)")
	evidenceRecordCmd.Flags().StringVar(&recordEvent, "event", "", "event description")
	evidenceRecordCmd.Flags().StringVar(&recordRepo, "repo", "", "repository reference (default: project config)")
	evidenceRecordCmd.Flags().StringVar(&recordRef, "ref", "", "change reference (commit SHA, PR number, ticket)")
	_ = evidenceRecordCmd.MarkFlagRequired("control")
	_ = evidenceRecordCmd.MarkFlagRequired("event")
	EvidenceCmd.AddCommand(evidenceRecordCmd)
}

// resetRecordCommandState resets the record command's global state for testing.
func resetRecordCommandState() {
	recordControl = ""
	recordEvent = ""
	recordRepo = ""
	recordRef = ""
}

var evidenceRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Append one evidence record to the log",
	Long: `Appends a timestamped evidence record to the append-only evidence log.
Records get a monotonically increasing sequence number; prior entries are
never rewritten.

Examples:
  ngaio evidence record --control CC6.1 --event "Quarterly access review completed"
  ngaio evidence record --control A.12.4 --event "Alert runbook exercised" --ref PR-812`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		EvidenceLogger.Infof("Starting evidence record command")
		spinner, cleanup := startSpinner("Appending evidence record...", evidenceVerbose, evidenceDebug)
		defer cleanup()

		if err := configs.InitProjectSettings(); err != nil {
			return EvidenceLogger.ErrorfAndReturn("failed to init project settings: %v", err)
		}
		if configs.ProjectNgaioSettings.ProjectPath == "" {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Ngaio has not been initialized\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("ngaio evidence init") + " first"
			return kerrors.ErrProjectNotInitialized
		}

		repo := recordRepo
		if repo == "" {
			if projectConfig, err := configs.LoadProjectConfig(); err == nil {
				repo = projectConfig.Evidence.Repository
			}
		}

		record := evidence.Record{
			ControlID:  recordControl,
			Event:      recordEvent,
			Repository: repo,
			ChangeRef:  recordRef,
		}
		if userConfig, err := configs.LoadUserConfig(); err == nil {
			record.Actor = userConfig.User.Email
			record.ActorUUID = userConfig.User.UUID
		}
		if record.Actor == "" {
			record.Actor = configs.UserNgaioSettings.Username
		}

		log := evidence.NewLog(configs.ProjectNgaioSettings.EvidenceLogPath)
		appended, err := log.Append(record)
		if err != nil {
			return EvidenceLogger.ErrorfAndReturn("failed to append evidence record: %v", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Recorded evidence " +
			ui.Highlight.Sprintf("#%d", appended.Seq) + " for control " +
			ui.Highlight.Sprint(appended.ControlID) + "\n" +
			ui.Muted.Sprint(fmt.Sprintf("%s by %s", appended.Timestamp, appended.Actor))
		return nil
	},
}
