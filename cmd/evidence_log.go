package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ngaio-labs/ngaio/internal/configs"
	kerrors "github.com/ngaio-labs/ngaio/internal/errors"
	"github.com/ngaio-labs/ngaio/internal/evidence"
	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

var (
	evidenceLogLimit   int
	evidenceLogReverse bool
	evidenceLogControl string
	evidenceLogActor   string
	evidenceLogSince   string
	evidenceLogUntil   string
	evidenceLogJSON    bool
)

func init() {
	evidenceLogCmd.Flags().IntVarP(&evidenceLogLimit, "number", "n", 0, "limit number of records shown")
	evidenceLogCmd.Flags().BoolVar(&evidenceLogReverse, "reverse", false, "show most recent records first")
	evidenceLogCmd.Flags().StringVar(&evidenceLogControl, "control", "", "filter by control ID (comma-separated)")
	evidenceLogCmd.Flags().StringVar(&evidenceLogActor, "actor", "", "filter by actor")
	evidenceLogCmd.Flags().StringVar(&evidenceLogSince, "since", "", "show records after date (YYYY-MM-DD)")
	evidenceLogCmd.Flags().StringVar(&evidenceLogUntil, "until", "", "show records before date (YYYY-MM-DD)")
	evidenceLogCmd.Flags().BoolVar(&evidenceLogJSON, "json", false, "output as JSON array")
	EvidenceCmd.AddCommand(evidenceLogCmd)
}

// resetEvidenceLogCommandState resets the log command's global state for testing.
func resetEvidenceLogCommandState() {
	evidenceLogLimit = 0
	evidenceLogReverse = false
	evidenceLogControl = ""
	evidenceLogActor = ""
	evidenceLogSince = ""
	evidenceLogUntil = ""
	evidenceLogJSON = false
}

var evidenceLogCmd = &cobra.Command{
	Use:   "log",
	Short: "View the evidence log",
	Long: `Displays the append-only evidence log. Use filters to narrow down the
results.

Examples:
  ngaio evidence log                      # Full log
  ngaio evidence log -n 10 --reverse      # Ten most recent records
  ngaio evidence log --control CC6.1      # One control
  ngaio evidence log --since 2026-01-01   # Records this year
  ngaio evidence log --json               # JSON output`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		EvidenceLogger.Infof("Starting evidence log command")
		spinner, cleanup := startSpinner("Loading evidence log...", evidenceVerbose, evidenceDebug)
		defer cleanup()

		if err := configs.InitProjectSettings(); err != nil {
			return EvidenceLogger.ErrorfAndReturn("failed to init project settings: %v", err)
		}
		if configs.ProjectNgaioSettings.ProjectPath == "" {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Ngaio has not been initialized\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("ngaio evidence init") + " first"
			return kerrors.ErrProjectNotInitialized
		}

		log := evidence.NewLog(configs.ProjectNgaioSettings.EvidenceLogPath)
		records, skipped, err := log.Read()
		if err != nil {
			return EvidenceLogger.ErrorfAndReturn("failed to read evidence log: %v", err)
		}
		if skipped > 0 {
			EvidenceLogger.Warnf("skipped %d malformed log line(s)", skipped)
		}
		EvidenceLogger.Debugf("Parsed %d records from evidence log", len(records))

		filtered, err := evidence.Filter(records, evidence.FilterOptions{
			Limit:   evidenceLogLimit,
			Reverse: evidenceLogReverse,
			Control: evidenceLogControl,
			Actor:   evidenceLogActor,
			Since:   evidenceLogSince,
			Until:   evidenceLogUntil,
		})
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
			return err
		}

		spinner.FinalMSG = ""
		if len(filtered) == 0 {
			if len(records) == 0 {
				fmt.Println("No evidence records found.")
			} else {
				fmt.Println("No evidence records found matching the filters.")
			}
			return nil
		}

		if evidenceLogJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(filtered)
		}

		tbl := ui.NewTable("SEQ", "TIMESTAMP", "CONTROL", "ACTOR", "EVENT")
		for _, record := range filtered {
			tbl.AddRow(fmt.Sprintf("%d", record.Seq), record.Timestamp, record.ControlID, record.Actor, record.Event)
		}
		fmt.Print(tbl.String())
		return nil
	},
}
