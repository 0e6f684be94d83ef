package cmd

import (
	logger "github.com/ngaio-labs/ngaio/internal/logging"
	"github.com/spf13/cobra"
)

var (
	evidenceVerbose bool
	evidenceDebug   bool
	EvidenceLogger  logger.Logger

	EvidenceCmd = &cobra.Command{
		Use:   "evidence",
		Short: "Manage compliance evidence for this project",
		Long: `Provides compliance-evidence tooling: an append-only evidence log,
control-mapping reports, and packaged evidence exports.

Evidence state lives under the project's .ngaio directory and is meant to be
committed alongside the code it gives assurance about.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			EvidenceLogger = logger.Logger{
				Verbose: evidenceVerbose,
				Debug:   evidenceDebug,
			}
			EvidenceLogger.Debugf("Initializing evidence command with verbose=%t, debug=%t", evidenceVerbose, evidenceDebug)
		},
	}
)

func init() {
	EvidenceCmd.PersistentFlags().BoolVarP(&evidenceVerbose, "verbose", "v", false, "enable verbose output")
	EvidenceCmd.PersistentFlags().BoolVarP(&evidenceDebug, "debug", "d", false, "enable debug output")
}

// Helper functions for testing

// GetEvidenceCmd returns the EvidenceCmd for testing.
func GetEvidenceCmd() *cobra.Command {
	return EvidenceCmd
}

// ResetEvidenceState resets the evidence group's global state for testing.
func ResetEvidenceState() {
	evidenceVerbose = false
	evidenceDebug = false
	resetRecordCommandState()
	resetEvidenceLogCommandState()
	resetReportCommandState()
	resetExportCommandState()
	resetCommandFlags(EvidenceCmd)
}
