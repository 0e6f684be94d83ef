package cmd

import (
	logger "github.com/ngaio-labs/ngaio/internal/logging"
	"github.com/spf13/cobra"
)

var (
	riskVerbose bool
	riskDebug   bool
	RiskLogger  logger.Logger

	RiskCmd = &cobra.Command{
		Use:   "risk",
		Short: "Manage the project risk register",
		Long: `Provides read and status-update access to the project risk register at
.ngaio/risks.yaml. The register itself is edited by hand and reviewed
like any other change; only treatment status moves through the CLI.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			RiskLogger = logger.Logger{
				Verbose: riskVerbose,
				Debug:   riskDebug,
			}
			RiskLogger.Debugf("Initializing risk command with verbose=%t, debug=%t", riskVerbose, riskDebug)
		},
	}
)

func init() {
	RiskCmd.PersistentFlags().BoolVarP(&riskVerbose, "verbose", "v", false, "enable verbose output")
	RiskCmd.PersistentFlags().BoolVarP(&riskDebug, "debug", "d", false, "enable debug output")
}

// Helper functions for testing

// GetRiskCmd returns the RiskCmd for testing.
func GetRiskCmd() *cobra.Command {
	return RiskCmd
}

// ResetRiskState resets the risk group's global state for testing.
func ResetRiskState() {
	riskVerbose = false
	riskDebug = false
	resetRiskUpdateCommandState()
	resetCommandFlags(RiskCmd)
}
