package cmd

import (
	"errors"
	"os"

	"github.com/ngaio-labs/ngaio/internal/envs"
	logger "github.com/ngaio-labs/ngaio/internal/logging"
	"github.com/ngaio-labs/ngaio/internal/n8n"
	"github.com/ngaio-labs/ngaio/internal/ui"
	"github.com/spf13/cobra"
)

var (
	flowEnv     string
	flowVerbose bool
	flowDebug   bool
	FlowLogger  logger.Logger

	// flowEnvConfig is the credential snapshot taken when the flow group
	// starts. Commands resolve profiles from this snapshot only.
	flowEnvConfig *envs.Config

	FlowCmd = &cobra.Command{
		Use:   "flow",
		Short: "Inspect and trigger workflows on an n8n server",
		Long: `Provides read and trigger operations against the REST API of an n8n
workflow-automation server.

The target server is selected with -e/--env. Credentials come from the
process environment: N8N_URL and N8N_API_KEY for the default environment,
or N8N_<NAME>_URL and N8N_<NAME>_API_KEY for a named one.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			FlowLogger = logger.Logger{
				Verbose: flowVerbose,
				Debug:   flowDebug,
			}
			flowEnvConfig = envs.Load(os.Environ())
			FlowLogger.Debugf("Initializing flow command with env=%q, verbose=%t, debug=%t", flowEnv, flowVerbose, flowDebug)
		},
	}
)

func init() {
	FlowCmd.PersistentFlags().StringVarP(&flowEnv, "env", "e", "", "target environment name (default: unprefixed N8N_URL/N8N_API_KEY)")
	FlowCmd.PersistentFlags().BoolVarP(&flowVerbose, "verbose", "v", false, "enable verbose output")
	FlowCmd.PersistentFlags().BoolVarP(&flowDebug, "debug", "d", false, "enable debug output")
}

// newFlowClient resolves the selected environment and builds an API client.
// Resolution failures are returned as-is for the caller to format.
func newFlowClient() (*n8n.Client, envs.Profile, error) {
	profile, err := flowEnvConfig.Resolve(flowEnv)
	if err != nil {
		return nil, envs.Profile{}, err
	}
	FlowLogger.Debugf("Resolved environment %q -> %s", flowEnv, profile.BaseURL)
	return n8n.NewClient(profile), profile, nil
}

// formatFlowError turns client and resolution errors into guidance messages.
// Returns an empty string for errors that should propagate unformatted.
func formatFlowError(err error) string {
	var missingCreds *envs.MissingCredentialsError
	if errors.As(err, &missingCreds) {
		env := missingCreds.Environment
		if env == "" {
			env = "default"
		}
		msg := ui.Error.Sprint("✗") + " Missing credentials for environment " + ui.Highlight.Sprint(env) + "\n"
		for _, key := range missingCreds.MissingKeys {
			msg += ui.Info.Sprint("→") + " Set " + ui.Code.Sprint(key) + "\n"
		}
		return msg
	}

	var connErr *n8n.ConnectionError
	if errors.As(err, &connErr) {
		return ui.Error.Sprint("✗") + " Cannot reach the server\n" +
			ui.Info.Sprint("→") + " " + connErr.Error()
	}

	var apiErr *n8n.APIError
	if errors.As(err, &apiErr) {
		return ui.Error.Sprint("✗") + " The server rejected the request\n" +
			ui.Info.Sprint("→") + " " + apiErr.Error()
	}

	var parseErr *n8n.ParseError
	if errors.As(err, &parseErr) {
		return ui.Error.Sprint("✗") + " The server returned an unreadable response\n" +
			ui.Info.Sprint("→") + " " + parseErr.Error()
	}

	return ""
}

// Helper functions for testing

// GetFlowCmd returns the FlowCmd for testing.
func GetFlowCmd() *cobra.Command {
	return FlowCmd
}

// ResetFlowState resets the flow group's global state for testing.
func ResetFlowState() {
	flowEnv = ""
	flowVerbose = false
	flowDebug = false
	flowEnvConfig = nil
	resetWorkflowsCommandState()
	resetExecutionsCommandState()
	resetTriggerCommandState()
	resetCommandFlags(FlowCmd)
}

// SetFlowEnvConfig overrides the credential snapshot for testing.
func SetFlowEnvConfig(c *envs.Config) {
	flowEnvConfig = c
}
