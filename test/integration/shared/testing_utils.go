// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and verifying expected project structures.
package shared

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/ngaio-labs/ngaio/cmd"
	"github.com/ngaio-labs/ngaio/internal/configs"
	"github.com/spf13/cobra"
)

// SetupTestEnvironment sets up the test environment with temporary directories.
func SetupTestEnvironment(t *testing.T, tempDir, tempUserDir, originalWd string, originalUserSettings *configs.UserSettings) {
	// Change to temp directory
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	// Cleanup function to restore original state
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserNgaioSettings = originalUserSettings
		configs.ProjectNgaioSettings = &configs.ProjectSettings{}
	})

	// Override user settings to use temp directory
	configs.UserNgaioSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempUserDir, "config"),
		Username:        "testuser",
	}
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// CreateTestCLI creates a complete CLI instance for testing with the
// specified command group, subcommand, and flags.
func CreateTestCLI(group string, args []string, stdout, stderr io.Writer, verboseFlag, debugFlag bool) *cobra.Command {
	// Create a fresh root command for this test
	rootCmd := &cobra.Command{
		Use:   "ngaio",
		Short: "Ngaio - A CLI for workflow operations and compliance evidence.",
		Long: `Ngaio is a command-line tool for inspecting n8n workflow environments
and for keeping audit-ready compliance evidence next to the code.`,
	}

	var groupCmd *cobra.Command
	switch group {
	case "flow":
		groupCmd = cmd.GetFlowCmd()
	case "evidence":
		groupCmd = cmd.GetEvidenceCmd()
	case "risk":
		groupCmd = cmd.GetRiskCmd()
	default:
		log.Fatalf("Unknown command group for testing: %s", group)
	}
	rootCmd.AddCommand(groupCmd)

	// Set output streams
	if stdout != nil {
		rootCmd.SetOut(stdout)
		groupCmd.SetOut(stdout)
		for _, subcmd := range groupCmd.Commands() {
			subcmd.SetOut(stdout)
		}
	}
	if stderr != nil {
		rootCmd.SetErr(stderr)
		groupCmd.SetErr(stderr)
		for _, subcmd := range groupCmd.Commands() {
			subcmd.SetErr(stderr)
		}
	}

	rootCmd.SetArgs(append([]string{group}, args...))

	// Set the flags on the group command
	if err := groupCmd.PersistentFlags().Set("verbose", fmt.Sprintf("%t", verboseFlag)); err != nil {
		log.Fatalf("Failed to set verbose flag for testing: %s", err)
	}
	if err := groupCmd.PersistentFlags().Set("debug", fmt.Sprintf("%t", debugFlag)); err != nil {
		log.Fatalf("Failed to set debug flag for testing: %s", err)
	}

	return rootCmd
}

// VerifyProjectStructure verifies that the expected project structure was created.
func VerifyProjectStructure(t *testing.T, tempDir string) {
	// Check .ngaio directory exists
	ngaioDir := filepath.Join(tempDir, ".ngaio")
	if _, err := os.Stat(ngaioDir); os.IsNotExist(err) {
		t.Errorf(".ngaio directory was not created")
	}

	// Check project config exists
	configFile := filepath.Join(ngaioDir, "config.toml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		t.Errorf(".ngaio/config.toml was not created")
	}
}

// InitializeProject initializes a project by running the init command first.
func InitializeProject(t *testing.T, tempDir string) {
	_, err := CaptureOutput(func() error {
		cli := CreateTestCLI("evidence", []string{"init"}, nil, nil, false, false)
		return cli.Execute()
	})

	if err != nil {
		t.Fatalf("Failed to initialize project: %v", err)
	}

	// Verify the project was initialized correctly
	VerifyProjectStructure(t, tempDir)
}
