package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/ngaio-labs/ngaio/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ngaio",
	Short: "Ngaio - A CLI for workflow operations and compliance evidence.",
	Long: `Ngaio is a command-line tool for inspecting n8n workflow environments
and for keeping audit-ready compliance evidence right next to the code.

Features:
  - Inspect workflows, executions, and node outputs across n8n environments
  - Keep an append-only evidence log with sequence numbers
  - Render control-mapping reports and package hashed evidence exports
  - Track risk treatment status in a reviewable register

Usage:
  ngaio <command> [flags]

Available Commands:
  flow       Inspect n8n workflows and executions
  evidence   Manage compliance evidence
  risk       Manage the project risk register

Run 'ngaio help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("Ngaio", "", "green", true)
		banner.Print()
		fmt.Println()
		fmt.Println("Welcome to Ngaio! Run 'ngaio --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.FlowCmd)
	rootCmd.AddCommand(cmd.EvidenceCmd)
	rootCmd.AddCommand(cmd.RiskCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
