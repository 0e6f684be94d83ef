package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetCommandFlags clears Cobra's flag-changed state on a command and all of
// its subcommands to prevent pollution between tests.
func resetCommandFlags(c *cobra.Command) {
	if c == nil {
		return
	}
	c.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	c.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, sub := range c.Commands() {
		resetCommandFlags(sub)
	}
}
