package main

import (
	"github.com/spf13/cobra"
)

// rootCmd assembles the wisdom CLI as a github.com/spf13/cobra
// subcommand tree.
func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wisdom",
		Short:         "Wisdom scripting language toolchain",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd())
	root.AddCommand(replCmd())
	root.AddCommand(tokensCmd())
	root.AddCommand(astCmd())
	return root
}
