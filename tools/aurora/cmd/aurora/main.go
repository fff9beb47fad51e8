package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CrimsonX77/Aurora/runtime/logger"
	"github.com/CrimsonX77/Aurora/runtime/version"
)

const flagVerbose = "verbose"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "aurora",
		Short:         "Aurora utilities - Mistral agent check and membership tier upgrades",
		Version:       version.GetVersion(),
		SilenceUsage:  true,  // Don't print usage on error
		SilenceErrors: false, // Do print errors
		Long: `Aurora bundles two small utilities:

  agent    starts a single conversation with a hosted Mistral agent and
           pretty-prints the response
  upgrade  opens the membership tier upgrade payment form`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Changed(flagVerbose) {
				verbose, err := cmd.Flags().GetBool(flagVerbose)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error getting verbose flag: %v\n", err)
					return
				}
				logger.SetVerbose(verbose)
			}
			version.LogStartup()
		},
	}
	rootCmd.SetVersionTemplate(version.GetVersionInfo() + "\n")
	rootCmd.PersistentFlags().BoolP(flagVerbose, "v", false, "Enable verbose debug logging")

	rootCmd.AddCommand(newAgentCmd(), newUpgradeCmd(), newVersionCmd())
	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

func main() {
	Execute()
}
