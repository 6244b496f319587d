package main

import (
	"fmt"
	"os"

	"github.com/mscrnt/canbaud/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Build variables set by ldflags
	buildVersion string
	buildCommit  string
	buildTime    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "canbaud",
		Short: "CAN bit-timing calculator for AVR CAN controllers",
		Long: `canbaud computes CAN bus bit-timing configurations for a target baud rate
and CPU clock frequency, and emits them as human-readable diagnostics or
as a generated C header of register constants.`,
		Version: version.GetVersion(buildVersion, buildCommit, buildTime),
	}

	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(headerCmd())
	rootCmd.AddCommand(sweepCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version.GetDetailedVersion(buildVersion, buildCommit, buildTime))
		},
	}
}
