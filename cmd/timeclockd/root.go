package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "timeclockd",
	Short: "PIN-based time clock service",
	Long: `timeclockd serves a shared-terminal time clock over HTTP: workers clock
in and out with a PIN, while timekeepers and administrators manage
accounts, correct entries, and review the audit trail.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
