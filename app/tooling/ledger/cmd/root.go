// Package cmd contains the ledger command line tool.
package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	url     string
	timeout time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "Time to wait for the node, sealing can take a while.")
}

var rootCmd = &cobra.Command{
	Use:           "ledger",
	Short:         "Drive a proof of work ledger node",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line tool.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}
