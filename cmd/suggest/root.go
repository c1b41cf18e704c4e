package main

import (
	"github.com/spf13/cobra"
)

var (
	serverURL string
	token     string
)

var rootCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Command-line client for the writing suggestion service",
	Long: `suggest talks to a running suggestion server.

Commands:
  - complete: request a continuation for a piece of text
  - watch: follow suggestion analytics events from NATS`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:3001", "suggestion server base URL",
	)
	rootCmd.PersistentFlags().StringVar(
		&token, "token", "", "bearer token sent with requests",
	)

	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(watchCmd)
}
