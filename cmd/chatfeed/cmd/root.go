package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chatfeed",
	Short: "Chatfeed server",
	Long: `Chatfeed is a multi-user chat feed with an embedded AI assistant.

Available commands:
  serve    Start the chat feed server

Use "chatfeed [command] --help" for more information about a specific command.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
