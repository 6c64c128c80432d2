package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"chatfeed/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chat feed server",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := server.New()
		if err != nil {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
		s.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
