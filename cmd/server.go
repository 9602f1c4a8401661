package cmd

import (
	"MoodFM/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the MoodFM server",
	Long:  `Start the MoodFM HTTP server, serving the recommendation API and the chat channel.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
