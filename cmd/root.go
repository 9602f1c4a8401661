package cmd

import (
	"fmt"
	"log"
	"os"

	"MoodFM/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "moodfm",
	Short: "MoodFM is a music recommendation service.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Starting MoodFM server...")
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
