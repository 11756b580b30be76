package cmd

import (
	"fmt"
	"log"
	"os"

	"OpenMusic/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "openmusic",
	Short: "OpenMusic is a music catalog API service.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Starting OpenMusic server...")
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
