package cmd

import (
	"OpenMusic/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the OpenMusic HTTP server",
	Long:  `Start the OpenMusic catalog API server, serving albums, songs, users, playlists and exports.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
