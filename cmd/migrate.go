package cmd

import (
	"log"

	"OpenMusic/config"
	"OpenMusic/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  `Run the schema migration, creating tables and the unique indexes that back duplicate-like, duplicate-membership and duplicate-collaboration conflicts.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		if err := db.ConnectGormDB(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.CloseGormDB()

		if err := db.AutoMigrate(); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migration completed successfully.")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
