package cmd

import (
	"log"

	"OpenMusic/cache"
	"OpenMusic/config"

	"github.com/spf13/cobra"
)

var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Check the Redis connection",
	Long:  `Connect to Redis and run a set/get/del round trip to verify the cache is reachable.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		if err := cache.ConnectRedis(cfg); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer cache.CloseRedis()

		if err := cache.TestRedis(); err != nil {
			log.Fatalf("Redis check failed: %v", err)
		}
		log.Println("Redis connection OK.")
	},
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
