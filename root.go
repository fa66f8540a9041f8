package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "menu-ordering",
	Short:         "Restaurant menu, cart and order service",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(reviewsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.Version = version
}
