package main

import (
	"log"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Shoe store API, pages and tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		serveCommand(),
		migrateCommand(),
		createAdminCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
