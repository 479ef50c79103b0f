package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"storefront/internal/config"
	"storefront/internal/db"
)

func migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "manage the database schema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "migrate all the way up",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				return db.MigrateUp(cfg.MigrationsDir, cfg.MigrateURL())
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "roll back migrations, one by default",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n < 1 {
						return fmt.Errorf("invalid steps %q", args[0])
					}
					steps = n
				}

				cfg, err := config.Load()
				if err != nil {
					return err
				}
				return db.MigrateDown(cfg.MigrationsDir, cfg.MigrateURL(), steps)
			},
		},
		&cobra.Command{
			Use:   "create [name]",
			Short: "create sql migrations",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}

				up, down, err := db.CreateMigration(cfg.MigrationsDir, args[0], time.Now())
				if err != nil {
					return err
				}
				fmt.Println("Created SQL up script:", up)
				fmt.Println("Created SQL down script:", down)
				return nil
			},
		},
	)
	return cmd
}
