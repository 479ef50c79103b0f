package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/models"
	"storefront/internal/repo"
)

func createAdminCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create-admin [email] [password]",
		Short: "create a user allowed to manage orders and the catalog",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password := args[0], args[1]
			if len(password) < 8 {
				return fmt.Errorf("password must be at least 8 characters")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := context.Background()
			database, err := db.NewPostgresDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			user := &models.User{
				SessionID:    uuid.NewString(),
				Email:        &email,
				PasswordHash: hash,
				IsAdmin:      true,
			}
			if err := repo.NewUserRepo(database).CreateUser(ctx, user); err != nil {
				return err
			}
			fmt.Printf("Created admin %s (id %d)\n", email, user.ID)
			return nil
		},
	}
}
