package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"workshop-backend/internal/auth"
	"workshop-backend/internal/db"
	"workshop-backend/internal/store"
)

func newTokenCmd(configPath *string) *cobra.Command {
	var userID uint

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return errors.New("--user is required")
			}

			logger := log.New(cmd.ErrOrStderr(), "workshopd ", log.LstdFlags)
			cfg, err := loadConfig(logger, *configPath)
			if err != nil {
				return err
			}
			gormDB, err := db.Open(&cfg.Database)
			if err != nil {
				return err
			}

			user, err := store.NewGormStore(gormDB).FindUser(context.Background(), userID)
			if err != nil {
				return fmt.Errorf("user %d: %w", userID, err)
			}
			if !user.Active {
				return fmt.Errorf("user %d (%s) is inactive", user.ID, user.Email)
			}

			provider := auth.NewJWTProvider(auth.Config{
				Secret:   []byte(cfg.Auth.JWTSecret),
				TokenTTL: cfg.Auth.TokenTTL,
			}, nil)
			token, expiresAt, err := provider.IssueToken(user)
			if err != nil {
				return err
			}

			logger.Printf("issued token for %s (%s), expires %s", user.Email, user.Role, expiresAt.Format(time.RFC3339))
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().UintVarP(&userID, "user", "u", 0, "id of the user the token is issued for")
	return cmd
}
