package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"workshop-backend/internal/db"
	"workshop-backend/internal/store"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(cmd.ErrOrStderr(), "workshopd ", log.LstdFlags)
			cfg, err := loadConfig(logger, *configPath)
			if err != nil {
				return err
			}
			if _, err := db.Init(&cfg.Database); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	}
}

func newSeedCmd(configPath *string) *cobra.Command {
	var fixturePath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load users, clients and vehicles from a YAML fixture",
		Long:  "Inserts the fixture's reference data. Users and vehicles that already exist (by email or plate) are skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(cmd.ErrOrStderr(), "workshopd ", log.LstdFlags)
			cfg, err := loadConfig(logger, *configPath)
			if err != nil {
				return err
			}

			fx, err := store.LoadFixture(fixturePath)
			if err != nil {
				return err
			}

			gormDB, err := db.Init(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			res, err := store.NewGormStore(gormDB).Seed(context.Background(), fx)
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "users:    %d created, %d skipped\n", res.UsersCreated, res.UsersSkipped)
			fmt.Fprintf(out, "clients:  %d created\n", res.ClientsCreated)
			fmt.Fprintf(out, "vehicles: %d created, %d skipped\n", res.VehiclesCreated, res.VehiclesSkipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&fixturePath, "file", "f", "seed.yaml", "path to the seed fixture")
	return cmd
}
