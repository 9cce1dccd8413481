package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/salesreport/internal/database"
	applog "github.com/nao1215/salesreport/internal/log"
)

// NewSeedCmd creates the seed command.
func NewSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the sample database if it does not exist",
		Long: `Seed creates the database file with the sample customers and sales.
An existing file is left untouched.

Examples:
  salesreport seed --db ./data/company.db`,
		Args: cobra.NoArgs,
		RunE: runSeedCmd,
	}
}

// runSeedCmd executes the seed command.
func runSeedCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	logger, closer, err := setupLogger(cfg, out)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger = applog.WithComponent(logger, "seeder")

	if err := os.MkdirAll(cfg.DatabaseDir(), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	seeded, err := database.Seed(cmd.Context(), cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	logger.Debug("seed finished", "path", cfg.DatabasePath, "seeded", seeded)

	store, err := database.Open(cfg.DatabasePath, database.DefaultOptions())
	if err != nil {
		return err
	}
	defer store.Close()

	customers, sales, err := store.Count(cmd.Context())
	if err != nil {
		return err
	}

	status := "Database already exists"
	if seeded {
		status = "Database seeded"
	}
	fmt.Fprintf(out, "%s: %s\n", status, store.Path())
	fmt.Fprintf(out, "  customers: %d\n", customers)
	fmt.Fprintf(out, "  sales:     %d\n", sales)

	return nil
}
