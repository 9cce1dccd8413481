package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for salesreport.
// Without a subcommand it behaves like "salesreport run".
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salesreport",
		Short: "Generate the customer sales report from a SQLite database",
		Long: `salesreport seeds a sample SQLite database when it does not exist yet,
computes the report of item quantities bought by customers aged 18 to 35
twice (once with SQL, once with an in-memory pipeline) and writes both
results as ';'-separated CSV files.

Locations are read from the environment, a .env file or a .salesreport
YAML file, and can be overridden with flags:
  DATABASE_PATH  database file (default: /data/company.db)
  OUTPUT_PATH    output directory (default: /output)`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRunCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .salesreport in current directory or XDG config dir)")
	cmd.PersistentFlags().String("env-file", "",
		"Environment file path (default: .env in current directory, if present)")
	cmd.PersistentFlags().String("db", "", "Database file path (overrides DATABASE_PATH)")
	cmd.PersistentFlags().StringP("output", "o", "", "Output directory (overrides OUTPUT_PATH)")
	cmd.PersistentFlags().String("log-file", "", "Also write logs to a rotating file")
	cmd.PersistentFlags().String("log-format", "", "Log format: text or json (default: text)")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
