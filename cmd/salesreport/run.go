package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/salesreport/internal/config"
	"github.com/nao1215/salesreport/internal/database"
	applog "github.com/nao1215/salesreport/internal/log"
	"github.com/nao1215/salesreport/internal/model"
	"github.com/nao1215/salesreport/internal/report"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Seed the database if needed and write both report files",
		Long: `Run ensures the database and output directories exist, seeds the database
when the file is absent, computes the report with both engines and writes:
  <output>/sql_output.csv       (SQL solution)
  <output>/pandas_output.csv    (Pipeline solution)

Failures are logged and the affected file is skipped; the command still
prints the summary and exits normally.

Examples:
  # Use the default locations
  salesreport run

  # Use local paths and compare both engines
  salesreport run --db ./data/company.db -o ./output --check`,
		Args: cobra.NoArgs,
		RunE: runRunCmd,
	}

	cmd.Flags().Bool("check", false, "Warn when the two engines produce different rows")

	return cmd
}

// runRunCmd executes the run command. The root command uses it too.
// Only flag parsing errors, reported by cobra before this point, make the
// command fail. Configuration and logging problems are logged and the run
// continues with whatever configuration could be resolved.
func runRunCmd(cmd *cobra.Command, _ []string) error {
	cfg, cfgErr := buildConfig(cmd)
	if cfgErr != nil {
		cfg = fallbackConfig(cmd)
	}

	// The root command has no --check flag.
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		check = false
	}

	out := cmd.OutOrStdout()
	logger, closer, logErr := setupLoggerOrStdout(cfg, out)
	defer closer.Close()

	r := newRunner(cfg, out, logger, check)
	r.setupErr = errors.Join(cfgErr, logErr)
	r.run(cmd.Context())
	return nil
}

// output is one report file and whether this run wrote it.
type output struct {
	path      string
	label     string
	generated bool
}

// runner is the one-shot batch: seed, generate, export, summarize.
type runner struct {
	cfg     *config.Config
	out     io.Writer
	logger  *slog.Logger
	check   bool
	engines []report.Engine
	outputs []output

	// setupErr is a configuration or logging failure that happened before
	// the run. It is logged, and the run goes on with the fallback settings.
	setupErr error
}

func newRunner(cfg *config.Config, out io.Writer, logger *slog.Logger, check bool) *runner {
	return &runner{
		cfg:    cfg,
		out:    out,
		logger: logger,
		check:  check,
		engines: []report.Engine{
			report.NewSQLEngine(report.WithEngineLogger(logger)),
			report.NewPipelineEngine(report.WithEngineLogger(logger)),
		},
		outputs: []output{
			{path: cfg.SQLOutputPath(), label: "SQL solution"},
			{path: cfg.PipelineOutputPath(), label: "Pipeline solution"},
		},
	}
}

// run never panics and never returns an error. Whatever happens, the
// summary is printed.
func (r *runner) run(ctx context.Context) {
	defer r.printSummary()
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("something went wrong", "panic", p)
		}
	}()

	if r.setupErr != nil {
		r.logger.Error("something went wrong", "error", r.setupErr)
	}
	r.logger.Debug("configuration resolved",
		"database", r.cfg.DatabasePath,
		"output", r.cfg.OutputDir,
		"config_file", r.cfg.ConfigFilePath,
		"env_file", r.cfg.EnvFilePath,
	)

	if err := r.execute(ctx); err != nil {
		r.logger.Error("something went wrong", "error", err)
	}
}

func (r *runner) execute(ctx context.Context) error {
	if err := r.cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := ensureDirs(r.cfg); err != nil {
		return err
	}

	seeded, err := database.Seed(ctx, r.cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	seedLogger := applog.WithComponent(r.logger, "seeder")
	if seeded {
		seedLogger.Info("database seeded", "path", r.cfg.DatabasePath)
	} else {
		seedLogger.Debug("database already exists", "path", r.cfg.DatabasePath)
	}

	exporter := report.NewExporter(applog.WithComponent(r.logger, "exporter"))
	results := make([]model.Result, len(r.engines))
	for i, engine := range r.engines {
		results[i] = engine.Generate(ctx, r.cfg.DatabasePath)
		if !results[i].OK() || results[i].Empty() {
			r.logger.Debug("nothing to export", "result", results[i].String())
			continue
		}
		r.outputs[i].generated = exporter.Export(r.outputs[i].path, results[i].Rows)
	}

	if r.check {
		compareResults(r.logger, results[0], results[1])
	}
	return nil
}

// ensureDirs creates the database and output directories.
func ensureDirs(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.DatabaseDir(), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// compareResults logs whether two successful results hold the same rows.
func compareResults(logger *slog.Logger, a, b model.Result) {
	switch model.Compare(a, b) {
	case model.AgreementSkipped:
		logger.Warn("skipping engine comparison", "first", a.String(), "second", b.String())
	case model.AgreementDifferent:
		logger.Warn("engines disagree",
			a.Engine, len(a.Rows),
			b.Engine, len(b.Rows),
		)
	default:
		logger.Info("engines agree", "rows", len(a.Rows))
	}
}

func (r *runner) printSummary() {
	fmt.Fprintln(r.out, "Output files generated:")
	for _, o := range r.outputs {
		if o.generated {
			fmt.Fprintf(r.out, "- %s (%s)\n", o.path, o.label)
		} else {
			fmt.Fprintf(r.out, "- %s (%s, not generated)\n", o.path, o.label)
		}
	}
	fmt.Fprintf(r.out, "- Database: %s\n", r.cfg.DatabasePath)
}
