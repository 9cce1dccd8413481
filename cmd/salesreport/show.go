package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/salesreport/internal/model"
	"github.com/nao1215/salesreport/internal/report"
)

// Values of the --engine flag.
const (
	engineBoth = "both"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the report as Markdown without writing files",
		Long: `Show computes the report from an existing database and prints it as a
Markdown table. With both engines it also notes whether they agree.
The database is not created or seeded. Logs go to stderr so
the Markdown output can be redirected.

Examples:
  salesreport show
  salesreport show --engine sql > report.md`,
		Args: cobra.NoArgs,
		RunE: runShowCmd,
	}

	cmd.Flags().StringP("engine", "e", engineBoth, "Engine to run: sql, pipeline or both")

	return cmd
}

// runShowCmd executes the show command.
func runShowCmd(cmd *cobra.Command, _ []string) error {
	engineName, err := cmd.Flags().GetString("engine")
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger, closer, err := setupLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	var engines []report.Engine
	switch engineName {
	case report.EngineSQL:
		engines = append(engines, report.NewSQLEngine(report.WithEngineLogger(logger)))
	case report.EnginePipeline:
		engines = append(engines, report.NewPipelineEngine(report.WithEngineLogger(logger)))
	case engineBoth:
		engines = append(engines,
			report.NewSQLEngine(report.WithEngineLogger(logger)),
			report.NewPipelineEngine(report.WithEngineLogger(logger)),
		)
	default:
		return fmt.Errorf("unknown engine %q (use sql, pipeline or both)", engineName)
	}

	out := cmd.OutOrStdout()
	results := make([]model.Result, 0, len(engines))
	for _, engine := range engines {
		result := engine.Generate(cmd.Context(), cfg.DatabasePath)
		results = append(results, result)
		w := report.NewMarkdownWriter(out, engine.Name())
		if _, err := w.WriteResult(result); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if len(results) == 2 {
		if _, err := report.WriteAgreement(out, results[0], results[1]); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	return nil
}
