package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/salesreport/internal/database"
	"github.com/nao1215/salesreport/internal/model"
	"github.com/nao1215/salesreport/internal/pipeline"
)

// Engine names.
const (
	EngineSQL      = "sql"
	EnginePipeline = "pipeline"
)

// Engine computes the report from the database at a path.
// Each call opens and closes its own store.
type Engine interface {
	// Name returns the engine name used in logs and file names.
	Name() string

	// Generate computes the report. It never returns partial rows.
	Generate(ctx context.Context, dbPath string) model.Result
}

// EngineOption configures an engine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	ages   model.AgeRange
	logger *slog.Logger
}

// WithAgeRange overrides the age range the report is restricted to.
func WithAgeRange(ages model.AgeRange) EngineOption {
	return func(c *engineConfig) {
		c.ages = ages
	}
}

// WithEngineLogger sets a custom logger for the engine.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

func newEngineConfig(name string, opts []EngineOption) engineConfig {
	c := engineConfig{ages: model.DefaultAgeRange}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("engine", name)
	return c
}

// SQLEngine computes the report with one SQL query.
type SQLEngine struct {
	engineConfig
}

// NewSQLEngine creates a SQLEngine.
func NewSQLEngine(opts ...EngineOption) *SQLEngine {
	return &SQLEngine{engineConfig: newEngineConfig(EngineSQL, opts)}
}

// Name returns the engine name.
func (e *SQLEngine) Name() string {
	return EngineSQL
}

// Generate runs the report query.
func (e *SQLEngine) Generate(ctx context.Context, dbPath string) model.Result {
	store, err := database.Open(dbPath, database.DefaultOptions())
	if err != nil {
		return e.fail(model.ReasonStorage, err)
	}
	defer store.Close()

	rows, err := store.ReportRows(ctx, e.ages)
	if err != nil {
		return e.fail(model.ReasonStorage, err)
	}

	e.logger.Info(fmt.Sprintf("%d records in result", len(rows)))
	return model.Succeeded(EngineSQL, rows)
}

func (e *SQLEngine) fail(reason model.FailureReason, err error) model.Result {
	e.logger.Error("error executing SQL query", "reason", reason.String(), "error", err)
	return model.Failed(EngineSQL, reason, err)
}

// PipelineEngine loads both tables and computes the report in memory.
type PipelineEngine struct {
	engineConfig
}

// NewPipelineEngine creates a PipelineEngine.
func NewPipelineEngine(opts ...EngineOption) *PipelineEngine {
	return &PipelineEngine{engineConfig: newEngineConfig(EnginePipeline, opts)}
}

// Name returns the engine name.
func (e *PipelineEngine) Name() string {
	return EnginePipeline
}

// Generate loads customers and sales and runs pipeline.ReportSteps over them.
func (e *PipelineEngine) Generate(ctx context.Context, dbPath string) model.Result {
	frame, err := e.load(ctx, dbPath)
	if err != nil {
		return e.fail(model.ReasonStorage, err)
	}

	if err := e.transform(ctx, frame); err != nil {
		return e.fail(model.ReasonTransform, err)
	}

	e.logger.Info(fmt.Sprintf("%d records in result", len(frame.Rows)))
	return model.Succeeded(EnginePipeline, frame.Rows)
}

// load reads both tables and closes the store before any transformation.
func (e *PipelineEngine) load(ctx context.Context, dbPath string) (*pipeline.Frame, error) {
	store, err := database.Open(dbPath, database.DefaultOptions())
	if err != nil {
		return nil, err
	}
	defer store.Close()

	customers, err := store.Customers(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := store.Sales(ctx)
	if err != nil {
		return nil, err
	}

	return pipeline.NewFrame(customers, sales), nil
}

// transform runs the stages. A panicking stage is reported as an error.
func (e *PipelineEngine) transform(ctx context.Context, frame *pipeline.Frame) (err error) {
	defer func() {
		if r := recover(); r != nil {
			frame.Rows = nil
			err = fmt.Errorf("pipeline panicked: %v", r)
		}
	}()

	p := pipeline.New(
		pipeline.WithLogger(e.logger),
		pipeline.WithSteps(pipeline.ReportSteps(e.ages)...),
	)
	return p.Execute(ctx, frame)
}

func (e *PipelineEngine) fail(reason model.FailureReason, err error) model.Result {
	e.logger.Error("error in pipeline solution", "reason", reason.String(), "error", err)
	return model.Failed(EnginePipeline, reason, err)
}
