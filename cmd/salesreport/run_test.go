package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/salesreport/internal/config"
	"github.com/nao1215/salesreport/internal/model"
	"github.com/nao1215/salesreport/internal/report"
)

const expectedCSV = `Customer;Age;Item;Quantity
1;21;x;10
2;23;x;1
2;23;y;1
2;23;z;1
3;35;z;2
`

// testEnv is an isolated set of locations for one command run.
type testEnv struct {
	dir string
	db  string
	out string
}

// newTestEnv creates empty config and env files so the developer's own
// configuration never leaks into a test.
func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{"config.yaml", "test.env"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0600); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	return testEnv{
		dir: dir,
		db:  filepath.Join(dir, "data", "company.db"),
		out: filepath.Join(dir, "output"),
	}
}

// args builds the command line for subcommand sub. Flags in extra come
// last so they override the isolated defaults. An empty sub runs the root.
func (e testEnv) args(sub string, extra ...string) []string {
	var args []string
	if sub != "" {
		args = append(args, sub)
	}
	args = append(args,
		"--config", filepath.Join(e.dir, "config.yaml"),
		"--env-file", filepath.Join(e.dir, "test.env"),
		"--db", e.db,
		"--output", e.out,
	)
	return append(args, extra...)
}

// execute runs the root command with args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String() + stderr.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// TestRun tests the full batch run.
func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("writes both reports", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		output, err := execute(t, env.args("run")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, name := range []string{config.DefaultSQLOutputName, config.DefaultPipelineOutputName} {
			if got := readFile(t, filepath.Join(env.out, name)); got != expectedCSV {
				t.Errorf("%s: unexpected content:\n%s", name, got)
			}
		}

		for _, want := range []string{
			"Output files generated:",
			"- " + filepath.Join(env.out, config.DefaultSQLOutputName) + " (SQL solution)",
			"- " + filepath.Join(env.out, config.DefaultPipelineOutputName) + " (Pipeline solution)",
			"- Database: " + env.db,
			"database seeded",
			"5 records in result",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("root command runs the report", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		if _, err := execute(t, env.args("")...); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := readFile(t, filepath.Join(env.out, config.DefaultSQLOutputName)); got != expectedCSV {
			t.Errorf("unexpected content:\n%s", got)
		}
	})

	t.Run("second run does not seed again", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		if _, err := execute(t, env.args("run")...); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output, err := execute(t, env.args("run")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(output, "database seeded") {
			t.Errorf("expected no seeding on second run, got:\n%s", output)
		}
		if got := readFile(t, filepath.Join(env.out, config.DefaultPipelineOutputName)); got != expectedCSV {
			t.Errorf("unexpected content:\n%s", got)
		}
	})

	t.Run("check reports agreement", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		output, err := execute(t, env.args("run", "--check")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "engines agree") {
			t.Errorf("expected agreement message, got:\n%s", output)
		}
	})

	t.Run("corrupt database is absorbed", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		if err := os.MkdirAll(filepath.Dir(env.db), 0750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(env.db, []byte("this is not a database"), 0600); err != nil {
			t.Fatal(err)
		}

		output, err := execute(t, env.args("run")...)
		if err != nil {
			t.Fatalf("runtime failures must not be returned, got: %v", err)
		}

		if got := strings.Count(output, "not generated"); got != 2 {
			t.Errorf("expected 2 files not generated, got %d:\n%s", got, output)
		}
		for _, want := range []string{"error executing SQL query", "error in pipeline solution", "- Database: " + env.db} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
		if _, err := os.Stat(filepath.Join(env.out, config.DefaultSQLOutputName)); !os.IsNotExist(err) {
			t.Errorf("expected no SQL output file, stat error: %v", err)
		}
	})

	t.Run("invalid configuration is logged", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		output, err := execute(t, env.args("run", "--db", "")...)
		if err != nil {
			t.Fatalf("configuration errors must not be returned, got: %v", err)
		}
		for _, want := range []string{"something went wrong", "invalid database path", "Output files generated:", "not generated"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("malformed config file falls back to defaults and flags", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		configPath := filepath.Join(env.dir, "broken.yaml")
		if err := os.WriteFile(configPath, []byte("database_path: [unterminated\n"), 0600); err != nil {
			t.Fatal(err)
		}

		output, err := execute(t, env.args("run", "--config", configPath)...)
		if err != nil {
			t.Fatalf("configuration errors must not be returned, got: %v", err)
		}
		for _, want := range []string{"something went wrong", "failed to load config file", "Output files generated:", "(SQL solution)"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
		if got := readFile(t, filepath.Join(env.out, config.DefaultSQLOutputName)); got != expectedCSV {
			t.Errorf("unexpected content:\n%s", got)
		}
	})

	t.Run("unusable log file falls back to stdout", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		// A regular file cannot be a log directory.
		logPath := filepath.Join(env.dir, "config.yaml", "salesreport.log")

		output, err := execute(t, env.args("run", "--log-file", logPath)...)
		if err != nil {
			t.Fatalf("logging errors must not be returned, got: %v", err)
		}
		for _, want := range []string{"something went wrong", "failed to set up logging", "(Pipeline solution)"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
		if strings.Contains(output, "not generated") {
			t.Errorf("expected both files to be generated, got:\n%s", output)
		}
	})

	t.Run("json log format", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		output, err := execute(t, env.args("run", "--log-format", "json")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, `"msg":"5 records in result"`) {
			t.Errorf("expected json log lines, got:\n%s", output)
		}
	})

	t.Run("unknown flag is a usage error", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		if _, err := execute(t, env.args("run", "--no-such-flag")...); err == nil {
			t.Error("expected usage error")
		}
	})

	t.Run("verbose enables debug logs", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		output, err := execute(t, env.args("run", "-v")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"step completed", "configuration resolved", "config_file=" + filepath.Join(env.dir, "config.yaml")} {
			if !strings.Contains(output, want) {
				t.Errorf("expected debug output %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("log file receives a copy", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		logPath := filepath.Join(env.dir, "logs", "salesreport.log")
		if _, err := execute(t, env.args("run", "--log-file", logPath)...); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := readFile(t, logPath); !strings.Contains(got, "records in result") {
			t.Errorf("expected log file content, got:\n%s", got)
		}
	})
}

// panicEngine panics in Generate.
type panicEngine struct{}

func (panicEngine) Name() string { return "panic" }

func (panicEngine) Generate(context.Context, string) model.Result {
	panic("boom")
}

// TestRunnerRecovers tests that a panic is logged and the summary is still printed.
func TestRunnerRecovers(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cfg := config.NewConfig()
	cfg.DatabasePath = env.db
	cfg.OutputDir = env.out

	var buf bytes.Buffer
	logger, closer, err := setupLogger(cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	r := newRunner(cfg, &buf, logger, false)
	r.engines = []report.Engine{report.NewSQLEngine(report.WithEngineLogger(logger)), panicEngine{}}
	r.run(context.Background())

	output := buf.String()
	for _, want := range []string{
		"something went wrong",
		"Output files generated:",
		"(SQL solution)",
		"(Pipeline solution, not generated)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

// TestCompareResults tests the engine comparison messages.
func TestCompareResults(t *testing.T) {
	t.Parallel()

	rows := []model.ReportRow{{CustomerID: 1, Age: 21, Item: "x", Quantity: 10}}

	tests := []struct {
		name string
		a, b model.Result
		want string
	}{
		{
			name: "agree",
			a:    model.Succeeded(report.EngineSQL, rows),
			b:    model.Succeeded(report.EnginePipeline, rows),
			want: "engines agree",
		},
		{
			name: "disagree",
			a:    model.Succeeded(report.EngineSQL, rows),
			b:    model.Succeeded(report.EnginePipeline, nil),
			want: "engines disagree",
		},
		{
			name: "failed engine",
			a:    model.Succeeded(report.EngineSQL, rows),
			b:    model.Failed(report.EnginePipeline, model.ReasonStorage, errors.New("locked")),
			want: "skipping engine comparison",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger, closer, err := setupLogger(config.NewConfig(), &buf)
			if err != nil {
				t.Fatal(err)
			}
			defer closer.Close()

			compareResults(logger, tt.a, tt.b)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}
