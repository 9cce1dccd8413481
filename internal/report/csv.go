package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/salesreport/internal/model"
)

// Separator is the field separator of exported files.
const Separator = ';'

// CSVWriter writes rows as semicolon-delimited text.
// The first line is model.Header; there is no index column.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the header and one line per row.
// Fields are quoted only when they contain the separator, a quote or a newline.
func (w *CSVWriter) Write(rows []model.ReportRow) (int, error) {
	cw := &countingWriter{w: w.output}
	enc := csv.NewWriter(cw)
	enc.Comma = Separator

	if err := enc.Write(model.Header); err != nil {
		return cw.n, fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		if err := enc.Write(r.Record()); err != nil {
			return cw.n, fmt.Errorf("failed to write row: %w", err)
		}
	}

	enc.Flush()
	return cw.n, enc.Error()
}

// WriteFile writes rows to path as a CSV file.
// The file is written to a temporary name and renamed into place, so a
// failed write never leaves a truncated report behind.
func WriteFile(path string, rows []model.ReportRow) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := NewCSVWriter(tmp).Write(rows); err != nil {
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output file into place: %w", err)
	}
	return nil
}

// Exporter writes results to files and logs, rather than returns, failures.
type Exporter struct {
	logger *slog.Logger
}

// NewExporter creates an Exporter. A nil logger means slog.Default().
func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger}
}

// Export writes rows to path and reports whether the file was written.
func (e *Exporter) Export(path string, rows []model.ReportRow) bool {
	if err := WriteFile(path, rows); err != nil {
		e.logger.Error("error writing to CSV", "path", path, "error", err)
		return false
	}
	e.logger.Debug("report written", "path", path, "rows", len(rows))
	return true
}
