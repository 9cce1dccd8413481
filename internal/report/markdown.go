package report

import (
	"fmt"
	"io"

	"github.com/nao1215/markdown"

	"github.com/nao1215/salesreport/internal/model"
)

// MarkdownWriter outputs rows as a Markdown table with an optional heading.
type MarkdownWriter struct {
	baseWriter
	title string
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, title string) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		title:      title,
	}
}

// Write outputs the table.
func (w *MarkdownWriter) Write(rows []model.ReportRow) (int, error) {
	md := markdown.NewMarkdown(w.output)

	if w.title != "" {
		md.H2(w.title)
		md.PlainText("")
	}

	if len(rows) == 0 {
		md.Note("No rows.")
	} else {
		records := make([][]string, len(rows))
		for i, r := range rows {
			records[i] = r.Record()
		}
		md.Table(markdown.TableSet{
			Header: model.Header,
			Rows:   records,
		})
	}
	md.PlainText("")

	return len(md.String()), md.Build()
}

// WriteResult writes a result, or its failure reason when it failed.
func (w *MarkdownWriter) WriteResult(result model.Result) (int, error) {
	if result.OK() {
		return w.Write(result.Rows)
	}

	md := markdown.NewMarkdown(w.output)
	if w.title != "" {
		md.H2(w.title)
		md.PlainText("")
	}
	md.Warningf("%s failure: %v", result.Reason, result.Err)
	md.PlainText("")

	return len(md.String()), md.Build()
}

// WriteAgreement writes a note saying whether a and b hold the same rows.
func WriteAgreement(output io.Writer, a, b model.Result) (int, error) {
	md := markdown.NewMarkdown(output)

	switch model.Compare(a, b) {
	case model.AgreementSame:
		md.Note(fmt.Sprintf("%s and %s agree: %d rows.", a.Engine, b.Engine, len(a.Rows)))
	case model.AgreementDifferent:
		md.Warningf("%s and %s disagree: %d rows vs %d rows.", a.Engine, b.Engine, len(a.Rows), len(b.Rows))
	default:
		md.Note(fmt.Sprintf("%s and %s were not compared: an engine failed.", a.Engine, b.Engine))
	}
	md.PlainText("")

	return len(md.String()), md.Build()
}
