// Package report computes the sales report and writes it out.
//
// Two engines produce the same rows from the same database:
//   - SQLEngine: a single SQL statement that joins, filters, groups and sorts
//   - PipelineEngine: raw tables loaded into memory and run through the
//     typed stages of the pipeline package
//
// Both implement Engine and return a model.Result. Failures are logged and
// turned into an empty, tagged result rather than returned as errors, so one
// engine failing never prevents the other from running.
//
// Writers render rows for output:
//   - CSVWriter: semicolon-delimited text with a Customer;Age;Item;Quantity header
//   - MarkdownWriter: a Markdown table for terminal display
package report
