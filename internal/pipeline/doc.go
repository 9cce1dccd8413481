// Package pipeline computes the sales report as a sequence of typed stages.
//
// Each stage is a Step that reads and replaces one field of a Frame:
// customers are filtered by age, joined to their sales, quantities are
// checked, coerced and filtered, and the remaining records are grouped and
// summed into report rows, which are finally sorted.
//
// The pipeline runner logs every step, stops at the first error and checks
// the context between steps. A failing step never leaves partial rows in
// the Frame's output.
package pipeline
