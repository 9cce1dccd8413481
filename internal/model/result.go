package model

import "fmt"

// FailureReason tags why a report engine produced no data.
type FailureReason int

const (
	// ReasonNone means the engine ran to completion. Rows may still be empty
	// when nothing qualified.
	ReasonNone FailureReason = iota

	// ReasonStorage means opening or querying the store failed.
	ReasonStorage

	// ReasonTransform means the in-memory transformation failed.
	ReasonTransform
)

// String returns a human-readable representation of the reason.
func (r FailureReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonStorage:
		return "storage"
	case ReasonTransform:
		return "transform"
	default:
		return "unknown"
	}
}

// Result is the outcome of one report engine run.
//
// On failure Rows is empty, Reason is set and Err carries the cause. This lets
// callers tell "no qualifying rows" apart from "the query failed".
type Result struct {
	// Engine is the name of the engine that produced the result.
	Engine string

	// Rows is the report, sorted by customer ID then item.
	Rows []ReportRow

	// Reason is ReasonNone on success.
	Reason FailureReason

	// Err is the underlying error when Reason is not ReasonNone.
	Err error
}

// Succeeded builds a successful result.
func Succeeded(engine string, rows []ReportRow) Result {
	return Result{Engine: engine, Rows: rows}
}

// Failed builds a failed result with no rows.
func Failed(engine string, reason FailureReason, err error) Result {
	return Result{Engine: engine, Reason: reason, Err: err}
}

// OK reports whether the engine ran to completion.
func (r Result) OK() bool {
	return r.Reason == ReasonNone
}

// Empty reports whether the result holds no rows, for any reason.
func (r Result) Empty() bool {
	return len(r.Rows) == 0
}

// String summarizes the result for logs.
func (r Result) String() string {
	if !r.OK() {
		return fmt.Sprintf("%s: %s failure: %v", r.Engine, r.Reason, r.Err)
	}
	return fmt.Sprintf("%s: %d rows", r.Engine, len(r.Rows))
}

// Agreement is the outcome of comparing two results.
type Agreement int

const (
	// AgreementSkipped means at least one result failed, so rows were not compared.
	AgreementSkipped Agreement = iota

	// AgreementSame means both results hold the same rows.
	AgreementSame

	// AgreementDifferent means the rows differ.
	AgreementDifferent
)

// String returns a human-readable representation of the agreement.
func (a Agreement) String() string {
	switch a {
	case AgreementSkipped:
		return "skipped"
	case AgreementSame:
		return "agree"
	case AgreementDifferent:
		return "disagree"
	default:
		return "unknown"
	}
}

// Compare reports whether two successful results hold the same rows,
// ignoring order.
func Compare(a, b Result) Agreement {
	if !a.OK() || !b.OK() {
		return AgreementSkipped
	}
	if !SameRows(a.Rows, b.Rows) {
		return AgreementDifferent
	}
	return AgreementSame
}
