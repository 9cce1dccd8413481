// Package model defines the core data structures used throughout salesreport.
//
// This package contains the following main types:
//   - Customer: A seeded customer with an age
//   - Sale: A seeded sale line whose quantity is stored as unvalidated text
//   - ReportRow: One aggregated output record (customer, age, item, quantity)
//   - Result: The outcome of a report engine run
//
// The quantity rule (ParseQuantity) and the age rule (AgeRange) live here so
// that the SQL engine and the pipeline engine share one definition of which
// sales qualify for the report.
package model
