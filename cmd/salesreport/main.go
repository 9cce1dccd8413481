// Package main provides the entry point for the salesreport CLI.
//
// salesreport seeds a small SQLite sales database when it is absent and
// writes the same customer/item report twice: once computed by a single SQL
// query and once by an in-memory pipeline.
//
// Usage:
//
//	salesreport
//	salesreport run --check
//	salesreport show --engine sql
//
// See --help for all available options.
package main

// main is the entry point for salesreport.
func main() {
	Execute()
}
