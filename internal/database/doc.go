// Package database provides SQLite-based storage for salesreport.
//
// The store holds two tables:
//   - customers: customer_id and age
//   - sales: sale_id, customer_id, item and a nullable text quantity
//
// We use SQLite via modernc.org/sqlite, a CGO-free driver, so the whole
// dataset is a single file that is easy to create, inspect and throw away.
//
// The report query relies on the deterministic scalar function
// positive_quantity, registered with the driver when a store is opened. It
// applies model.ParseQuantity inside SQL, so the declarative report and the
// pipeline report use the same quantity rule.
package database
