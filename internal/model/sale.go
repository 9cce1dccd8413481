package model

import "database/sql"

// Sale is a row of the sales table.
//
// Quantity is kept as nullable text exactly as stored. It may be NULL,
// empty, zero, or not a number at all; interpreting it is the job of
// ParseQuantity, not of the storage layer.
type Sale struct {
	// ID is the unique, positive sale identifier.
	ID int64

	// CustomerID references Customer.ID. It is NULL for orphan sales.
	CustomerID sql.NullInt64

	// Item is the non-empty item label.
	Item string

	// Quantity is the raw quantity text.
	Quantity sql.NullString
}
