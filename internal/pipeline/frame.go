package pipeline

import (
	"database/sql"

	"github.com/nao1215/salesreport/internal/model"
)

// Record is one sale joined to its customer.
type Record struct {
	CustomerID int64
	Age        int
	Item       string

	// RawQuantity is the quantity text as stored.
	RawQuantity sql.NullString

	// Quantity is the coerced quantity. It is only meaningful when Valid.
	Quantity int

	// Valid is false when RawQuantity could not be coerced to an integer.
	// It plays the role of a not-a-number marker: the record is kept until
	// a later stage drops it.
	Valid bool
}

// Frame carries the data between steps.
type Frame struct {
	// Customers and Sales are the raw inputs.
	Customers []model.Customer
	Sales     []model.Sale

	// Records holds joined records once JoinSales has run.
	Records []Record

	// Groups holds summed groups once GroupSum has run.
	Groups []Group[GroupKey]

	// Rows holds the report once ToReportRows has run.
	Rows []model.ReportRow
}

// NewFrame creates a Frame from raw inputs.
func NewFrame(customers []model.Customer, sales []model.Sale) *Frame {
	return &Frame{
		Customers: customers,
		Sales:     sales,
	}
}
