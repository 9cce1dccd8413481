package model

import (
	"cmp"
	"slices"
	"strconv"
)

// Header is the column header of an exported report, in column order.
var Header = []string{"Customer", "Age", "Item", "Quantity"}

// ReportRow is one aggregated report record: the summed positive quantity
// of one item bought by one customer.
type ReportRow struct {
	CustomerID int64
	Age        int
	Item       string
	Quantity   int
}

// Record returns the row as text fields in Header order.
func (r ReportRow) Record() []string {
	return []string{
		strconv.FormatInt(r.CustomerID, 10),
		strconv.Itoa(r.Age),
		r.Item,
		strconv.Itoa(r.Quantity),
	}
}

// CompareRows orders rows by customer ID, then by item.
func CompareRows(a, b ReportRow) int {
	if c := cmp.Compare(a.CustomerID, b.CustomerID); c != 0 {
		return c
	}
	return cmp.Compare(a.Item, b.Item)
}

// SortRows sorts rows in place by customer ID, then by item.
func SortRows(rows []ReportRow) {
	slices.SortStableFunc(rows, CompareRows)
}

// SameRows reports whether a and b hold the same rows regardless of order.
// Neither argument is modified.
func SameRows(a, b []ReportRow) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Clone(a)
	y := slices.Clone(b)
	SortRows(x)
	SortRows(y)
	return slices.Equal(x, y)
}
