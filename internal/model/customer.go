package model

// Customer is a row of the customers table.
// Customers are created once at seed time and never modified.
type Customer struct {
	// ID is the unique, positive customer identifier.
	ID int64

	// Age is the customer's age in years.
	Age int
}

// AgeRange is an inclusive age interval.
type AgeRange struct {
	Min int
	Max int
}

// DefaultAgeRange is the age interval the report is restricted to.
var DefaultAgeRange = AgeRange{Min: 18, Max: 35}

// Contains reports whether age lies within the range, bounds included.
func (r AgeRange) Contains(age int) bool {
	return age >= r.Min && age <= r.Max
}
