package model

import (
	"database/sql"
	"strconv"
	"strings"
)

// ParseQuantity interprets a stored quantity.
//
// It returns the parsed value and true only when the quantity is present,
// parses as a base-10 integer and is strictly positive. Every other case
// (NULL, "", "0", "-2", "n/a", "1.5") returns false. Both report engines go
// through this rule: the SQL engine via ParseQuantityText, the pipeline
// engine stage by stage via QuantityPresent, CoerceQuantity and
// PositiveQuantity.
func ParseQuantity(q sql.NullString) (int, bool) {
	if !QuantityPresent(q) {
		return 0, false
	}
	return ParseQuantityText(q.String)
}

// ParseQuantityText is ParseQuantity for a quantity known to be non-NULL.
func ParseQuantityText(s string) (int, bool) {
	n, ok := CoerceQuantity(s)
	if !ok || !PositiveQuantity(n) {
		return 0, false
	}
	return n, true
}

// QuantityPresent reports whether q is neither NULL nor blank.
func QuantityPresent(q sql.NullString) bool {
	return q.Valid && strings.TrimSpace(q.String) != ""
}

// CoerceQuantity parses s as a base-10 integer, ignoring surrounding
// whitespace. It reports false when s is not an integer.
func CoerceQuantity(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// PositiveQuantity reports whether n counts towards a report total.
func PositiveQuantity(n int) bool {
	return n > 0
}
