package database

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strconv"
	"sync"

	"modernc.org/sqlite"

	"github.com/nao1215/salesreport/internal/model"
)

// reportQuery joins, filters, groups and orders in one statement.
// positive_quantity yields NULL for every quantity the report excludes.
const reportQuery = `
SELECT
	c.customer_id AS Customer,
	c.age AS Age,
	s.item AS Item,
	SUM(positive_quantity(s.quantity)) AS Quantity
FROM customers c
JOIN sales s ON c.customer_id = s.customer_id
WHERE c.age BETWEEN ? AND ?
	AND positive_quantity(s.quantity) IS NOT NULL
GROUP BY c.customer_id, c.age, s.item
ORDER BY c.customer_id, s.item
`

// ReportRows computes the report in SQL for customers within ages.
func (s *Store) ReportRows(ctx context.Context, ages model.AgeRange) ([]model.ReportRow, error) {
	rows, err := s.db.QueryContext(ctx, reportQuery, ages.Min, ages.Max)
	if err != nil {
		return nil, fmt.Errorf("failed to query report: %w", err)
	}
	defer rows.Close()

	results := make([]model.ReportRow, 0)
	for rows.Next() {
		var r model.ReportRow
		if err := rows.Scan(&r.CustomerID, &r.Age, &r.Item, &r.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

var (
	registerOnce sync.Once
	registerErr  error
)

// registerFunctions registers the SQL functions the report query needs.
// Registration is process-wide and only allowed once per name.
func registerFunctions() error {
	registerOnce.Do(func() {
		registerErr = sqlite.RegisterDeterministicScalarFunction("positive_quantity", 1, positiveQuantity)
	})
	return registerErr
}

// positiveQuantity is model.ParseQuantity exposed to SQL.
// It returns the quantity as an integer, or NULL when it does not count.
func positiveQuantity(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	var text string
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		text = v
	case []byte:
		text = string(v)
	case int64:
		text = strconv.FormatInt(v, 10)
	default:
		// REAL never reaches a TEXT column with affinity, but reject it
		// rather than guess a conversion.
		return nil, nil
	}

	n, ok := model.ParseQuantityText(text)
	if !ok {
		return nil, nil
	}
	return int64(n), nil
}
