package database

import (
	"context"
	"fmt"

	"github.com/nao1215/salesreport/internal/model"
)

// Customers returns every customer ordered by ID.
func (s *Store) Customers(ctx context.Context) ([]model.Customer, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT customer_id, age FROM customers ORDER BY customer_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Age); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

// Sales returns every sale ordered by ID, with quantities left as stored.
func (s *Store) Sales(ctx context.Context) ([]model.Sale, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT sale_id, customer_id, item, quantity FROM sales ORDER BY sale_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var sales []model.Sale
	for rows.Next() {
		var sale model.Sale
		if err := rows.Scan(&sale.ID, &sale.CustomerID, &sale.Item, &sale.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}

	return sales, rows.Err()
}

// Count returns the number of rows in customers and sales.
func (s *Store) Count(ctx context.Context) (customers, sales int, err error) {
	query := "SELECT (SELECT COUNT(*) FROM customers), (SELECT COUNT(*) FROM sales)"
	if err := s.db.QueryRowContext(ctx, query).Scan(&customers, &sales); err != nil {
		return 0, 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return customers, sales, nil
}
