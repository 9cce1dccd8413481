package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/nao1215/salesreport/internal/model"
)

// Dataset is the content written by the seeder.
type Dataset struct {
	Customers []model.Customer
	Sales     []model.Sale
}

// SampleData returns the fixed sample dataset.
//
// Customers 4 and 5 fall outside the report's age range. The sales cover
// every quantity case the report must handle: valid, NULL, zero, empty and
// unparsable.
func SampleData() Dataset {
	return Dataset{
		Customers: []model.Customer{
			{ID: 1, Age: 21},
			{ID: 2, Age: 23},
			{ID: 3, Age: 35},
			{ID: 4, Age: 40},
			{ID: 5, Age: 17},
		},
		Sales: []model.Sale{
			newSale(1, 1, "x", "7"),
			newSale(2, 1, "x", "3"),
			newNullSale(3, 1, "y"),
			newSale(4, 1, "z", "0"),
			newSale(5, 2, "x", "1"),
			newSale(6, 2, "y", "1"),
			newSale(7, 2, "z", "1"),
			newSale(8, 3, "z", "1"),
			newSale(9, 3, "z", "1"),
			newNullSale(10, 3, "x"),
			newSale(11, 4, "x", "5"),
			newSale(12, 5, "y", "3"),
			newSale(13, 2, "y", ""),
			newSale(14, 3, "x", "n/a"),
		},
	}
}

func newSale(id, customerID int64, item, quantity string) model.Sale {
	return model.Sale{
		ID:         id,
		CustomerID: sql.NullInt64{Int64: customerID, Valid: true},
		Item:       item,
		Quantity:   sql.NullString{String: quantity, Valid: true},
	}
}

func newNullSale(id, customerID int64, item string) model.Sale {
	return model.Sale{
		ID:         id,
		CustomerID: sql.NullInt64{Int64: customerID, Valid: true},
		Item:       item,
	}
}

// Seed creates the database at path with SampleData.
// See SeedWith.
func Seed(ctx context.Context, path string) (bool, error) {
	return SeedWith(ctx, path, SampleData())
}

// SeedWith creates the database at path and fills it with data.
//
// It is a no-op when a file already exists at path, and reports whether it
// seeded. All rows are written in one transaction; if seeding fails the new
// file is removed so a later run starts clean.
func SeedWith(ctx context.Context, path string, data Dataset) (seeded bool, err error) {
	exists, err := Exists(path)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	s, err := Open(path, Options{CreateIfNotExists: true})
	if err != nil {
		return false, errors.Join(err, removeDatabase(path))
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", cerr)
		}
		if err != nil {
			seeded = false
			err = errors.Join(err, removeDatabase(path))
		}
	}()

	if err := s.insert(ctx, data); err != nil {
		return false, err
	}
	return true, nil
}

// insert writes data in a single transaction.
func (s *Store) insert(ctx context.Context, data Dataset) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, c := range data.Customers {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO customers (customer_id, age) VALUES (?, ?)",
			c.ID, c.Age,
		); err != nil {
			return fmt.Errorf("failed to insert customer %d: %w", c.ID, err)
		}
	}

	for _, sale := range data.Sales {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO sales (sale_id, customer_id, item, quantity) VALUES (?, ?, ?, ?)",
			sale.ID, sale.CustomerID, sale.Item, sale.Quantity,
		); err != nil {
			return fmt.Errorf("failed to insert sale %d: %w", sale.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}
	return nil
}

// removeDatabase deletes a partially seeded database and its journal files.
func removeDatabase(path string) error {
	var errs []error
	for _, p := range []string{path, path + "-journal", path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}
