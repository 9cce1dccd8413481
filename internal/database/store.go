package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store provides access to the customers and sales tables in one SQLite file.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// path is the path to the SQLite database file.
	path string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the parent directory, the database file and
	// the schema when they are missing. When false, Open fails with
	// ErrStoreNotFound for a missing file and never writes to disk.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. It leaves -wal and -shm files
	// next to the database, so it is off by default.
	EnableWAL bool
}

// DefaultOptions returns options for opening an existing store.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: false,
		EnableWAL:         false,
	}
}

// Open opens the SQLite database at path.
func Open(path string, opts Options) (*Store, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	if err := registerFunctions(); err != nil {
		return nil, fmt.Errorf("failed to register SQL functions: %w", err)
	}

	mode := "rw"
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		mode = "rwc"
	} else {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrStoreNotFound, path)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	}

	dsn, err := uriDSN(path, mode)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer, and the run is sequential anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:   db,
		path: path,
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if opts.CreateIfNotExists {
		if err := s.createTables(context.Background()); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return s, nil
}

// uriDSN builds a file: URI for path. The driver only honours mode= in URI
// form, and SQLite percent-decodes the path, so characters such as '#', '?'
// and '%' must be escaped.
func uriDSN(path, mode string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path: %w", err)
	}
	// Windows volumes need a leading slash: file:///C:/data/company.db
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{
		Scheme:   "file",
		Path:     p,
		RawQuery: "mode=" + mode + "&_pragma=foreign_keys(1)",
	}
	return u.String(), nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// schema creates both tables. Quantity is TEXT on purpose: it is not
// validated at storage time.
const schema = `
CREATE TABLE IF NOT EXISTS customers (
	customer_id INTEGER PRIMARY KEY,
	age INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sales (
	sale_id INTEGER PRIMARY KEY,
	customer_id INTEGER,
	item TEXT NOT NULL,
	quantity TEXT,
	FOREIGN KEY (customer_id) REFERENCES customers (customer_id)
);

CREATE INDEX IF NOT EXISTS idx_sales_customer ON sales(customer_id);
`

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Exists reports whether a regular file is present at path.
// Errors other than "not found" are returned so callers do not mistake an
// unreadable location for an empty one.
func Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check database path: %w", err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("database path %s is a directory", path)
	}
	return true, nil
}
