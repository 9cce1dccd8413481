package database

import "errors"

var (
	// ErrStoreNotFound is returned by Open when the database file does not
	// exist and Options.CreateIfNotExists is false.
	ErrStoreNotFound = errors.New("database not found")

	// ErrEmptyPath is returned when no database path is given.
	ErrEmptyPath = errors.New("database path is empty")
)
