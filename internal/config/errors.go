package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and Load().
var (
	// ErrEmptyDatabasePath is returned when the database path is empty.
	ErrEmptyDatabasePath = errors.New("invalid database path: must not be empty")

	// ErrEmptyOutputDir is returned when the output directory is empty.
	ErrEmptyOutputDir = errors.New("invalid output directory: must not be empty")

	// ErrInvalidOutputName is returned when an output file name is empty or
	// contains a path separator. Output files always live in OutputDir.
	ErrInvalidOutputName = errors.New("invalid output file name: must be a plain file name")

	// ErrDuplicateOutputName is returned when both engines would write the same file.
	ErrDuplicateOutputName = errors.New("invalid output file names: SQL and pipeline outputs must differ")

	// ErrInvalidLogRotation is returned when log rotation limits are not positive.
	ErrInvalidLogRotation = errors.New("invalid log rotation: size and file count must be positive")

	// ErrInvalidLogFormat is returned when the log format is neither text nor json.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrInvalidBool is returned when a boolean environment variable cannot be parsed.
	ErrInvalidBool = errors.New("invalid boolean value")
)
