package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The paths match the container layout the tool was first written for:
// a data volume for the database and an output volume for reports.
const (
	// DefaultDatabasePath is the SQLite database file.
	DefaultDatabasePath = "/data/company.db"

	// DefaultOutputDir is the directory reports are written to.
	DefaultOutputDir = "/output"

	// DefaultSQLOutputName is the file name of the SQL engine's report.
	DefaultSQLOutputName = "sql_output.csv"

	// DefaultPipelineOutputName is the file name of the pipeline engine's report.
	// Downstream consumers expect this name.
	DefaultPipelineOutputName = "pandas_output.csv"

	// DefaultLogMaxSizeMB is the size at which the log file is rotated.
	DefaultLogMaxSizeMB = 10

	// DefaultLogMaxFiles is the number of rotated log files kept.
	DefaultLogMaxFiles = 5

	// DefaultLogFormat is the log output format.
	DefaultLogFormat = LogFormatText

	// AppName is the application name used for XDG directory paths.
	AppName = "salesreport"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Environment variable names.
const (
	EnvDatabasePath = "DATABASE_PATH"
	EnvOutputPath   = "OUTPUT_PATH"
	EnvVerbose      = "SALESREPORT_VERBOSE"
	EnvLogFile      = "SALESREPORT_LOG_FILE"
	EnvLogFormat    = "SALESREPORT_LOG_FORMAT"
)

// Config holds all configuration options for salesreport.
// It is populated by Load and then adjusted from CLI flags.
type Config struct {
	// DatabasePath is the SQLite database file. Its directory is created
	// when missing, and the file is seeded when absent.
	DatabasePath string

	// OutputDir is where report files are written. Created when missing.
	OutputDir string

	// SQLOutputName is the report file name for the SQL engine.
	SQLOutputName string

	// PipelineOutputName is the report file name for the pipeline engine.
	PipelineOutputName string

	// Verbose enables debug logging.
	Verbose bool

	// LogFormat is LogFormatText or LogFormatJSON.
	LogFormat string

	// LogFile, when set, receives a copy of the log output with rotation.
	LogFile string

	// LogMaxSizeMB is the rotation size of LogFile.
	LogMaxSizeMB int

	// LogMaxFiles is the number of rotated LogFile backups kept.
	LogMaxFiles int

	// ConfigFilePath is the YAML file that was loaded, if any. Logged at
	// debug level by the run command.
	ConfigFilePath string

	// EnvFilePath is the .env file that was loaded, if any.
	EnvFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		DatabasePath:       DefaultDatabasePath,
		OutputDir:          DefaultOutputDir,
		SQLOutputName:      DefaultSQLOutputName,
		PipelineOutputName: DefaultPipelineOutputName,
		LogFormat:          DefaultLogFormat,
		LogMaxSizeMB:       DefaultLogMaxSizeMB,
		LogMaxFiles:        DefaultLogMaxFiles,
	}
}

// SQLOutputPath returns the full path of the SQL engine's report.
func (c *Config) SQLOutputPath() string {
	return filepath.Join(c.OutputDir, c.SQLOutputName)
}

// PipelineOutputPath returns the full path of the pipeline engine's report.
func (c *Config) PipelineOutputPath() string {
	return filepath.Join(c.OutputDir, c.PipelineOutputName)
}

// DatabaseDir returns the directory containing the database file.
func (c *Config) DatabaseDir() string {
	return filepath.Dir(c.DatabasePath)
}

// XDGConfigDir returns the XDG config directory for salesreport.
// On Linux: ~/.config/salesreport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return ErrEmptyDatabasePath
	}

	if strings.TrimSpace(c.OutputDir) == "" {
		return ErrEmptyOutputDir
	}

	for _, name := range []string{c.SQLOutputName, c.PipelineOutputName} {
		if !isPlainFileName(name) {
			return ErrInvalidOutputName
		}
	}

	if c.SQLOutputName == c.PipelineOutputName {
		return ErrDuplicateOutputName
	}

	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return ErrInvalidLogFormat
	}

	if c.LogFile != "" && (c.LogMaxSizeMB <= 0 || c.LogMaxFiles <= 0) {
		return ErrInvalidLogRotation
	}

	return nil
}

func isPlainFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}
