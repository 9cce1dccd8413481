package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".salesreport"

// DefaultEnvFile is the default .env file name.
const DefaultEnvFile = ".env"

// ErrConfigNotFound is returned when an explicitly requested file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file layout.
// Unset fields leave the current value alone.
type File struct {
	DatabasePath       string  `yaml:"database_path"`
	OutputDir          string  `yaml:"output_dir"`
	SQLOutputName      string  `yaml:"sql_output_name"`
	PipelineOutputName string  `yaml:"pipeline_output_name"`
	Verbose            *bool   `yaml:"verbose"`
	Log                LogFile `yaml:"log"`
}

// LogFile is the log section of File.
type LogFile struct {
	Format    string `yaml:"format"`
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files"`
}

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// ConfigPath is an explicit YAML file. When set, it must exist.
	ConfigPath string

	// EnvFilePath is an explicit .env file. When set, it must exist.
	// When empty, ./.env is used if present.
	EnvFilePath string

	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// Load builds a Config from defaults, the config file, the .env file and
// the environment. It does not validate; call Validate after applying flags.
func Load(opts LoadOptions) (*Config, error) {
	cfg := NewConfig()

	configPath := FindConfigFile(opts.ConfigPath)
	if opts.ConfigPath != "" && configPath == "" {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, opts.ConfigPath)
	}
	if configPath != "" {
		f, err := LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(f)
		cfg.ConfigFilePath = configPath
	}

	envFile, envPath, err := readEnvFile(opts.EnvFilePath)
	if err != nil {
		return nil, err
	}
	cfg.EnvFilePath = envPath

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if err := cfg.ApplyEnv(chainLookup(lookup, envFile)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadConfigFile loads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	return &f, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .salesreport in the current directory
// 3. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}

// ApplyFile copies the set fields of f onto c.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.DatabasePath != "" {
		c.DatabasePath = f.DatabasePath
	}
	if f.OutputDir != "" {
		c.OutputDir = f.OutputDir
	}
	if f.SQLOutputName != "" {
		c.SQLOutputName = f.SQLOutputName
	}
	if f.PipelineOutputName != "" {
		c.PipelineOutputName = f.PipelineOutputName
	}
	if f.Verbose != nil {
		c.Verbose = *f.Verbose
	}
	if f.Log.Format != "" {
		c.LogFormat = f.Log.Format
	}
	if f.Log.File != "" {
		c.LogFile = f.Log.File
	}
	if f.Log.MaxSizeMB != 0 {
		c.LogMaxSizeMB = f.Log.MaxSizeMB
	}
	if f.Log.MaxFiles != 0 {
		c.LogMaxFiles = f.Log.MaxFiles
	}
}

// ApplyEnv overrides c from environment-style lookups.
// Empty values are treated as unset.
func (c *Config) ApplyEnv(lookup func(key string) (string, bool)) error {
	if v, ok := lookupNonEmpty(lookup, EnvDatabasePath); ok {
		c.DatabasePath = v
	}
	if v, ok := lookupNonEmpty(lookup, EnvOutputPath); ok {
		c.OutputDir = v
	}
	if v, ok := lookupNonEmpty(lookup, EnvLogFile); ok {
		c.LogFile = v
	}
	if v, ok := lookupNonEmpty(lookup, EnvLogFormat); ok {
		c.LogFormat = v
	}
	if v, ok := lookupNonEmpty(lookup, EnvVerbose); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w for %s: %q", ErrInvalidBool, EnvVerbose, v)
		}
		c.Verbose = b
	}
	return nil
}

func lookupNonEmpty(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// chainLookup prefers the process environment over values from a .env file.
func chainLookup(lookup func(string) (string, bool), fallback map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := fallback[key]
		return v, ok
	}
}

// readEnvFile reads a .env file without touching the process environment.
// A missing implicit ./.env is not an error.
func readEnvFile(path string) (map[string]string, string, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil, "", nil
		}
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, "", fmt.Errorf("failed to check env file: %w", err)
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return values, path, nil
}
