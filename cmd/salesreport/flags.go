package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/salesreport/internal/config"
	applog "github.com/nao1215/salesreport/internal/log"
)

// buildConfig loads the configuration layers and applies the flags on top.
// Only flags set on the command line override loaded values.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	envFile, err := flags.GetString("env-file")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigPath:  configPath,
		EnvFilePath: envFile,
	})
	if err != nil {
		return nil, err
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// fallbackConfig is used when buildConfig fails: defaults, then the process
// environment, then flags, skipping whatever layer is broken. The result is
// not validated.
func fallbackConfig(cmd *cobra.Command) *config.Config {
	cfg := config.NewConfig()
	_ = cfg.ApplyEnv(os.LookupEnv)
	_ = applyFlags(cmd, cfg)
	return cfg
}

// applyFlags copies the flags set on the command line onto cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	var errs []error
	setString := func(name string, dst *string) {
		if !flags.Changed(name) {
			return
		}
		v, err := flags.GetString(name)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = v
	}

	setString("db", &cfg.DatabasePath)
	setString("output", &cfg.OutputDir)
	setString("log-file", &cfg.LogFile)
	setString("log-format", &cfg.LogFormat)

	if flags.Changed("verbose") {
		v, err := flags.GetBool("verbose")
		if err != nil {
			errs = append(errs, err)
		} else {
			cfg.Verbose = v
		}
	}

	return errors.Join(errs...)
}

// setupLogger creates the logger for cfg writing to w.
func setupLogger(cfg *config.Config, w io.Writer) (*slog.Logger, io.Closer, error) {
	logger, closer, err := applog.Setup(applog.Options{
		Output:  w,
		Verbose: cfg.Verbose,
		JSON:    cfg.LogFormat == config.LogFormatJSON,
		File: applog.RotationConfig{
			File:      cfg.LogFile,
			MaxSizeMB: cfg.LogMaxSizeMB,
			MaxFiles:  cfg.LogMaxFiles,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return logger, closer, nil
}

// setupLoggerOrStdout is setupLogger that falls back to a plain logger on w
// when the configured one cannot be built, for example because the log file
// is not writable. The error is returned alongside the usable logger.
func setupLoggerOrStdout(cfg *config.Config, w io.Writer) (*slog.Logger, io.Closer, error) {
	logger, closer, err := setupLogger(cfg, w)
	if err == nil {
		return logger, closer, nil
	}
	// Without a file, Setup cannot fail.
	logger, closer, _ = applog.Setup(applog.Options{Output: w, Verbose: cfg.Verbose})
	return logger, closer, err
}
