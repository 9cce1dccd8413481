// Package config provides configuration structures and utilities for salesreport.
//
// Values are layered, lowest priority first:
//  1. Built-in defaults (NewConfig)
//  2. A YAML config file (.salesreport, or config.yaml in the XDG config directory)
//  3. A .env file
//  4. The process environment (DATABASE_PATH, OUTPUT_PATH, ...)
//  5. Command line flags, applied by the caller
package config
