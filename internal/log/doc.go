// Package log builds the slog loggers used by salesreport.
//
// Log output goes to standard output, matching the rest of the tool's
// user-facing messages. Optionally a rotating log file receives a copy:
//
//	logger, closer, err := log.Setup(log.Options{
//	    Output:  os.Stdout,
//	    Verbose: true,
//	    File:    log.RotationConfig{File: "/var/log/salesreport.log"},
//	})
//	defer closer.Close()
package log
