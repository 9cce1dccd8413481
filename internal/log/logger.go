package log

import (
	"io"
	"log/slog"
)

// Options configures Setup.
type Options struct {
	// Output receives log lines. Typically os.Stdout.
	Output io.Writer

	// Verbose sets the level to Debug instead of Info.
	Verbose bool

	// JSON selects the JSON handler instead of the text handler.
	JSON bool

	// File optionally tees output to a rotating log file.
	// Leave File.File empty to disable.
	File RotationConfig
}

// NewLogger creates a text logger writing to w.
// If verbose is true the level is Debug, otherwise Info.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, handlerOptions(verbose)))
}

// NewJSONLogger creates a JSON logger writing to w.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, handlerOptions(verbose)))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}

// Setup creates the application logger described by opts.
// The returned closer releases the log file and is safe to call when no
// file was configured.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	out := opts.Output
	if out == nil {
		out = io.Discard
	}

	var closer io.Closer = nopCloser{}
	if opts.File.File != "" {
		rw, err := NewRotatingWriter(opts.File)
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(out, rw)
		closer = rw
	}

	if opts.JSON {
		return NewJSONLogger(out, opts.Verbose), closer, nil
	}
	return NewLogger(out, opts.Verbose), closer, nil
}

// WithComponent tags every record of logger with a component name.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
