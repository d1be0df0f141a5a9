// Package logger builds the application logger. Records always go to a
// rotating file; with Debug they are mirrored to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Debug bool
	// Path of the log file. Empty disables the file and leaves only the
	// stderr output of debug mode.
	Path   string
	Stderr io.Writer
}

// New returns the logger and a function that closes the log file.
func New(cfg Config) (*log.Logger, func() error, error) {
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	var writers []io.Writer
	closeFn := func() error { return nil }

	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}

		fileWriter := &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		writers = append(writers, fileWriter)
		closeFn = fileWriter.Close
	}
	if cfg.Debug {
		writers = append(writers, stderr)
	}

	writer := io.Discard
	if len(writers) > 0 {
		writer = io.MultiWriter(writers...)
	}

	logger := log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "bcg",
	})

	return logger, closeFn, nil
}
