package main

import (
	"fmt"
	"os"

	"github.com/shawl336/gemini-cli/pkg/logger"
)

// initLoggerFromCLI configures the global logger. Flag values win over the
// LOG_LEVEL, LOG_FILE and LOG_FORMAT environment variables. Returns a
// cleanup func when logging to a file.
func initLoggerFromCLI(levelFlag, fileFlag, formatFlag string) (func(), error) {
	level := levelFlag
	if level == "" || level == "info" {
		if env := os.Getenv("LOG_LEVEL"); env != "" {
			level = env
		}
	}

	file := fileFlag
	if file == "" {
		file = os.Getenv("LOG_FILE")
	}

	format := formatFlag
	if format == "" || format == "simple" {
		if env := os.Getenv("LOG_FORMAT"); env != "" {
			format = env
		}
	}

	slogLevel, err := logger.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	output := os.Stderr
	var cleanup func()
	if file != "" {
		f, c, err := logger.OpenLogFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = f
		cleanup = c
	}

	logger.Init(slogLevel, output, format)
	return cleanup, nil
}
