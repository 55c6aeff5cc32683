// Package logging builds the zap logger used for diagnostics.
//
// The interactive viewer owns the terminal, so it logs to a file; one-shot
// commands log to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Stderr selects standard error as the log destination.
const Stderr = "stderr"

// New builds a production logger writing to path. Debug lowers the level to
// debug. The parent directory of a file path is created if missing.
func New(path string, debug bool) (*zap.Logger, error) {
	if path == "" {
		path = Stderr
	}
	if path != Stderr {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
