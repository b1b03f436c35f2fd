package cli

import (
	"io"
	"os"

	"github.com/sdejongh/photopuller/pkg/config"
	"github.com/sdejongh/photopuller/pkg/logging"
)

// createLogger creates a logger based on configuration. Logging is off
// unless enabled; an enabled logger without a file writes to stderr.
func createLogger(cfg config.LoggingConfig, stderr io.Writer) (logging.Logger, error) {
	if !cfg.Enabled {
		return logging.NewNullLogger(), nil
	}

	format := logging.ParseFormat(cfg.Format)
	level := logging.ParseLevel(cfg.Level)

	if cfg.File == "" {
		if stderr == nil {
			stderr = os.Stderr
		}
		return logging.New(stderr, format, level), nil
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.File,
		Format:     format,
		Level:      level,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
	})
}
