package config

import (
	"github.com/sdejongh/photopuller/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Copy    CopyConfig    `yaml:"copy"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScanConfig selects the media types to collect and the folders to hide
type ScanConfig struct {
	Photos     bool     `yaml:"photos"`
	Videos     bool     `yaml:"videos"`
	PDFs       bool     `yaml:"pdfs"`
	Exclusions []string `yaml:"exclusions"`
}

// CopyConfig holds copy-related settings
type CopyConfig struct {
	Organize models.OrganizeMode `yaml:"organize"`
	DryRun   bool                `yaml:"dry_run"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress bars
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Format     string `yaml:"format"`      // "json" or "text"
	Level      string `yaml:"level"`       // "debug", "info", "warn", "error"
	File       string `yaml:"file"`        // Log file path (empty = stderr)
	MaxSize    int64  `yaml:"max_size"`    // Rotate after this many bytes (0 = never)
	MaxBackups int    `yaml:"max_backups"` // Rotated files to keep
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Photos: true,
			Videos: true,
			PDFs:   true,
		},
		Copy: CopyConfig{
			Organize: models.OrganizeByDate,
			DryRun:   false,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Format:     "text",
			Level:      "info",
			File:       "",
			MaxSize:    10 * 1024 * 1024,
			MaxBackups: 3,
		},
	}
}

// TypeFilter returns the configured media type selection
func (c *Config) TypeFilter() models.TypeFilter {
	return models.TypeFilter{Photos: c.Scan.Photos, Videos: c.Scan.Videos, PDFs: c.Scan.PDFs}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.TypeFilter().Empty() {
		return &models.ValidationError{
			Field:   "scan",
			Message: "at least one of photos, videos or pdfs must be enabled",
		}
	}

	if _, err := models.ParseOrganizeMode(string(c.Copy.Organize)); err != nil {
		return &models.ValidationError{
			Field:   "copy.organize",
			Message: "must be 'date' or 'source'",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	if c.Logging.MaxSize < 0 || c.Logging.MaxBackups < 0 {
		return &models.ValidationError{
			Field:   "logging.max_size",
			Message: "rotation limits must not be negative",
		}
	}

	return nil
}
