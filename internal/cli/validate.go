package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/sdejongh/photopuller/internal/platform"
	"github.com/sdejongh/photopuller/pkg/config"
	"github.com/sdejongh/photopuller/pkg/models"
)

// validateSource checks that the scan root exists and is a directory
func validateSource(source string) error {
	if err := platform.ValidatePath(source); err != nil {
		return err
	}

	info, err := os.Stat(source)
	if os.IsNotExist(err) {
		return errors.Errorf("source path does not exist: %s", source)
	} else if err != nil {
		return errors.Errorf("failed to access source path: %w", err)
	}
	if !info.IsDir() {
		return errors.Errorf("source path is not a directory: %s", source)
	}
	return nil
}

// validateDestination checks the copy destination. It may be missing, in
// which case the copy creates it, but it may not be a file or the source
// itself.
func validateDestination(source, dest string) error {
	if err := platform.ValidatePath(dest); err != nil {
		return err
	}

	info, err := os.Stat(dest)
	if err == nil && !info.IsDir() {
		return errors.Errorf("destination path exists but is not a directory: %s", dest)
	} else if err != nil && !os.IsNotExist(err) {
		return errors.Errorf("failed to access destination path: %w", err)
	}

	sourceAbs, err := filepath.Abs(source)
	if err != nil {
		return errors.Errorf("failed to resolve source path: %w", err)
	}
	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return errors.Errorf("failed to resolve destination path: %w", err)
	}
	if platform.Fold(sourceAbs) == platform.Fold(destAbs) {
		return errors.Errorf("source and destination cannot be the same: %s", sourceAbs)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	return config.Load(globalFlags.ConfigFile)
}

// applyScanFlags overrides config values with the scan flags that were set
func applyScanFlags(cmd *cobra.Command, cfg *config.Config, f *ScanFlags) {
	// With no type flag the configured selection stands, all types by default
	if typeFlagsSet(cmd) {
		cfg.Scan.Photos = f.Photos
		cfg.Scan.Videos = f.Videos
		cfg.Scan.PDFs = f.PDFs
	}

	if cmd.Flags().Changed("exclude") {
		cfg.Scan.Exclusions = f.Exclude
	}

	if f.Output != "" {
		cfg.Output.Format = f.Output
	}
	if f.JSON {
		cfg.Output.Format = "json"
	}

	if f.LogFile != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.File = f.LogFile
	}
	if f.LogFormat != "" {
		cfg.Logging.Format = f.LogFormat
	}
	if f.LogLevel != "" {
		cfg.Logging.Level = f.LogLevel
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	if globalFlags.Verbose {
		cfg.Logging.Enabled = true
		if f.LogLevel == "" {
			cfg.Logging.Level = "debug"
		}
	}
}

// applyCopyFlags overrides the copy section with the run flags that were set
func applyCopyFlags(cmd *cobra.Command, cfg *config.Config, f *RunFlags) {
	if f.Organize != "" {
		cfg.Copy.Organize = models.OrganizeMode(f.Organize)
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.Copy.DryRun = f.DryRun
	}
}

// prepareConfig loads the config file, applies the flags and validates the
// result
func prepareConfig(cmd *cobra.Command, f *ScanFlags, apply ...func(*config.Config)) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, errors.Errorf("failed to load config: %w", err)
	}

	applyScanFlags(cmd, cfg, f)
	for _, fn := range apply {
		fn(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
