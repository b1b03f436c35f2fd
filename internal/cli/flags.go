package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
}

var globalFlags GlobalFlags

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.ConfigFile,
		"config",
		"",
		"config file (default is $HOME/.config/photopuller/config.yaml)",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Verbose,
		"verbose",
		"v",
		false,
		"verbose output, logs go to stderr unless --log-file is set",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Quiet,
		"quiet",
		"q",
		false,
		"suppress non-error output",
	)
}

// ScanFlags holds the flags shared by the scan and run commands
type ScanFlags struct {
	Source  string
	Photos  bool
	Videos  bool
	PDFs    bool
	Exclude []string
	Output  string
	JSON    bool

	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

// addScanFlags registers the source, type filter, output and logging flags
func addScanFlags(cmd *cobra.Command, f *ScanFlags) {
	cmd.Flags().StringVarP(&f.Source, "source", "s", "", "drive or directory to scan (required)")
	cmd.MarkFlagRequired("source")

	cmd.Flags().BoolVar(&f.Photos, "photos", false, "include photos (all types when no type flag is given)")
	cmd.Flags().BoolVar(&f.Videos, "videos", false, "include videos")
	cmd.Flags().BoolVar(&f.PDFs, "pdfs", false, "include PDF documents")
	cmd.Flags().StringSliceVar(&f.Exclude, "exclude", []string{}, "folder paths to exclude, matched as case-insensitive prefixes")

	cmd.Flags().StringVarP(&f.Output, "output", "o", "", "output format: human, json")
	cmd.Flags().BoolVar(&f.JSON, "json", false, "shorthand for --output json")

	cmd.Flags().StringVar(&f.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&f.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&f.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// typeFlagsSet reports whether any media type flag was given
func typeFlagsSet(cmd *cobra.Command) bool {
	for _, name := range []string{"photos", "videos", "pdfs"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
