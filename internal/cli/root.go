package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the photopuller command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "photopuller",
		Short: "Find photos, videos and PDFs and copy them into an organized tree",
		Long: `photopuller scans drives and directories for photos, videos and PDF
documents, skipping system folders, and copies them into a destination
organized by date or by source. Identical files are copied once and
nothing at the destination is ever overwritten.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewScanCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
