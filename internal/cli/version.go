package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdejongh/photopuller/pkg/models"
	"github.com/sdejongh/photopuller/pkg/scanner"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information and recognized file types",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, Version)
				return
			}

			fmt.Fprintf(out, "photopuller %s (commit %s, built %s)\n", Version, Commit, BuildDate)
			fmt.Fprintf(out, "  %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintln(out, "Recognized extensions:")
			for _, kind := range []models.MediaType{models.MediaPhoto, models.MediaVideo, models.MediaPDF} {
				fmt.Fprintf(out, "  %-6s %s\n", kind, strings.Join(scanner.Extensions(kind), " "))
			}
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "print only the version number")

	return cmd
}
