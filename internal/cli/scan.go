package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/sdejongh/photopuller/pkg/config"
	"github.com/sdejongh/photopuller/pkg/engine"
	"github.com/sdejongh/photopuller/pkg/logging"
	"github.com/sdejongh/photopuller/pkg/models"
	"github.com/sdejongh/photopuller/pkg/output"
)

var scanFlags ScanFlags

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Find photos, videos and PDFs without copying",
		Long: `Walk a drive or directory, skipping system folders, and report the
media files found. Nothing is written.`,
		Example: `  photopuller scan -s /media/card
  photopuller scan -s 'C:\' --photos --exclude 'C:\Users\me\AppData' --json`,
		RunE: runScan,
	}

	addScanFlags(cmd, &scanFlags)

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	if err := validateSource(scanFlags.Source); err != nil {
		return err
	}

	cfg, err := prepareConfig(cmd, &scanFlags)
	if err != nil {
		return err
	}

	logger, err := createLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return errors.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	w := outputWriter(cmd, cfg)
	formatter := output.New(cfg.Output.Format, cfg.Output.Progress, w)

	coordinator := engine.NewCoordinator(nil, loggerFor(logger, "scan"))
	session, err := scanPhase(ctx, coordinator, cfg, scanFlags.Source, formatter, w)
	if err != nil {
		return reportFailure(formatter, &output.Result{Root: scanFlags.Source}, cfg, err)
	}

	result := scanResult(session)
	result.Interrupted = ctx.Err() != nil
	if err := formatter.Complete(result); err != nil {
		return err
	}

	return exitStatus(ctx, 0)
}

// scanPhase runs the scan with progress routed to formatter
func scanPhase(ctx context.Context, coordinator *engine.Coordinator, cfg *config.Config, source string, formatter output.Formatter, w io.Writer) (*engine.Session, error) {
	if err := formatter.Start(w, output.PhaseScan, 0, 0); err != nil {
		return nil, err
	}

	return coordinator.Scan(ctx, source, cfg.TypeFilter(), cfg.Scan.Exclusions, func(dir string, stats models.ScanStats) {
		_ = formatter.Progress(output.ProgressUpdate{
			Type:      output.UpdateDirectory,
			FilePath:  dir,
			ScanStats: stats,
		})
	})
}

// scanResult collects the scan part of the final output
func scanResult(session *engine.Session) *output.Result {
	return &output.Result{
		Root:       session.Root,
		Walk:       session.WalkStats(),
		Summary:    session.ScanStats(),
		Exclusions: session.Exclusions(),
		Files:      session.Files(),
	}
}

// reportFailure shows a fatal err through formatter. A JSON document is
// still written, carrying the error. Quiet human output goes nowhere, so
// then err is left to the caller to print.
func reportFailure(formatter output.Formatter, result *output.Result, cfg *config.Config, err error) error {
	_ = formatter.Error(err)
	if formatter.Name() == "json" {
		_ = formatter.Complete(result)
		return &ReportedError{Err: err}
	}
	if cfg.Output.Quiet {
		return err
	}
	return &ReportedError{Err: err}
}

// outputWriter returns where formatted output goes. Quiet mode silences
// human output; a JSON document is always written.
func outputWriter(cmd *cobra.Command, cfg *config.Config) io.Writer {
	if cfg.Output.Quiet && cfg.Output.Format != "json" {
		return io.Discard
	}
	return cmd.OutOrStdout()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loggerFor attaches the command name to every log line
func loggerFor(logger logging.Logger, command string) logging.Logger {
	return logger.WithFields(logging.Fields{"command": command})
}
