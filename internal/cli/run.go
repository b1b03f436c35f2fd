package cli

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/sdejongh/photopuller/pkg/config"
	"github.com/sdejongh/photopuller/pkg/engine"
	"github.com/sdejongh/photopuller/pkg/logging"
	"github.com/sdejongh/photopuller/pkg/models"
	"github.com/sdejongh/photopuller/pkg/output"
)

// RunFlags holds run command flags
type RunFlags struct {
	ScanFlags

	Dest     string
	Organize string
	DryRun   bool
}

var runFlags RunFlags

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scan a source and copy its media into an organized destination",
		Long: `Scan a drive or directory for photos, videos and PDFs, then copy them
into the destination organized by date (Photos/2023/07/...) or by source
(Photos/D/...). Duplicates are detected by content and copied once; files
already present at the destination are skipped.`,
		Example: `  # Copy photos and videos from C: to D:\Backup
  photopuller run -s 'C:\' -d 'D:\Backup' --photos --videos

  # See what would be copied
  photopuller run -s /media/card -d ~/Pictures/Imported --dry-run

  # Only PDFs, skipping two folders
  photopuller run -s 'C:\' -d 'D:\Backup' --pdfs --exclude 'C:\Windows,C:\Program Files'`,
		RunE: runRun,
	}

	addScanFlags(cmd, &runFlags.ScanFlags)

	cmd.Flags().StringVarP(&runFlags.Dest, "dest", "d", "", "destination directory path (required)")
	cmd.MarkFlagRequired("dest")
	cmd.Flags().StringVar(&runFlags.Organize, "organize", "", "organization method: date (Year/Month) or source (by drive)")
	cmd.Flags().BoolVar(&runFlags.DryRun, "dry-run", false, "report what would be copied without writing anything")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	if err := validateSource(runFlags.Source); err != nil {
		return err
	}
	if err := validateDestination(runFlags.Source, runFlags.Dest); err != nil {
		return err
	}

	cfg, err := prepareConfig(cmd, &runFlags.ScanFlags, func(cfg *config.Config) {
		applyCopyFlags(cmd, cfg, &runFlags)
	})
	if err != nil {
		return err
	}

	logger, err := createLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return errors.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()
	logger = loggerFor(logger, "run")

	w := outputWriter(cmd, cfg)
	formatter := output.New(cfg.Output.Format, cfg.Output.Progress, w)

	coordinator := engine.NewCoordinator(nil, logger)
	session, err := scanPhase(ctx, coordinator, cfg, runFlags.Source, formatter, w)
	if err != nil {
		return reportFailure(formatter, &output.Result{Root: runFlags.Source}, cfg, err)
	}

	result := scanResult(session)
	files := copyable(session.Files())
	if len(files) == 0 || ctx.Err() != nil {
		result.Interrupted = ctx.Err() != nil
		if err := formatter.Complete(result); err != nil {
			return err
		}
		return exitStatus(ctx, 0)
	}

	// A dry run writes nothing, so it needs no lock
	if !cfg.Copy.DryRun {
		lock, err := acquireDestinationLock(runFlags.Dest)
		if err != nil {
			return reportFailure(formatter, result, cfg, err)
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn(ctx, "Failed to release destination lock", logging.Fields{"error": err.Error()})
			}
		}()
	}

	var totalBytes int64
	for _, file := range files {
		totalBytes += file.Size
	}
	if err := formatter.Start(w, output.PhaseCopy, len(files), totalBytes); err != nil {
		return err
	}

	done := 0
	onProgress := func(file string, stats models.CopyStats, status models.ResultStatus) {
		done++
		_ = formatter.Progress(output.ProgressUpdate{
			Type:        output.UpdateFileComplete,
			FilePath:    file,
			Status:      status,
			CurrentFile: done,
			CopyStats:   stats,
		})
	}
	// Files are processed in order, so the one in flight follows the last
	// completed one
	onFileProgress := func(copied, total int64, rate float64) {
		if done >= len(files) {
			return
		}
		_ = formatter.Progress(output.ProgressUpdate{
			Type:         output.UpdateFileProgress,
			FilePath:     files[done].Path,
			BytesWritten: copied,
			TotalBytes:   total,
			Rate:         rate,
			CurrentFile:  done + 1,
		})
	}

	report, err := coordinator.Copy(ctx, engine.CopyOptions{
		Destination: runFlags.Dest,
		Mode:        cfg.Copy.Organize,
		DryRun:      cfg.Copy.DryRun,
	}, onProgress, onFileProgress)
	if err != nil {
		return reportFailure(formatter, result, cfg, err)
	}

	result.Copy = report
	result.Interrupted = ctx.Err() != nil
	if err := formatter.Complete(result); err != nil {
		return err
	}

	return exitStatus(ctx, report.Status.ExitCode())
}

// copyable returns the files a copy session will process
func copyable(files []models.FileInfo) []models.FileInfo {
	valid := make([]models.FileInfo, 0, len(files))
	for _, file := range files {
		if file.Valid() {
			valid = append(valid, file)
		}
	}
	return valid
}
