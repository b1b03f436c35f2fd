package engine

import (
	"context"

	"github.com/sdejongh/photopuller/pkg/logging"
	"github.com/sdejongh/photopuller/pkg/models"
	"github.com/sdejongh/photopuller/pkg/organizer"
	"github.com/sdejongh/photopuller/pkg/scanner"
	"github.com/sdejongh/photopuller/pkg/storage"
)

// Coordinator is the entry point front ends call. It owns the current
// session and replaces it on every scan, exclusion set included.
type Coordinator struct {
	backend storage.Backend
	logger  logging.Logger
	session *Session
}

// NewCoordinator creates a coordinator copying through backend
func NewCoordinator(backend storage.Backend, logger logging.Logger) *Coordinator {
	if backend == nil {
		backend = storage.NewLocal()
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Coordinator{
		backend: backend,
		logger:  logger,
		session: newSession("", models.TypeFilter{}, nil, backend, logger),
	}
}

// Scan starts a new session. Prior scan and copy state is discarded even
// when the scan fails.
func (c *Coordinator) Scan(ctx context.Context, root string, filter models.TypeFilter, exclusions []string, onProgress scanner.ProgressFunc) (*Session, error) {
	c.session = newSession("", models.TypeFilter{}, nil, c.backend, c.logger)

	session, err := Scan(ctx, root, filter, exclusions, onProgress, c.backend, c.logger)
	if err != nil {
		return nil, err
	}
	c.session = session
	return session, nil
}

// Session returns the current session
func (c *Coordinator) Session() *Session {
	return c.session
}

// AddExclusion adds an exclusion to the current session
func (c *Coordinator) AddExclusion(path string) {
	c.session.AddExclusion(path)
}

// RemoveExclusion removes an exclusion from the current session
func (c *Coordinator) RemoveExclusion(path string) {
	c.session.RemoveExclusion(path)
}

// ClearExclusions removes every exclusion from the current session
func (c *Coordinator) ClearExclusions() {
	c.session.ClearExclusions()
}

// Exclusions returns the current exclusion set
func (c *Coordinator) Exclusions() []string {
	return c.session.Exclusions()
}

// Files returns the current active set
func (c *Coordinator) Files() []models.FileInfo {
	return c.session.Files()
}

// ScanStats summarizes the current active set
func (c *Coordinator) ScanStats() models.ScanSummary {
	return c.session.ScanStats()
}

// CopyFiles copies the current active set
func (c *Coordinator) CopyFiles(ctx context.Context, opts CopyOptions, onProgress organizer.ProgressFunc, onFileProgress organizer.FileProgressFunc) ([]models.CopyResult, error) {
	return c.session.CopyFiles(ctx, opts, onProgress, onFileProgress)
}

// Copy copies the current active set and returns the full report
func (c *Coordinator) Copy(ctx context.Context, opts CopyOptions, onProgress organizer.ProgressFunc, onFileProgress organizer.FileProgressFunc) (*models.CopyReport, error) {
	return c.session.Copy(ctx, opts, onProgress, onFileProgress)
}

// CopyStats returns the statistics of the most recent copy or dry run
func (c *Coordinator) CopyStats() models.CopyStats {
	return c.session.CopyStats()
}
