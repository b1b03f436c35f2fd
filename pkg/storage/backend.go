package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a file
type FileInfo struct {
	Path        string
	Size        int64
	ModTime     time.Time
	IsDir       bool
	Permissions uint32
}

// Backend defines the filesystem operations the organizer performs.
// Paths are absolute. Implementations include the local filesystem and
// fault-injecting wrappers used in tests.
type Backend interface {
	// Open opens a file for reading
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Create creates a new file for writing; it fails if path already exists
	Create(ctx context.Context, path string) (io.WriteCloser, error)

	// SetMetadata applies the modification time and permissions of meta to path
	SetMetadata(ctx context.Context, path string, meta *FileInfo) error

	// Delete removes a single file
	Delete(ctx context.Context, path string) error

	// Stat returns file metadata
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// MkdirAll creates a directory and all necessary parents
	MkdirAll(ctx context.Context, path string) error

	// Close releases any resources held by the backend
	Close() error
}
