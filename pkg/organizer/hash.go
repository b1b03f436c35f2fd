package organizer

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"

	"github.com/sdejongh/photopuller/pkg/storage"
)

// blockSize is the read and write unit of both hashing and copying
const blockSize = 1024 * 1024

// ContentHasher computes content digests for the duplicate index.
// MD5 serves as an equality digest only.
type ContentHasher struct {
	bufferPool *sync.Pool
}

// NewContentHasher creates a hasher reading in blockSize chunks
func NewContentHasher() *ContentHasher {
	return &ContentHasher{
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, blockSize)
				return &buf
			},
		},
	}
}

// Hash returns the hex digest of the file at path
func (h *ContentHasher) Hash(ctx context.Context, backend storage.Backend, path string) (string, error) {
	reader, err := backend.Open(ctx, path)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	hash := md5.New()
	bufPtr := h.bufferPool.Get().(*[]byte)
	defer h.bufferPool.Put(bufPtr)

	if _, err := io.CopyBuffer(hash, reader, *bufPtr); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

// buffer lends a block buffer to the copier
func (h *ContentHasher) buffer() (*[]byte, func()) {
	bufPtr := h.bufferPool.Get().(*[]byte)
	return bufPtr, func() { h.bufferPool.Put(bufPtr) }
}
