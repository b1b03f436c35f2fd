package models

import (
	"time"
)

// ScanStats holds running counters for one directory walk
type ScanStats struct {
	// Scanned counts every regular file seen, media or not
	Scanned     int `json:"total_scanned"`
	PhotosFound int `json:"photos_found"`
	VideosFound int `json:"videos_found"`
	PDFsFound   int `json:"pdfs_found"`
	// Excluded counts media files dropped by the exclusion rules
	Excluded int `json:"excluded"`
}

// FileInfo is the snapshot of a media file taken at scan time.
// It may be stale by the time the file is copied.
type FileInfo struct {
	// Path is the full path on the filesystem
	Path string

	// Name is the final path element
	Name string

	// Size in bytes
	Size int64

	// Modified is the last modification time
	Modified time.Time

	// Created is the platform creation (or change) time
	Created time.Time

	IsPhoto bool
	IsVideo bool
	IsPDF   bool

	// Err is set when the file could not be stat'd; such entries carry no
	// size or timestamps and take no part in stats or copying
	Err error
}

// Valid reports whether the snapshot was captured without error
func (f *FileInfo) Valid() bool {
	return f.Err == nil
}

// Type returns the media type recorded in the classification flags
func (f *FileInfo) Type() MediaType {
	switch {
	case f.IsPhoto:
		return MediaPhoto
	case f.IsVideo:
		return MediaVideo
	case f.IsPDF:
		return MediaPDF
	default:
		return MediaNone
	}
}

// ScanSummary aggregates the active result set of a scan
type ScanSummary struct {
	TotalFiles     int     `json:"total_files"`
	Photos         int     `json:"photos"`
	Videos         int     `json:"videos"`
	PDFs           int     `json:"pdfs"`
	TotalSizeBytes int64   `json:"total_size_bytes"`
	TotalSizeGB    float64 `json:"total_size_gb"`
	ExcludedCount  int     `json:"excluded_count"`
}
