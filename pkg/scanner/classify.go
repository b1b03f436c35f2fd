package scanner

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/sdejongh/photopuller/pkg/models"
)

var photoExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".heic": true, ".heif": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".avi": true, ".mov": true, ".wmv": true, ".flv": true,
	".mkv": true, ".webm": true, ".m4v": true, ".mpg": true, ".mpeg": true,
	".3gp": true, ".3g2": true, ".asf": true, ".rm": true, ".rmvb": true,
	".vob": true, ".ts": true, ".mts": true, ".m2ts": true,
}

var pdfExtensions = map[string]bool{
	".pdf": true,
}

// Classify returns the media type of path based solely on its extension
func Classify(path string) models.MediaType {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case photoExtensions[ext]:
		return models.MediaPhoto
	case videoExtensions[ext]:
		return models.MediaVideo
	case pdfExtensions[ext]:
		return models.MediaPDF
	default:
		return models.MediaNone
	}
}

// IsPhoto reports whether path has a photo extension
func IsPhoto(path string) bool { return Classify(path) == models.MediaPhoto }

// IsVideo reports whether path has a video extension
func IsVideo(path string) bool { return Classify(path) == models.MediaVideo }

// IsPDF reports whether path has a PDF extension
func IsPDF(path string) bool { return Classify(path) == models.MediaPDF }

// IsMedia reports whether path is a photo, video or PDF
func IsMedia(path string) bool { return Classify(path) != models.MediaNone }

// Extensions lists the recognized extensions of t in sorted order
func Extensions(t models.MediaType) []string {
	var set map[string]bool
	switch t {
	case models.MediaPhoto:
		set = photoExtensions
	case models.MediaVideo:
		set = videoExtensions
	case models.MediaPDF:
		set = pdfExtensions
	}

	exts := make([]string, 0, len(set))
	for ext := range set {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
