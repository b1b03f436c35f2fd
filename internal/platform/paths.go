package platform

import (
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/text/cases"
)

// unknownSource names the source folder when a path has no usable top-level segment
const unknownSource = "Unknown"

var folder = cases.Fold()

// IsUNCPath checks if a path is a UNC path (Windows network share)
func IsUNCPath(path string) bool {
	if runtime.GOOS != "windows" {
		return false
	}
	return strings.HasPrefix(path, "\\\\") || strings.HasPrefix(path, "//")
}

// ParseUNCPath parses a UNC path into host and share components
// Returns empty strings if not a UNC path
func ParseUNCPath(path string) (host, share, relPath string) {
	if !IsUNCPath(path) {
		return "", "", ""
	}

	trimmed := strings.TrimPrefix(path, "\\\\")
	trimmed = strings.TrimPrefix(trimmed, "//")

	parts := strings.SplitN(filepath.ToSlash(trimmed), "/", 3)

	if len(parts) >= 1 {
		host = parts[0]
	}
	if len(parts) >= 2 {
		share = parts[1]
	}
	if len(parts) >= 3 {
		relPath = parts[2]
	}

	return host, share, relPath
}

// Segments splits a path into its non-empty components.
// The volume name, if any, is returned as the first component.
func Segments(path string) []string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// Fold returns the case-folded form of s, used for all case-insensitive matching
func Fold(s string) string {
	return folder.String(s)
}

// HasFoldedPrefix reports whether s begins with prefix, ignoring case.
// It is a raw string test: "C:\Win" is a prefix of "C:\Windows2\a.jpg".
func HasFoldedPrefix(s, prefix string) bool {
	return strings.HasPrefix(Fold(s), Fold(prefix))
}

// SourceName returns the top-level source component of path with drive
// punctuation stripped: the drive letter for "D:\...", host and share
// joined for UNC paths ("\\nas\photos" gives "nasphotos"), otherwise the
// first path segment.
func SourceName(path string) string {
	if host, share, _ := ParseUNCPath(path); host != "" {
		if name := stripDrivePunctuation(host + share); name != "" {
			return name
		}
	}

	if vol := filepath.VolumeName(path); vol != "" {
		if name := stripDrivePunctuation(vol); name != "" {
			return name
		}
	}

	for _, segment := range Segments(path) {
		if name := stripDrivePunctuation(segment); name != "" {
			return name
		}
	}

	return unknownSource
}

func stripDrivePunctuation(s string) string {
	return strings.NewReplacer(":", "", "\\", "", "/", "").Replace(s)
}

// ValidatePath checks if a path is valid for the current platform
func ValidatePath(path string) error {
	if path == "" {
		return &PathError{Path: path, Message: "path is empty"}
	}

	if runtime.GOOS == "windows" {
		// The drive colon is legal, every other reserved character is not
		rest := strings.TrimPrefix(path, filepath.VolumeName(path))
		for _, char := range []string{"<", ">", ":", "\"", "|", "?", "*"} {
			if strings.Contains(rest, char) {
				return &PathError{Path: path, Message: "path contains invalid character: " + char}
			}
		}
	}

	return nil
}

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}
