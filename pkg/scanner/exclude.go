package scanner

import (
	"io/fs"
	"os"
	"strings"

	"github.com/sdejongh/photopuller/internal/platform"
)

// minFileSize is the size below which a file is treated as a thumbnail or icon
const minFileSize = 1024

// excludedNames are matched as substrings of every path segment
var excludedNames = []string{
	"windows", "program files", "program files (x86)", "programdata",
	"appdata", "temp", "tmp", "$recycle.bin", "system volume information",
	"pagefile.sys", "hiberfil.sys", "swapfile.sys", "recovery",
	"perflogs", "msocache", "intel", "amd", "nvidia",
	"internet explorer", "microsoft edge", "chrome", "firefox",
	"opera", "safari", "cache", "cookies", "history",
	"temporary internet files", "content.ie5", "local settings",
	"application data", "roaming", "local", "node_modules",
}

// thumbnailCaches are Windows thumbnail database names
var thumbnailCaches = []string{"thumbs.db", "ehthumbs.db"}

// ShouldExclude checks if path belongs to a system, program or cache
// location, is hidden, is a thumbnail cache, or is a file under 1 KiB.
// Every segment of path is considered. A size that cannot be determined
// never excludes.
func ShouldExclude(path string) bool {
	if excludedByName(path) {
		return true
	}
	return tooSmall(func() (fs.FileInfo, error) { return os.Stat(path) })
}

// excludedByName applies the segment and filename rules
func excludedByName(path string) bool {
	for _, segment := range platform.Segments(path) {
		folded := platform.Fold(segment)
		for _, name := range excludedNames {
			if strings.Contains(folded, name) {
				return true
			}
		}

		// Exclude hidden/system directories and files
		if strings.HasPrefix(segment, ".") && segment != "." {
			return true
		}
	}

	// Thumbnail caches match anywhere in the path, folders included
	folded := platform.Fold(path)
	for _, name := range thumbnailCaches {
		if strings.Contains(folded, name) {
			return true
		}
	}

	return false
}

// tooSmall applies the size rule to regular files only
func tooSmall(stat func() (fs.FileInfo, error)) bool {
	info, err := stat()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() < minFileSize
}
