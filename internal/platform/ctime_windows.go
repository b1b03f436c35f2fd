//go:build windows

package platform

import (
	"io/fs"
	"syscall"
	"time"
)

// CreatedTime returns the NTFS creation time
func CreatedTime(info fs.FileInfo) time.Time {
	if data, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, data.CreationTime.Nanoseconds())
	}
	return info.ModTime()
}
