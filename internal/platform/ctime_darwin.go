//go:build darwin

package platform

import (
	"io/fs"
	"syscall"
	"time"
)

// CreatedTime returns the file birth time
func CreatedTime(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Birthtimespec.Sec), int64(st.Birthtimespec.Nsec))
	}
	return info.ModTime()
}
