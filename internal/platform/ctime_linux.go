//go:build linux

package platform

import (
	"io/fs"
	"syscall"
	"time"
)

// CreatedTime returns the inode change time, the closest Linux has to a creation time
func CreatedTime(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
	}
	return info.ModTime()
}
