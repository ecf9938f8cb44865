//go:build windows

package fs

import (
	"os"
	"syscall"
	"time"
)

// changeTime returns the creation time of path.
func changeTime(_ string, info os.FileInfo) time.Time {
	if d, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, d.CreationTime.Nanoseconds())
	}
	return info.ModTime()
}
