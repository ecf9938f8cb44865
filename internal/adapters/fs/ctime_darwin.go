//go:build darwin

package fs

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// changeTime returns the inode change time of path.
func changeTime(path string, info os.FileInfo) time.Time {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return info.ModTime()
	}
	return time.Unix(st.Ctimespec.Unix())
}
