//go:build !linux && !darwin && !windows

package fs

import (
	"os"
	"time"
)

// changeTime falls back to the modification time where no change time is exposed.
func changeTime(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}
