//go:build !linux && !darwin

package platform

import (
	"io/fs"
	"os"
	"time"
)

// Atime falls back to mtime where access times are not exposed.
func Atime(info fs.FileInfo) time.Time {
	return info.ModTime()
}

// SetTimes sets atime and mtime by path.
func SetTimes(f *os.File, atime, mtime time.Time) error {
	return os.Chtimes(f.Name(), atime, mtime)
}
