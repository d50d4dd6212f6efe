//go:build linux

package platform

import (
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// Atime returns the access time recorded in info, or its mtime when the
// platform stat is unavailable.
func Atime(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Atim.Sec, st.Atim.Nsec)
	}
	return info.ModTime()
}

// SetTimes sets atime and mtime on an open file.
//
//nolint:gosec // G115: fd values are small non-negative integers
func SetTimes(f *os.File, atime, mtime time.Time) error {
	times := []unix.Timespec{
		unix.NsecToTimespec(atime.UnixNano()),
		unix.NsecToTimespec(mtime.UnixNano()),
	}
	if err := unix.UtimesNanoAt(int(f.Fd()), "", times, unix.AT_EMPTY_PATH); err != nil {
		// Some kernels reject AT_EMPTY_PATH; fall back to the path.
		if err2 := unix.UtimesNanoAt(unix.AT_FDCWD, f.Name(), times, 0); err2 != nil {
			return fmt.Errorf("utimensat: %w", err)
		}
	}
	return nil
}
