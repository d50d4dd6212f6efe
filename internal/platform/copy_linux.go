//go:build linux

package platform

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// CopyFile copies all of src into dst, starting at both files' current
// offsets. It tries copy_file_range, then sendfile, then read/write, falling
// through only when a method is unsupported and nothing has been written yet.
func CopyFile(dst, src *os.File, size int64) (CopyResult, error) {
	preallocate(dst, size)

	result, err := copyFileRange(dst, src, size)
	if err == nil || !isFallbackErr(err) || result.BytesWritten > 0 {
		return result, err
	}

	result, err = copySendfile(dst, src, size)
	if err == nil || !isFallbackErr(err) || result.BytesWritten > 0 {
		return result, err
	}

	return copyReadWrite(dst, src)
}

//nolint:gosec // G115: fd values are small non-negative integers
func copyFileRange(dst, src *os.File, size int64) (CopyResult, error) {
	remaining := size
	var total int64
	for remaining > 0 {
		n, err := unix.CopyFileRange(int(src.Fd()), nil, int(dst.Fd()), nil, int(remaining), 0)
		if err != nil {
			return CopyResult{BytesWritten: total, Method: CopyFileRange}, err
		}
		if n == 0 {
			break
		}
		remaining -= int64(n)
		total += int64(n)
	}
	return CopyResult{BytesWritten: total, Method: CopyFileRange}, nil
}

//nolint:gosec // G115: fd values are small non-negative integers
func copySendfile(dst, src *os.File, size int64) (CopyResult, error) {
	remaining := size
	var total int64
	for remaining > 0 {
		n, err := unix.Sendfile(int(dst.Fd()), int(src.Fd()), nil, int(remaining))
		if err != nil {
			return CopyResult{BytesWritten: total, Method: Sendfile}, err
		}
		if n == 0 {
			break
		}
		remaining -= int64(n)
		total += int64(n)
	}
	return CopyResult{BytesWritten: total, Method: Sendfile}, nil
}

// isFallbackErr returns true if err should trigger a fallback to the next copy strategy.
func isFallbackErr(err error) bool {
	return errors.Is(err, unix.ENOSYS) ||
		errors.Is(err, unix.EXDEV) ||
		errors.Is(err, unix.EINVAL) ||
		errors.Is(err, unix.ENOTSUP) ||
		errors.Is(err, unix.EOPNOTSUPP)
}
