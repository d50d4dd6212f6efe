//go:build !linux

package platform

import "os"

// CopyFile copies all of src into dst with a pooled read/write loop.
func CopyFile(dst, src *os.File, size int64) (CopyResult, error) {
	preallocate(dst, size)
	return copyReadWrite(dst, src)
}
