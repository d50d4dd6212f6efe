package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bamsammich/repoprep/internal/platform"
)

const tmpSuffix = ".repoprep-tmp"

// tmpName returns the hidden sibling a file is written to before rename.
func tmpName(base string) string {
	return fmt.Sprintf(".%s.%s%s", base, uuid.New().String()[:8], tmpSuffix)
}

// copyFile copies one regular file through a temporary sibling and renames
// it into place, so dstPath is either absent or complete. Permission bits,
// access time and modification time follow the source.
func (op *operation) copyFile(ctx context.Context, srcPath, dstPath string) (int64, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", srcPath, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", srcPath, err)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%s: not a regular file", srcPath)
	}

	dir := filepath.Dir(dstPath)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return 0, fmt.Errorf("create parent dir %s: %w", dir, err)
	}

	tmpPath := filepath.Join(dir, tmpName(filepath.Base(dstPath)))
	op.tmp.register(tmpPath)
	defer func() {
		op.tmp.deregister(tmpPath)
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return 0, fmt.Errorf("create tmp %s: %w", tmpPath, err)
	}

	n, err := op.copyData(ctx, tmp, src, info.Size())
	if err != nil {
		tmp.Close()
		return n, fmt.Errorf("copy data %s: %w", srcPath, err)
	}

	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		return n, fmt.Errorf("chmod %s: %w", dstPath, err)
	}
	if err := platform.SetTimes(tmp, platform.Atime(info), info.ModTime()); err != nil {
		tmp.Close()
		return n, fmt.Errorf("set times %s: %w", dstPath, err)
	}

	if err := tmp.Close(); err != nil {
		return n, fmt.Errorf("close tmp %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, dstPath); err != nil {
		return n, fmt.Errorf("rename %s -> %s: %w", tmpPath, dstPath, err)
	}
	return n, nil
}

func (op *operation) copyData(ctx context.Context, dst, src *os.File, size int64) (int64, error) {
	if op.limiter != nil {
		res, err := platform.CopyStream(dst, newLimitedReader(ctx, src, op.limiter))
		return res.BytesWritten, err
	}
	res, err := platform.CopyFile(dst, src, size)
	return res.BytesWritten, err
}
