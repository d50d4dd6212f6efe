package engine

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// HashFile returns the hex-encoded BLAKE3 digest of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := blake3.New()
	buf := make([]byte, 32*1024)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// sameContent hashes both files and reports whether the digests match.
// The digests are returned for reporting.
func sameContent(srcPath, dstPath string) (ok bool, srcSum, dstSum string, err error) {
	if srcSum, err = HashFile(srcPath); err != nil {
		return false, "", "", err
	}
	if dstSum, err = HashFile(dstPath); err != nil {
		return false, srcSum, "", err
	}
	return srcSum == dstSum, srcSum, dstSum, nil
}
