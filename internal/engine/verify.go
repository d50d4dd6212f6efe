package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bamsammich/repoprep/internal/event"
)

// verifyCopied re-hashes every file copied by this operation on both sides.
// Mismatches are reported and counted but do not fail the operation. It
// returns only a context error.
func (op *operation) verifyCopied(ctx context.Context) error {
	op.emit(event.Event{
		Type:    event.VerifyStarted,
		Level:   event.LevelInfo,
		Count:   int64(len(op.copiedPaths)),
		Message: fmt.Sprintf("Verifying %d files...", len(op.copiedPaths)),
	})

	var mismatches int64
	for _, rel := range op.copiedPaths {
		if err := ctx.Err(); err != nil {
			return err
		}

		local := filepath.FromSlash(rel)
		ok, srcSum, dstSum, err := sameContent(
			filepath.Join(op.srcRoot, local),
			filepath.Join(op.dstRoot, local),
		)
		switch {
		case err != nil:
			mismatches++
			op.stats.AddFilesVerifyFailed(1)
			op.emit(event.Event{
				Type:    event.VerifyFailed,
				Level:   event.LevelError,
				Path:    rel,
				Err:     err,
				Message: fmt.Sprintf("Verify failed: %s: %v", rel, err),
			})
		case !ok:
			mismatches++
			op.stats.AddFilesVerifyFailed(1)
			op.emit(event.Event{
				Type:    event.VerifyFailed,
				Level:   event.LevelError,
				Path:    rel,
				Message: fmt.Sprintf("Verify failed: %s: checksum mismatch (src %.12s, dst %.12s)", rel, srcSum, dstSum),
			})
		default:
			op.stats.AddFilesVerified(1)
		}
	}

	op.emit(event.Event{
		Type:    event.VerifyComplete,
		Level:   event.LevelInfo,
		Count:   op.stats.Snapshot().FilesVerified,
		Message: fmt.Sprintf("Verified %d files, %d mismatches", int64(len(op.copiedPaths))-mismatches, mismatches),
	})
	return nil
}
