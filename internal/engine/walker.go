package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bamsammich/repoprep/internal/event"
	"github.com/bamsammich/repoprep/internal/rules"
	"github.com/bamsammich/repoprep/internal/stats"
)

const dirPerm = 0o755

// operation holds the state of one copy. It is confined to the goroutine
// running the walk; only stats is shared.
type operation struct {
	set         *rules.Set
	emitFn      event.Func
	stats       *stats.Collector
	tmp         *tmpRegistry
	limiter     *rate.Limiter
	rootEntries []os.DirEntry
	copiedPaths []string // rel paths, kept only when verifying

	srcArg, dstArg   string
	srcRoot, dstRoot string

	progressEvery int64
	verify        bool
	dstNotEmpty   bool
}

func newOperation(req Request, fn event.Func) *operation {
	set := req.Rules
	if set == nil {
		set = rules.Default()
	}
	every := int64(req.ProgressEvery)
	if every <= 0 {
		every = DefaultProgressEvery
	}
	op := &operation{
		set:           set,
		emitFn:        fn,
		stats:         stats.NewCollector(),
		tmp:           &tmpRegistry{},
		srcArg:        req.Src,
		dstArg:        req.Dst,
		progressEvery: every,
		verify:        req.Verify,
	}
	if req.BWLimit > 0 {
		op.limiter = newBandwidthLimiter(req.BWLimit)
	}
	return op
}

func (op *operation) emit(e event.Event) {
	if op.emitFn == nil {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	op.emitFn(e)
}

// prepare runs every precondition. Nothing is written unless all the logic
// checks pass and the source root is listable.
func (op *operation) prepare() error {
	src, err := resolveSource(op.srcArg)
	if err != nil {
		return err
	}

	if strings.TrimSpace(op.dstArg) == "" {
		return &fatalError{kind: DestinationUnwritable, err: fmt.Errorf("%w: empty path", ErrDestinationUnwritable)}
	}
	dst, err := resolvePath(op.dstArg)
	if err != nil {
		return &fatalError{kind: DestinationUnwritable, err: fmt.Errorf("%w %s: %w", ErrDestinationUnwritable, op.dstArg, err)}
	}

	if src == dst {
		return &fatalError{kind: SameDirectory, err: fmt.Errorf("%w: %s", ErrSameDirectory, src)}
	}
	if isWithin(src, dst) {
		return &fatalError{
			kind: DestinationInsideSource,
			err:  fmt.Errorf("%w: %s is under %s", ErrDestinationInsideSource, dst, src),
		}
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return &fatalError{kind: SourceUnreadable, err: fmt.Errorf("%w %s: %w", ErrSourceUnreadable, src, err)}
	}

	if existing, err := os.ReadDir(dst); err == nil && len(existing) > 0 {
		op.dstNotEmpty = true
	}
	if err := os.MkdirAll(dst, dirPerm); err != nil {
		return &fatalError{kind: DestinationUnwritable, err: fmt.Errorf("%w %s: %w", ErrDestinationUnwritable, dst, err)}
	}

	op.srcRoot = src
	op.dstRoot = dst
	op.rootEntries = entries

	op.emit(event.Event{
		Type:    event.OperationStarted,
		Level:   event.LevelInfo,
		Path:    src,
		Message: fmt.Sprintf("Copying %s to %s", src, dst),
	})
	if op.dstNotEmpty {
		op.emit(event.Event{
			Type:    event.DestinationNotEmpty,
			Level:   event.LevelWarn,
			Path:    dst,
			Message: fmt.Sprintf("Destination %s is not empty; existing files with the same name will be replaced", dst),
		})
	}
	return nil
}

// resolveSource returns the absolute, symlink-free path of an existing
// directory.
func resolveSource(p string) (string, error) {
	invalid := func(err error) error {
		return &fatalError{kind: SourceInvalid, err: fmt.Errorf("%w: %s: %w", ErrSourceInvalid, p, err)}
	}
	if strings.TrimSpace(p) == "" {
		return "", &fatalError{kind: SourceInvalid, err: fmt.Errorf("%w: empty path", ErrSourceInvalid)}
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", invalid(err)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", invalid(err)
	}
	info, err := os.Stat(real)
	if err != nil {
		return "", invalid(err)
	}
	if !info.IsDir() {
		return "", &fatalError{kind: SourceInvalid, err: fmt.Errorf("%w: %s is not a directory", ErrSourceInvalid, p)}
	}
	return real, nil
}

// resolvePath resolves symlinks in the longest existing prefix of p and
// appends the missing remainder unchanged.
func resolvePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	cur := abs
	var rest []string
	for {
		real, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(append([]string{real}, rest...)...), nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return abs, nil
		}
		rest = append([]string{filepath.Base(cur)}, rest...)
		cur = parent
	}
}

// isWithin reports whether child lies strictly below parent.
func isWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil || filepath.IsAbs(rel) {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (op *operation) walkRoot(ctx context.Context) error {
	return op.walkDir(ctx, op.srcRoot, op.dstRoot, "", op.rootEntries)
}

// walkDir visits entries depth first, in ReadDir order.
func (op *operation) walkDir(ctx context.Context, srcDir, dstDir, relDir string, entries []os.DirEntry) error {
	for _, de := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := de.Name()
		rel := path.Join(relDir, name)
		srcPath := filepath.Join(srcDir, name)
		dstPath := filepath.Join(dstDir, name)

		out := op.handle(ctx, srcPath, dstPath, rules.Entry{
			Name:    name,
			RelPath: rel,
			Kind:    kindOf(de.Type()),
		})

		switch out.kind {
		case outcomeDir:
			op.stats.AddDirsCreated(1)
			if err := op.walkDir(ctx, srcPath, dstPath, rel, out.children); err != nil {
				return err
			}
		case outcomeCopied:
			op.fileCopied(rel, out.bytes)
		case outcomeSkipped:
			if out.skip == skipFailed && isCancel(out.err) {
				return out.err
			}
			op.skipped(rel, kindOf(de.Type()), out)
		}
	}
	return nil
}

func (op *operation) handle(ctx context.Context, srcPath, dstPath string, e rules.Entry) outcome {
	if r := op.set.Reason(e); r != rules.ReasonNone {
		return excluded(r)
	}

	switch e.Kind {
	case rules.Dir:
		// Read first so an unreadable directory leaves nothing behind.
		children, err := os.ReadDir(srcPath)
		if err != nil {
			return failed(err)
		}
		if err := os.MkdirAll(dstPath, dirPerm); err != nil {
			return failed(err)
		}
		return descend(children)
	case rules.File:
		n, err := op.copyFile(ctx, srcPath, dstPath)
		if err != nil {
			return failed(err)
		}
		return copied(n)
	default:
		return excluded(rules.ReasonSpecial)
	}
}

func (op *operation) fileCopied(rel string, n int64) {
	op.stats.AddFilesCopied(1)
	op.stats.AddBytesCopied(n)
	if op.verify {
		op.copiedPaths = append(op.copiedPaths, rel)
	}

	count := op.stats.FilesCopied()
	if count%op.progressEvery == 0 {
		op.emit(event.Event{
			Type:    event.Progress,
			Level:   event.LevelInfo,
			Path:    rel,
			Count:   count,
			Message: fmt.Sprintf("Copied %d files...", count),
		})
	}
}

func (op *operation) skipped(rel string, kind rules.Kind, out outcome) {
	op.stats.AddItemsSkipped(1)

	if out.skip == skipFailed {
		op.stats.AddEntriesFailed(1)
		op.emit(event.Event{
			Type:    event.EntryFailed,
			Level:   event.LevelWarn,
			Path:    rel,
			Err:     out.err,
			Message: fmt.Sprintf("Failed: %s: %v", rel, out.err),
		})
		return
	}

	switch kind {
	case rules.Dir:
		op.stats.AddDirsExcluded(1)
	case rules.Symlink:
		op.stats.AddSymlinksSkipped(1)
	default:
		op.stats.AddFilesExcluded(1)
	}
	op.emit(event.Event{
		Type:    event.EntrySkipped,
		Level:   event.LevelSkip,
		Path:    rel,
		Message: fmt.Sprintf("Skipped: %s (%s)", rel, out.rule),
	})
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
