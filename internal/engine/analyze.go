package engine

import (
	"cmp"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/bamsammich/repoprep/internal/rules"
)

const maxLargestExcluded = 10

// DirSize is the measured footprint of one excluded directory.
type DirSize struct {
	RelPath string
	Files   int64
	Bytes   int64
}

// Estimate describes what a copy of a tree would keep and leave behind.
// Totals include the contents of excluded directories.
type Estimate struct {
	LargestExcluded []DirSize // by Bytes, descending
	TotalFiles      int64
	TotalDirs       int64
	TotalBytes      int64
	IncludedFiles   int64
	IncludedDirs    int64
	IncludedBytes   int64
	ExcludedItems   int64 // entries the copy would skip at the top of a pruned subtree
	ExcludedBytes   int64 // the space a copy saves
	Unreadable      int64 // directories that could not be listed
}

// Analyze walks src with the same rules a copy would use, without writing
// anything.
func Analyze(ctx context.Context, src string, set *rules.Set) (Estimate, error) {
	if set == nil {
		set = rules.Default()
	}
	root, err := resolveSource(src)
	if err != nil {
		return Estimate{}, err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return Estimate{}, &fatalError{kind: SourceUnreadable, err: fmt.Errorf("%w %s: %w", ErrSourceUnreadable, root, err)}
	}

	a := &analyzer{set: set}
	if err := a.walk(ctx, root, "", entries); err != nil {
		return a.est, err
	}

	slices.SortStableFunc(a.est.LargestExcluded, func(x, y DirSize) int {
		return cmp.Compare(y.Bytes, x.Bytes)
	})
	if len(a.est.LargestExcluded) > maxLargestExcluded {
		a.est.LargestExcluded = a.est.LargestExcluded[:maxLargestExcluded]
	}
	return a.est, nil
}

type analyzer struct {
	set *rules.Set
	est Estimate
}

func (a *analyzer) walk(ctx context.Context, dir, relDir string, entries []os.DirEntry) error {
	for _, de := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := de.Name()
		rel := path.Join(relDir, name)
		full := filepath.Join(dir, name)
		kind := kindOf(de.Type())

		var size int64
		if kind == rules.File {
			if info, err := de.Info(); err == nil {
				size = info.Size()
			}
		}

		skip := a.set.Excluded(rules.Entry{Name: name, RelPath: rel, Kind: kind, Size: size})
		if skip {
			a.est.ExcludedItems++
		}

		switch kind {
		case rules.Dir:
			a.est.TotalDirs++
			if skip {
				files, dirs, bytes := measure(ctx, full)
				a.est.TotalFiles += files
				a.est.TotalDirs += dirs
				a.est.TotalBytes += bytes
				a.est.ExcludedBytes += bytes
				a.est.LargestExcluded = append(a.est.LargestExcluded, DirSize{RelPath: rel, Files: files, Bytes: bytes})
				continue
			}
			a.est.IncludedDirs++
			children, err := os.ReadDir(full)
			if err != nil {
				a.est.Unreadable++
				continue
			}
			if err := a.walk(ctx, full, rel, children); err != nil {
				return err
			}
		case rules.File:
			a.est.TotalFiles++
			a.est.TotalBytes += size
			if skip {
				a.est.ExcludedBytes += size
			} else {
				a.est.IncludedFiles++
				a.est.IncludedBytes += size
			}
		}
	}
	return nil
}

// measure sums regular files and directories below dir. Unreadable parts
// are left out.
func measure(ctx context.Context, dir string) (files, dirs, bytes int64) {
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // best effort
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if p == dir {
			return nil
		}
		switch {
		case d.IsDir():
			dirs++
		case d.Type().IsRegular():
			files++
			if info, err := d.Info(); err == nil {
				bytes += info.Size()
			}
		}
		return nil
	})
	return files, dirs, bytes
}
