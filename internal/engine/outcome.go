package engine

import (
	"io/fs"
	"os"

	"github.com/bamsammich/repoprep/internal/rules"
)

type outcomeKind int

const (
	outcomeCopied outcomeKind = iota
	outcomeDir
	outcomeSkipped
)

// skipReason says why an entry was not reproduced.
type skipReason int

const (
	skipExcluded skipReason = iota // matched by the rule set
	skipFailed                     // errored while processing
)

// outcome is the result of handling one directory entry.
type outcome struct {
	err      error
	children []os.DirEntry // outcomeDir only
	bytes    int64         // outcomeCopied only
	kind     outcomeKind
	skip     skipReason
	rule     rules.Reason
}

func copied(n int64) outcome {
	return outcome{kind: outcomeCopied, bytes: n}
}

func descend(children []os.DirEntry) outcome {
	return outcome{kind: outcomeDir, children: children}
}

func excluded(r rules.Reason) outcome {
	return outcome{kind: outcomeSkipped, skip: skipExcluded, rule: r}
}

func failed(err error) outcome {
	return outcome{kind: outcomeSkipped, skip: skipFailed, err: err}
}

// kindOf maps a directory entry's type bits to a rules.Kind without
// following symlinks.
func kindOf(mode fs.FileMode) rules.Kind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return rules.Symlink
	case mode.IsDir():
		return rules.Dir
	case mode.IsRegular():
		return rules.File
	default:
		return rules.Other
	}
}
