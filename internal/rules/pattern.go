package rules

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidPattern is returned for patterns that are not valid globs.
var ErrInvalidPattern = errors.New("invalid pattern")

// compiledPattern is a gitignore-style glob.
type compiledPattern struct {
	glob     string
	original string
	anchored bool // matched against the whole relative path
	dirOnly  bool // pattern ends with /
}

// compilePattern parses a gitignore-style pattern.
//
//   - trailing "/" restricts the pattern to directories
//   - a leading "/" or any inner "/" anchors it to the copy root
//   - otherwise it is matched against the basename at any depth
func compilePattern(pattern string) (*compiledPattern, error) {
	cp := &compiledPattern{original: pattern}

	if strings.HasSuffix(pattern, "/") {
		cp.dirOnly = true
		pattern = strings.TrimRight(pattern, "/")
	}

	if strings.HasPrefix(pattern, "/") {
		cp.anchored = true
		pattern = strings.TrimLeft(pattern, "/")
	} else if strings.Contains(pattern, "/") {
		cp.anchored = true
	}

	if pattern == "" || !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, cp.original)
	}
	cp.glob = pattern
	return cp, nil
}

// match tests a slash-separated relative path.
func (cp *compiledPattern) match(relPath string, isDir bool) bool {
	if cp.dirOnly && !isDir {
		return false
	}
	subject := relPath
	if !cp.anchored {
		subject = path.Base(relPath)
	}
	ok, err := doublestar.Match(cp.glob, subject)
	return err == nil && ok
}
