package rules

import (
	"slices"
	"strings"
)

// Kind identifies the kind of filesystem entry being classified.
type Kind int

const (
	File Kind = iota
	Dir
	Symlink
	Other // devices, sockets, named pipes
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Dir:
		return "dir"
	case Symlink:
		return "symlink"
	case Other:
		return "other"
	default:
		return "unknown"
	}
}

// Entry is one filesystem node encountered during a walk.
type Entry struct {
	Name    string // basename
	RelPath string // slash-separated, relative to the copy root
	Kind    Kind
	Size    int64 // best effort; zero for directories
}

// Reason names the table that excluded an entry.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonDirName
	ReasonFileName
	ReasonSuffix
	ReasonPattern
	ReasonSymlink
	ReasonSpecial
)

var reasonNames = [...]string{
	ReasonNone:     "none",
	ReasonDirName:  "excluded directory",
	ReasonFileName: "excluded file",
	ReasonSuffix:   "excluded suffix",
	ReasonPattern:  "matched pattern",
	ReasonSymlink:  "symlink",
	ReasonSpecial:  "special file",
}

func (r Reason) String() string {
	if r >= 0 && int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// Set is an immutable exclusion policy. Any match in any table excludes;
// there are no include rules. A Set is safe for concurrent use.
type Set struct {
	dirNames  map[string]struct{}
	fileNames map[string]struct{}
	suffixes  []string
	patterns  []*compiledPattern
}

// Option extends a Set while it is being built.
type Option func(*Set) error

// WithDirNames adds directory basenames to exclude.
func WithDirNames(names ...string) Option {
	return func(s *Set) error {
		addNames(s.dirNames, names)
		return nil
	}
}

// WithFileNames adds exact file basenames to exclude.
func WithFileNames(names ...string) Option {
	return func(s *Set) error {
		addNames(s.fileNames, names)
		return nil
	}
}

// WithSuffixes adds filename suffixes to exclude. "log", ".log" and "*.log"
// are equivalent.
func WithSuffixes(suffixes ...string) Option {
	return func(s *Set) error {
		for _, suf := range suffixes {
			if suf = normalizeSuffix(suf); suf != "" && !slices.Contains(s.suffixes, suf) {
				s.suffixes = append(s.suffixes, suf)
			}
		}
		return nil
	}
}

// WithPatterns adds gitignore-style glob patterns to exclude.
func WithPatterns(patterns ...string) Option {
	return func(s *Set) error {
		for _, p := range patterns {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			cp, err := compilePattern(p)
			if err != nil {
				return err
			}
			s.patterns = append(s.patterns, cp)
		}
		return nil
	}
}

// New builds a Set from the built-in catalog extended by opts.
func New(opts ...Option) (*Set, error) {
	s := empty()
	addNames(s.dirNames, defaultDirNames)
	addNames(s.fileNames, defaultFileNames)
	if err := WithSuffixes(defaultSuffixes...)(s); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewEmpty builds a Set containing only what opts add.
func NewEmpty(opts ...Option) (*Set, error) {
	s := empty()
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Default returns the built-in catalog.
func Default() *Set {
	s, err := New()
	if err != nil {
		panic("rules: invalid built-in catalog: " + err.Error())
	}
	return s
}

func empty() *Set {
	return &Set{
		dirNames:  make(map[string]struct{}),
		fileNames: make(map[string]struct{}),
	}
}

// Excluded reports whether e should be left out of the copy.
func (s *Set) Excluded(e Entry) bool {
	return s.Reason(e) != ReasonNone
}

// Reason reports which rule excludes e, or ReasonNone.
// Hidden entries are treated like any other name.
func (s *Set) Reason(e Entry) Reason {
	switch e.Kind {
	case Symlink:
		return ReasonSymlink
	case Other:
		return ReasonSpecial
	case Dir:
		if _, ok := s.dirNames[e.Name]; ok {
			return ReasonDirName
		}
	case File:
		if _, ok := s.fileNames[e.Name]; ok {
			return ReasonFileName
		}
		for _, suf := range s.suffixes {
			if strings.HasSuffix(e.Name, suf) {
				return ReasonSuffix
			}
		}
	}

	rel := e.RelPath
	if rel == "" {
		rel = e.Name
	}
	for _, p := range s.patterns {
		if p.match(rel, e.Kind == Dir) {
			return ReasonPattern
		}
	}
	return ReasonNone
}

// Catalog is a sorted, printable copy of a Set's tables.
type Catalog struct {
	DirNames  []string
	FileNames []string
	Suffixes  []string
	Patterns  []string
}

// Catalog returns sorted copies of the tables. Patterns keep their order.
func (s *Set) Catalog() Catalog {
	c := Catalog{
		DirNames:  sortedKeys(s.dirNames),
		FileNames: sortedKeys(s.fileNames),
		Suffixes:  slices.Sorted(slices.Values(s.suffixes)),
	}
	for _, p := range s.patterns {
		c.Patterns = append(c.Patterns, p.original)
	}
	return c
}

func addNames(dst map[string]struct{}, names []string) {
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			dst[n] = struct{}{}
		}
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// normalizeSuffix turns "log", "*.log" and ".log" into ".log". Suffixes that
// start with punctuation, like "~", are kept verbatim.
func normalizeSuffix(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "*")
	if s == "" {
		return ""
	}
	c := s[0]
	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
		return "." + s
	}
	return s
}
