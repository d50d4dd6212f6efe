package rules

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadGitignore reads exclusion patterns from a .gitignore-style file.
// Format:
//   - # comment  → skip
//   - blank line → skip
//   - !pattern   → skip (re-inclusion is not supported)
//   - pattern    → exclude
func LoadGitignore(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ignore file: %w", err)
	}
	defer f.Close()

	patterns, err := ParseGitignore(f)
	if err != nil {
		return nil, fmt.Errorf("ignore file %s: %w", path, err)
	}
	return patterns, nil
}

// ParseGitignore reads patterns from r and validates each one.
func ParseGitignore(r io.Reader) ([]string, error) {
	var patterns []string

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		// Escaped leading characters.
		if strings.HasPrefix(line, `\#`) || strings.HasPrefix(line, `\!`) {
			line = line[1:]
		}

		if _, err := compilePattern(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		patterns = append(patterns, line)
	}

	return patterns, scanner.Err()
}
