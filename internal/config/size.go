package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseSize parses a human-readable size such as "512", "100K", "1.5M",
// "2MB" or "2MiB" into bytes. Units are powers of 1024, matching rsync.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	upper := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(upper, "IB"):
		upper = upper[:len(upper)-2]
	case strings.HasSuffix(upper, "B"):
		upper = upper[:len(upper)-1]
	}

	multiplier := int64(1)
	numStr := upper
	if upper != "" {
		if exp := strings.IndexByte("KMGT", upper[len(upper)-1]); exp >= 0 {
			multiplier = int64(1) << (10 * (exp + 1))
			numStr = upper[:len(upper)-1]
		}
	}
	if numStr == "" {
		return 0, fmt.Errorf("invalid size: %q", s)
	}

	if n, err := strconv.ParseInt(numStr, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative size: %q", s)
		}
		if n > math.MaxInt64/multiplier {
			return 0, fmt.Errorf("size out of range: %q", s)
		}
		return n * multiplier, nil
	}

	f, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size: %q", s)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative size: %q", s)
	}
	bytes := f * float64(multiplier)
	if math.IsNaN(bytes) || bytes >= math.MaxInt64 {
		return 0, fmt.Errorf("size out of range: %q", s)
	}
	return int64(bytes), nil
}
