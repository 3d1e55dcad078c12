package formatting

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

var units = []string{"B", "KB", "MB", "GB", "TB"}

// ParseBytes parses a human-readable byte size string (e.g. "50MB") into a
// byte count using base-1024 units. A bare number is treated as bytes and
// unit matching is case-insensitive.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	idx := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})

	numPart := s
	unitPart := ""
	if idx >= 0 {
		numPart = strings.TrimSpace(s[:idx])
		unitPart = strings.ToUpper(strings.TrimSpace(s[idx:]))
	}

	value, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	if unitPart == "" {
		return int64(value), nil
	}

	exp := slices.Index(units, unitPart)
	if exp == -1 {
		return 0, fmt.Errorf("unknown byte size unit: %q", unitPart)
	}

	return int64(value * math.Pow(1024, float64(exp))), nil
}

// FormatBytes renders a byte count as a human-readable string.
func FormatBytes(n int64) string {
	if n <= 0 {
		return "0 B"
	}

	f := float64(n)
	exp := int(math.Floor(math.Log(f) / math.Log(1024)))
	if exp >= len(units) {
		exp = len(units) - 1
	}

	return fmt.Sprintf("%.1f %s", f/math.Pow(1024, float64(exp)), units[exp])
}
