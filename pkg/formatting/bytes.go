package formatting

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

var units = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// ParseBytes parses a human-readable byte size string (e.g., "50MB") into a
// byte count using base-1024 units. A bare number is treated as bytes and
// unit matching is case-insensitive.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	cut := len(s)
	for cut > 0 && !isDigit(s[cut-1]) && s[cut-1] != '.' {
		cut--
	}

	number := strings.TrimSpace(s[:cut])
	unit := strings.ToUpper(strings.TrimSpace(s[cut:]))

	value, err := strconv.ParseFloat(number, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	if unit == "" {
		return int64(value), nil
	}

	idx := slices.Index(units, unit)
	if idx == -1 {
		return 0, fmt.Errorf("unknown byte size unit: %q", unit)
	}

	return int64(value * math.Pow(1024, float64(idx))), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
