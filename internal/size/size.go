// Package size parses human-readable byte sizes such as "10K" or "1.5MB".
package size

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var multipliers = map[string]int64{
	"":  1,
	"B": 1,
	"K": 1 << 10,
	"M": 1 << 20,
	"G": 1 << 30,
	"T": 1 << 40,
}

// Parse parses a size string into bytes. Accepted suffixes are B, K, M, G
// and T (case-insensitive), optionally followed by "B" or "iB", all as
// powers of 1024: "100", "4K", "4KB", "4KiB" and "1.5G" are valid.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	upper := strings.ToUpper(s)
	end := len(upper)
	for end > 0 && !isDigit(upper[end-1]) && upper[end-1] != '.' {
		end--
	}
	numStr, suffix := upper[:end], upper[end:]
	suffix = strings.TrimSuffix(suffix, "IB")
	if len(suffix) == 2 && suffix[1] == 'B' {
		suffix = suffix[:1]
	}

	multiplier, ok := multipliers[suffix]
	if !ok || numStr == "" {
		return 0, fmt.Errorf("invalid size: %q", s)
	}

	if n, err := strconv.ParseInt(numStr, 10, 64); err == nil {
		if n > math.MaxInt64/multiplier || n < math.MinInt64/multiplier {
			return 0, fmt.Errorf("size out of range: %q", s)
		}
		return n * multiplier, nil
	}

	f, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size: %q", s)
	}
	// float64(MaxInt64) rounds up to 2^63, which is itself out of range.
	v := f * float64(multiplier)
	if math.IsNaN(v) || v >= math.MaxInt64 || v < math.MinInt64 {
		return 0, fmt.Errorf("size out of range: %q", s)
	}
	return int64(v), nil
}

// ParsePositive is Parse restricted to sizes greater than zero.
func ParsePositive(s string) (int64, error) {
	n, err := Parse(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("size must be positive: %q", s)
	}
	return n, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
