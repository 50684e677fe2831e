package services

import (
	"strconv"
	"strings"
)

// ParseSalary converts a client-supplied salary string into a whole amount.
// Formatting characters (currency signs, spaces, thousands
// separators) are stripped before parsing; fractional digits are truncated.
// Values that still do not parse, and negative values, degrade to zero rather
// than failing registration.
func ParseSalary(raw string) int64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
	if cleaned == "" {
		return 0
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f)
}
