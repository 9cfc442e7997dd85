package utils

import (
	"strconv"
	"strings"
)

// ParseFloat converts a legacy amount string to a float64. Empty or
// unparseable input yields 0, matching how the old import scripts treated
// garbage amounts.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return value
}
