// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	head := len(s) % 3
	if head > 0 {
		result.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatAmount renders a money total with the configured currency symbol.
// Whole amounts print without decimals; NaN prints as "NaN" so a poisoned
// total stays visible instead of silently reading as zero.
func FormatAmount(v float64, currency string) string {
	prefix := ""
	if currency != "" {
		prefix = currency + " "
	}
	switch {
	case math.IsNaN(v):
		return prefix + "NaN"
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return prefix + FormatNumber(int64(v))
	default:
		return prefix + strconv.FormatFloat(v, 'f', 2, 64)
	}
}

// FormatPercent formats an integer percentage.
func FormatPercent(p int) string {
	return fmt.Sprintf("%d%%", p)
}

// FormatCheck returns a check mark for done items and a dot otherwise.
func FormatCheck(done bool) string {
	if done {
		return "✓"
	}
	return "·"
}

// FormatIndex renders a 0-based index the way users type it (1-based).
func FormatIndex(i int) string {
	return strconv.Itoa(i + 1)
}

// ParseIndex converts a 1-based index typed by the user into a 0-based one.
func ParseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("index %q is not a number", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("index %d must be 1 or greater", n)
	}
	return n - 1, nil
}
