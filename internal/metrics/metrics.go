// Package metrics computes derived values from deskpad snapshots.
// Nothing here is stored; every value is recomputed from the records.
package metrics

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/deskpad/internal/model"
)

// ErrNotNumeric is returned by ParseAmount for input that is not a finite number.
var ErrNotNumeric = errors.New("not a finite number")

// CompletionPercent returns round(100*done/len(goals)), or 0 with no goals.
// Halves round up, matching the rounding the stored percentages were
// produced with.
func CompletionPercent(goals []model.Goal) int {
	total := len(goals)
	if total == 0 {
		return 0
	}
	done := 0
	for _, g := range goals {
		if g.Done {
			done++
		}
	}
	return (200*done + total) / (2 * total)
}

// ParseAmount parses an expense amount with the same rules as the
// browser's Number() coercion. Surrounding whitespace is ignored. Unsigned
// 0x, 0o and 0b integers are accepted. Hex floats, signed prefixed forms,
// NaN and infinities are rejected.
func ParseAmount(s string) (float64, error) {
	t := strings.TrimSpace(s)
	if v, ok, err := parsePrefixed(t); ok {
		if err != nil {
			return 0, fmt.Errorf("amount %q: %w", s, ErrNotNumeric)
		}
		return v, nil
	}
	if body := strings.TrimLeft(t, "+-"); len(body) > 1 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		return 0, fmt.Errorf("amount %q: %w", s, ErrNotNumeric)
	}

	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", s, ErrNotNumeric)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("amount %q: %w", s, ErrNotNumeric)
	}
	return v, nil
}

// parsePrefixed handles 0x/0o/0b integer literals. ok reports whether t
// carried such a prefix at all.
func parsePrefixed(t string) (v float64, ok bool, err error) {
	if len(t) < 2 || t[0] != '0' {
		return 0, false, nil
	}
	var base int
	switch t[1] {
	case 'x', 'X':
		base = 16
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	default:
		return 0, false, nil
	}
	n, err := strconv.ParseUint(t[2:], base, 64)
	if err != nil {
		return 0, true, err
	}
	return float64(n), true, nil
}

// TotalExpense sums the parsed amounts. A blank amount counts as zero.
// Any other unparsable amount makes the whole total NaN; the store rejects
// such amounts on entry and import, so this only shows up for hand-edited
// storage.
func TotalExpense(expenses []model.Expense) float64 {
	var total float64
	for _, e := range expenses {
		if strings.TrimSpace(e.Amount) == "" {
			continue
		}
		v, err := ParseAmount(e.Amount)
		if err != nil {
			return math.NaN()
		}
		total += v
	}
	return total
}

// HabitStats reports how many habits are done and the rounded percentage.
func HabitStats(habits []model.Habit) (done, total, percent int) {
	total = len(habits)
	for _, h := range habits {
		if h.Done {
			done++
		}
	}
	if total > 0 {
		percent = (200*done + total) / (2 * total)
	}
	return done, total, percent
}

// OverallCompletion is the rounded mean of every subject's completion
// percentage. Subjects without goals count as 0.
func OverallCompletion(subjects []model.Subject) int {
	if len(subjects) == 0 {
		return 0
	}
	sum := 0
	for _, s := range subjects {
		sum += CompletionPercent(s.Goals)
	}
	n := len(subjects)
	return (2*sum + n) / (2 * n)
}
