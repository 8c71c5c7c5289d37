package core

import (
	"sort"
	"strings"
	"time"
)

// Filter selects transactions by optional predicates. Zero-value fields
// match everything, so an empty Filter returns the full list.
type Filter struct {
	Type     TransactionType // empty matches both types
	Category string          // exact match, case-insensitive

	MinAmount, MaxAmount *float64 // inclusive; swapped when min > max

	Start, End *Timestamp // inclusive, full timestamp comparison

	Keyword string // substring of description, case-insensitive
}

// Apply returns the transactions matching every set predicate. The
// input slice is never mutated and the result preserves input order.
// Applying the same filter twice yields the same set.
func (f Filter) Apply(txs []Transaction) []Transaction {
	min, max := f.MinAmount, f.MaxAmount
	if min != nil && max != nil && *min > *max {
		min, max = max, min
	}
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
			continue
		}
		if min != nil && t.Amount < *min {
			continue
		}
		if max != nil && t.Amount > *max {
			continue
		}
		if f.Start != nil && t.Date.Before(f.Start.Time) {
			continue
		}
		if f.End != nil && t.Date.After(f.End.Time) {
			continue
		}
		if f.Keyword != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(f.Keyword)) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortByDateDesc returns a copy ordered newest first, the order every
// history and search view uses. The sort is stable so same-instant
// entries keep their insertion order.
func SortByDateDesc(txs []Transaction) []Transaction {
	out := append([]Transaction(nil), txs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

// Recent returns the newest n transactions, newest first.
func Recent(txs []Transaction, n int) []Transaction {
	out := SortByDateDesc(txs)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// MonthOf matches the calendar month containing now.
func MonthOf(now time.Time) Filter {
	start := Timestamp{Time: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())}
	end := Timestamp{Time: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
	return Filter{Start: &start, End: &end}
}

// Last30Days matches everything since today's midnight minus 30 days.
// The boundary is day-aligned, not a rolling window from the current
// instant.
func Last30Days(now time.Time) Filter {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := Timestamp{Time: midnight.AddDate(0, 0, -30)}
	return Filter{Start: &start}
}

// AmountRange builds an inclusive amount-range filter.
func AmountRange(min, max float64) Filter {
	return Filter{MinAmount: &min, MaxAmount: &max}
}

// DateRange builds an inclusive date-range filter. Both endpoints are
// full timestamps; a bare calendar date means midnight of that day.
func DateRange(start, end Timestamp) Filter {
	return Filter{Start: &start, End: &end}
}
