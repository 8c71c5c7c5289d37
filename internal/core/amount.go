// Package core holds the ledger's domain model: transactions, budgets,
// amount parsing, the aggregation functions, and the filter layer.
//
// This file contains amount parsing for user input. Amounts are signed
// decimals; the sign carries meaning (negative income is a clawback,
// negative expense is a refund), so parsing only rejects the sign when
// the caller's policy asks for it.
package core

import (
	"strconv"
	"strings"
)

// ParseAmount converts a user-supplied decimal string to a signed amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Empty input, non-numeric input, and exactly-zero amounts are rejected
// with distinct errors so the caller can re-prompt with a precise
// message. When allowNegative is false, negative values are rejected
// with ErrNegativeAmount instead of being folded into ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("100.50", true) -> 100.5, nil
//	ParseAmount("-25,00", true) -> -25, nil
//	ParseAmount("-25.00", false) -> 0, ErrNegativeAmount
//	ParseAmount("0", true) -> 0, ErrZeroAmount
func ParseAmount(s string, allowNegative bool) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if v == 0 {
		return 0, ErrZeroAmount
	}
	if !allowNegative && v < 0 {
		return 0, ErrNegativeAmount
	}
	return v, nil
}
