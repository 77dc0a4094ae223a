// Package core provides the cash-book domain: entry validation, amounts and totals.
//
// This file contains the amount parser used by the entry form. Amounts are
// whole minor units; grouping separators are cosmetic and removed before parsing.
package core

import (
	"strconv"
	"strings"
)

// ParseAmount converts user-typed amount text to minor units.
//
// Both '.' and ',' are treated as thousands separators and stripped, so the
// user may type either grouping style. The result must be strictly positive.
//
// Examples:
//
//	ParseAmount("100.000") -> 100000, nil
//	ParseAmount("100,000") -> 100000, nil
//	ParseAmount("0")       -> 0, ErrInvalidAmount
//	ParseAmount("-50")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(".", "", ",", "").Replace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
