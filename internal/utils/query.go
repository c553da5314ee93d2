// Package utils provides small, generic helpers for parsing request input.
// They are independent of domain or business logic.
package utils

import (
	"strconv"
	"strings"
)

// AtoiDefault converts s with strconv.Atoi, returning def when s is empty
// or not an integer.
//
//	n := utils.AtoiDefault("42", 0) // 42
//	n = utils.AtoiDefault("", 10)   // 10
//	n = utils.AtoiDefault("x", 5)   // 5
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n
	}
	return def
}

// Clamp bounds n to [lo, hi].
func Clamp(n, lo, hi int) int {
	switch {
	case n < lo:
		return lo
	case n > hi:
		return hi
	}
	return n
}

// ParseOrder reads a sort order parameter. Empty and "asc" are ascending;
// "desc" is descending. ok is false for anything else.
func ParseOrder(s string) (desc, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return false, true
	case "desc":
		return true, true
	}
	return false, false
}
