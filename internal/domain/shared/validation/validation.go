// Package validation provides field-level predicate checks used by
// entity constructors and setters. Predicates return plain booleans;
// callers wrap failures in domain errors.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	emailRegex        = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex        = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{6,19}$`)
	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// IsEmail reports whether s is a plausible email address
func IsEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 200 {
		return false
	}
	return emailRegex.MatchString(s)
}

// IsPhone reports whether s is a plausible phone number
func IsPhone(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return phoneRegex.MatchString(s)
}

// IsAlphanumeric reports whether s consists only of letters and digits
func IsAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	return alphanumericRegex.MatchString(s)
}

// IsNumeric reports whether s parses as a number
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// IsPositive reports whether d is strictly greater than zero
func IsPositive(d decimal.Decimal) bool {
	return d.IsPositive()
}

// IsNonNegative reports whether d is zero or greater
func IsNonNegative(d decimal.Decimal) bool {
	return !d.IsNegative()
}

// InDateRange reports whether t falls within [from, to] inclusive.
// A zero from or to leaves that bound open.
func InDateRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}

// NotBlank reports whether s contains non-whitespace characters
func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// MaxLen reports whether s is at most n bytes long
func MaxLen(s string, n int) bool {
	return len(s) <= n
}
