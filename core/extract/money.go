// Package extract - Currency and quantity token parsing
package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyRe matches a dollar- or USD-prefixed amount with optional
// thousands separators, e.g. "$1,234.56" or "USD 45.30".
var currencyRe = regexp.MustCompile(`(?i)(?:\$|USD)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

// quantityRe matches a number followed by a usage unit token,
// e.g. "744 hours" or "1,500 GB".
var quantityRe = regexp.MustCompile(`(?i)\b([0-9][0-9,]*(?:\.[0-9]+)?)\s*(million requests|requests?|hours?|hrs?|gb-months?|gb|tb|units?)\b`)

// parseAmount parses a numeric token with thousands separators.
// Decimal parsing keeps printed cents exact before the engine's float
// arithmetic takes over.
func parseAmount(tok string) (float64, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(tok, ",", ""))
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// findAmount returns the first currency amount in s
func findAmount(s string) (float64, bool) {
	m := currencyRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	return parseAmount(m[1])
}

// findQuantity returns the first quantity-with-unit token in s, with
// the unit normalized ("hrs" to "hours", TB to GB, million requests
// to requests).
func findQuantity(s string) (float64, string, bool) {
	m := quantityRe.FindStringSubmatch(s)
	if m == nil {
		return 0, "", false
	}
	qty, ok := parseAmount(m[1])
	if !ok {
		return 0, "", false
	}

	switch strings.ToLower(m[2]) {
	case "hour", "hours", "hr", "hrs":
		return qty, "hours", true
	case "gb":
		return qty, "GB", true
	case "tb":
		return qty * 1024, "GB", true
	case "gb-month", "gb-months":
		return qty, "GB-month", true
	case "million requests":
		return qty * 1e6, "requests", true
	case "request", "requests":
		return qty, "requests", true
	default:
		return qty, "units", true
	}
}
