// Package formatters turns listing and payment values into en-US display strings.
package formatters

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DateLayout renders dates like "March 15, 2024".
const DateLayout = "January 2, 2006"

var printer = message.NewPrinter(language.AmericanEnglish)

// Price formats a dollar amount rounded to whole dollars, e.g. "$1,250,000".
// Non-finite values render as "$0".
func Price(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0"
	}
	rounded := math.Round(amount)
	if rounded < 0 {
		return "-$" + printer.Sprintf("%d", int64(-rounded))
	}
	return "$" + printer.Sprintf("%d", int64(rounded))
}

// Currency formats a dollar amount with cents, e.g. "$2,022.62".
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0.00"
	}
	if amount < 0 {
		return "-$" + printer.Sprintf("%.2f", -amount)
	}
	return "$" + printer.Sprintf("%.2f", amount)
}

// Number formats n with thousands separators and at most three decimals.
func Number(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "0"
	}
	if n == math.Trunc(n) {
		return printer.Sprintf("%d", int64(n))
	}
	s := printer.Sprintf("%.3f", n)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// SquareFeet formats an area, e.g. "2,150 sq ft".
func SquareFeet(sqft int) string {
	return printer.Sprintf("%d", sqft) + " sq ft"
}

// Date formats t as a long US date. The zero time renders as "".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// Address joins the non-empty parts with ", ".
func Address(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// Location formats a city and state pair, e.g. "Austin, TX".
func Location(city, state string) string {
	return Address(city, state)
}
