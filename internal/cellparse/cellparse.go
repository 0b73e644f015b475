// Package cellparse provides the typed-value parsers applied to raw spreadsheet
// cells before any business logic runs. Every function in this package is total:
// it returns a defined fallback value for malformed input and never panics.
package cellparse

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// currencyRunes matches currency symbols and whitespace that may wrap an amount
var currencyRunes = regexp.MustCompile(`[€$£¥\s]`)

// Date layout constants used throughout the application.
// Day-first layouts take priority over month-first ones because the upstream
// capture form always emits day-first dates.
const (
	DayLayoutISO      = "2006-01-02"
	DayLayoutDayFirst = "02/01/2006"
)

// dateLayouts is the ordered list of layouts tried by ParseDateFlexible.
// ISO forms come first, then the regional day-first form, then generic
// fallbacks for older exports.
var dateLayouts = []string{
	"2006-01-02T15:04:05.000Z07:00",
	time.RFC3339,
	"2006-01-02T15:04:05",
	DayLayoutISO,
	DayLayoutDayFirst,
	"02-01-2006",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// ParseAmount parses a raw cell into a decimal amount, accepting currency
// symbols, thousands separators and either "," or "." as the decimal
// separator. Malformed input yields zero.
func ParseAmount(raw string) decimal.Decimal {
	amount, _ := ParseAmountChecked(raw)
	return amount
}

// ParseAmountChecked is ParseAmount with an explicit validity flag, for
// callers that must distinguish a genuine zero from a parse failure.
func ParseAmountChecked(raw string) (decimal.Decimal, bool) {
	standardized := StandardizeAmount(raw)
	if standardized == "" {
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		log.WithField("value", raw).Debug("Unparseable amount, falling back to zero")
		return decimal.Zero, false
	}
	return amount, true
}

// StandardizeAmount converts locale-variant amount strings to the canonical
// form accepted by decimal.NewFromString. It handles patterns like
// "$1,234.56", "1.234,56", "1'234.56" and "1234,56".
func StandardizeAmount(raw string) string {
	s := currencyRunes.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, "'", "")

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		// The rightmost separator is the decimal one; the other is grouping.
		if strings.LastIndex(s, ".") > strings.LastIndex(s, ",") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
	case hasComma:
		// Only rewrite "," to "." when no "." is present, so thousands-grouped
		// values with an explicit decimal point are never corrupted.
		s = strings.ReplaceAll(s, ",", ".")
	}

	return s
}

// ParseDateFlexible parses a raw cell into a calendar day. It accepts ISO-8601
// (with or without a time/zone suffix), the regional day-first DD/MM/YYYY form,
// and a set of generic fallbacks. The returned time is normalized to midnight
// UTC of the written calendar day; the zone suffix of the input never shifts
// the day. The flag is false when no layout matches.
func ParseDateFlexible(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DayOf(t), true
		}
	}

	log.WithField("value", raw).Debug("Unparseable date")
	return time.Time{}, false
}

// DayOf truncates a time to midnight UTC of its own calendar day. Two times
// written for the same day always map to the same value regardless of the
// original encoding.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CanonicalDay produces the YYYY-MM-DD grouping key for a date.
// The zero time yields the empty string.
func CanonicalDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DayLayoutISO)
}

// TrimmedLabel coerces a raw cell to a whitespace-trimmed label.
func TrimmedLabel(raw string) string {
	return strings.TrimSpace(raw)
}

// NormalizeKeyword upper-trims a categorical cell, substituting defaultValue
// for empty input.
func NormalizeKeyword(raw, defaultValue string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return defaultValue
	}
	return s
}
