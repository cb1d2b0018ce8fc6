package table

import (
	"strconv"
	"strings"
	"time"
)

// ParseNumber coerces a cell to a float. It accepts plain decimals,
// Brazilian formatting ("1.234,56", "R$ 1.234,56") and surrounding
// whitespace. The second return reports whether the cell held a number;
// blank and unparseable cells return (0, false).
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		// Comma decimal separator; dots are thousands separators.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// dateLayouts are tried in order. Brazilian day-first forms come before
// ISO so "02/03/2025" reads as March 2nd.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate coerces a cell to a date. Trailing time-of-day parts are
// tolerated. Blank and unparseable cells return a zero time and false.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	// Excel serial dates arrive as bare numbers from some exports.
	if serial, ok := ParseNumber(s); ok && serial > 20000 && serial < 80000 {
		epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
		return epoch.AddDate(0, 0, int(serial)), true
	}
	return time.Time{}, false
}

// FormatBrazilianDate renders a cell's date as DD/MM/YYYY, the display
// format used throughout the dashboard. Unparseable cells pass through
// truncated to ten characters.
func FormatBrazilianDate(raw string) string {
	ts, ok := ParseDate(raw)
	if !ok {
		s := strings.TrimSpace(raw)
		if len(s) > 10 {
			return s[:10]
		}
		return s
	}
	return ts.Format("02/01/2006")
}
