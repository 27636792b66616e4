// Package analytics derives every dashboard statistic from a snapshot of
// sales and clients. Functions are pure: they never mutate their inputs and
// degrade malformed values to zero instead of failing.
package analytics

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// NotApplicable marks a monetary field that does not apply to a sale.
const NotApplicable = "SO"

var (
	yearOnlyPattern    = regexp.MustCompile(`^\d{4}$`)
	dayMonthYearFormat = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// ParseCurrency turns a locale-formatted amount ("1 000,00 €", "22 230 €")
// or a number into a float. Empty, nil, "SO" and anything unparseable give 0.
func ParseCurrency(raw interface{}) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case string:
		return parseAmount(v)
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// ParsePercent turns a display percentage ("9,00%") into a fractional rate
// (0.09). Numbers are taken as rates already.
func ParsePercent(raw interface{}) float64 {
	if s, ok := raw.(string); ok {
		return parseAmount(s) / 100
	}
	return ParseCurrency(raw)
}

// IsNotApplicable reports an empty or "SO" field. Both parse to 0 but only a
// real "0" amount should be written back as a number.
func IsNotApplicable(raw string) bool {
	s := strings.TrimSpace(raw)
	return s == "" || strings.EqualFold(s, NotApplicable)
}

func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == NotApplicable {
		return 0
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	// only the first comma is the decimal separator
	cleaned := strings.Replace(b.String(), ",", ".", 1)
	return leadingFloat(cleaned)
}

// leadingFloat parses the longest "-?digits[.digits]" prefix of s.
func leadingFloat(s string) float64 {
	end := 0
	if end < len(s) && s[end] == '-' {
		end++
	}
	start := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	intDigits := end - start

	fracDigits := 0
	if end < len(s) && s[end] == '.' {
		j := end + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		fracDigits = j - end - 1
		if fracDigits > 0 {
			end = j
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return finite(v)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseDate accepts a bare year ("2020", read as 1 January) or "D/M/YYYY".
// Any other shape, an impossible calendar date or an empty string gives false.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if yearOnlyPattern.MatchString(s) {
		year, _ := strconv.Atoi(s)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}

	m := dayMonthYearFormat.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		// 31/02 and friends roll over into the next month
		return time.Time{}, false
	}
	return t, true
}

// DaysBetween is the whole-day distance between a and b, rounded up.
func DaysBetween(a, b time.Time) int {
	diff := b.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(float64(diff) / float64(24*time.Hour)))
}
