package validate

import (
	"strconv"
	"strings"
	"time"

	"cantrack/internal/domain"
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	at := strings.Index(s, "@")
	dot := strings.LastIndex(s, ".")
	return s, at > 0 && dot > at+1 && dot < len(s)-1 && !strings.ContainsAny(s, " \t")
}

// Password enforces a simple length window plus character classes.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

// Name validates a displayable drink or user name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Series accepts only the fixed enum values.
func Series(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, v := range domain.AllSeries {
		if s == v {
			return s, true
		}
	}
	return "", false
}

// Volume parses a positive milliliter count.
func Volume(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 || n > 10000 {
		return 0, false
	}
	return n, true
}

// Cost parses a non-negative decimal amount.
func Cost(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || v > 1000 {
		return 0, false
	}
	return v, true
}

// Rating parses an integer star rating in [1,5].
func Rating(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 5 {
		return 0, false
	}
	return n, true
}

// Notes trims and caps optional free text.
func Notes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 500 {
		s = s[:500]
	}
	return s
}

// Timestamp validates an optional purchase moment and normalizes it to
// RFC3339. Accepts RFC3339 or the datetime-local form "2006-01-02T15:04".
// Empty means "now" (create) or "keep stored" (update).
func Timestamp(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(time.RFC3339), true
	}
	if t, err := time.Parse("2006-01-02T15:04", s); err == nil {
		return t.UTC().Format(time.RFC3339), true
	}
	return "", false
}

// DateBound validates a date-range filter bound: a calendar date
// "2006-01-02" or a full RFC3339 timestamp, returned as submitted since
// range filtering compares the stored RFC3339 strings directly.
func DateBound(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return s, true
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return s, true
	}
	return "", false
}

// ID validates a simple resource identifier (uuid-shaped, no slashes).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 64 {
		return "", false
	}
	for _, r := range s {
		ok := r == '-' || r == '_' ||
			('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
		if !ok {
			return "", false
		}
	}
	return s, true
}

// Q validates a search query for the drink list.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, !strings.ContainsAny(s, "<>\"';%")
}
