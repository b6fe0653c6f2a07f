package prompt

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"legal-docgen/internal/domain"
)

// formatDate reformats an ISO date (YYYY-MM-DD) to the written local form
// DD.MM.YYYY used inside the drafted document.
func formatDate(iso string) (string, error) {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return "", fmt.Errorf("%w: date %q is not YYYY-MM-DD", domain.ErrValidation, iso)
	}
	return t.Format("02.01.2006"), nil
}

// monthlyFromAnnual derives the monthly amount, rounded (not truncated).
func monthlyFromAnnual(annual float64) int {
	return int(math.Round(annual / 12))
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func stringOrDefault(v any, def string) string {
	if s := asString(v); s != "" {
		return s
	}
	return def
}

// asNumber accepts the numeric shapes a JSON body or a Go caller can produce.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func numberOrDefault(v any, def int) int {
	if n, ok := asNumber(v); ok {
		return int(n)
	}
	return def
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(b)
		return err == nil && parsed
	default:
		return false
	}
}
