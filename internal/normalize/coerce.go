// Package normalize turns cleaned source tables into canonical warehouse
// shapes: lower_snake_case columns and target cell types. It is a pure
// column-wise stage; no row is ever dropped here.
//
// Coercion is deliberately lossy: boolean-like text resolves to 1/0 with
// unrecognized values defaulting to 0, and numeric fields resolve to 0 when
// missing or unparseable. Upstream cleaning owns anything stricter.
package normalize

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// YNToInt maps boolean-like text to 1/0. Recognized truthy tokens are
// "yes", "y", "true", "t", "1"; falsy are "no", "n", "false", "f", "0"
// (case-insensitive, trimmed). Anything else, including NULL, is 0.
func YNToInt(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "yes", "y":
		return 1
	default:
		return 0
	}
}

// ToInt64 coerces best-effort to a non-negative integer. It tries a fast
// integer parse first and falls back to float parsing for inputs like
// "42.0". Missing, unparseable, or negative values become 0.
func ToInt64(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return max(i, 0)
	}
	if strings.IndexByte(s, '.') >= 0 {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return max(int64(f), 0)
		}
	}
	return 0
}

// ToDecimal coerces best-effort to a non-negative decimal rounded to two
// places. Missing, unparseable, or negative values become 0.
func ToDecimal(v any) decimal.Decimal {
	s, ok := v.(string)
	if !ok {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(2)
}
