package csv

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldHeader reduces a header cell to a canonical matching key:
//  1. lowercase, trimmed
//  2. accents stripped (NFD → remove Mn → NFC)
//  3. [a-z0-9] kept; space, underscore, dash and dot dropped entirely
//
// Dropping separators (rather than collapsing them to underscores) is what
// lets "Customer ID", "customer_id" and "CustomerID" all fold to
// "customerid".
func FoldHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	ascii, _, _ := transform.String(t, s)

	var b strings.Builder
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			// separators and punctuation contribute nothing to the key
		}
	}
	return b.String()
}
