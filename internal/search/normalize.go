// Package search holds the retrieval logic over the storefront snapshot:
// text normalization, price parsing, product filtering and policy matching.
// Everything here is pure and safe to call from concurrent requests.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases text, strips diacritics and collapses whitespace so
// "Sandália  NUDE" and "sandalia nude" compare equal. The result is only used
// for matching, never for display. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	// Lowercase first: some uppercase runes (İ) lower into a base plus a mark.
	lower := strings.ToLower(text)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, lower)
	if err != nil {
		stripped = lower
	}
	return CollapseSpaces(stripped)
}

// CollapseSpaces trims text and folds every whitespace run into one space.
func CollapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
