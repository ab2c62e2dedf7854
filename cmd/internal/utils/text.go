package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName lowercases s, strips accents and collapses whitespace, so that
// "  João  da Silva" and "joao da silva" compare equal.
func NormalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// ContainsFold reports whether sub is within s, ignoring case and accents.
func ContainsFold(s, sub string) bool {
	return strings.Contains(NormalizeName(s), NormalizeName(sub))
}
