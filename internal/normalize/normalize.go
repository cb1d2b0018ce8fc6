// Package normalize turns raw spreadsheet and CRM values into canonical
// comparison keys. All functions are total: any input, including the empty
// string, yields a (possibly empty) key, and applying a function to its own
// output returns the same value.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes characters and drops combining marks, so
// "José" and "Jose" produce the same key.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases, trims and strips diacritics but keeps punctuation.
// Header matching uses it so "Situação" compares as "situacao" while
// "E-mail" keeps its hyphen.
func Fold(raw string) string {
	folded, _, err := transform.String(stripAccents, strings.ToLower(raw))
	if err != nil {
		folded = strings.ToLower(raw)
	}
	return strings.TrimSpace(folded)
}

// Email canonicalizes an email address for matching.
func Email(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Phone reduces a phone number to a comparable local-number key.
// All non-digits are stripped; the Brazilian country prefix "55" is dropped
// when the number is long enough to carry one, and anything still longer
// than DDD + 9 digits keeps only the trailing 11 digits. This collapses
// "+55 (11) 98888-7777" and "(11) 98888-7777" to the same key.
func Phone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "55") && len(digits) > 11 {
		digits = digits[2:]
	}
	if len(digits) > 11 {
		digits = digits[len(digits)-11:]
	}
	return digits
}

// NameSlug lowercases, strips diacritics, removes everything outside
// [a-z0-9 ] and collapses runs of whitespace into single spaces.
func NameSlug(raw string) string {
	folded, _, err := transform.String(stripAccents, strings.ToLower(raw))
	if err != nil {
		folded = strings.ToLower(raw)
	}
	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// CompactSlug is a NameSlug with internal spaces removed, used by the
// name-compact match tier so "ana paula" matches "anapaula".
func CompactSlug(slug string) string {
	return strings.ReplaceAll(NameSlug(slug), " ", "")
}

// Tokens splits a slug into whitespace-separated tokens of at least three
// characters. Short tokens ("de", "da") carry no identifying signal.
func Tokens(slug string) []string {
	var out []string
	for _, tok := range strings.Fields(NameSlug(slug)) {
		if len(tok) >= 3 {
			out = append(out, tok)
		}
	}
	return out
}
